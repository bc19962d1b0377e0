package main

import (
	"umaspark/cmd"
)

func main() {
	cmd.Execute()
}
