package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"umaspark/internal/utils"
	"umaspark/pkg/gamedata"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Re-extract the reference JSONs from the game's master.mdb",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := viper.GetString("paths.masterdb")
		if _, err := os.Stat(dbPath); err != nil {
			return fmt.Errorf("database file not found: %s", dbPath)
		}

		dataDir := viper.GetString("paths.game_data")
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return err
		}
		if err := gamedata.Extract(dbPath, dataDir); err != nil {
			return err
		}

		utils.Log.Infof("Extracted reference tables from %s into %s", dbPath, dataDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().String("dbpath", "", "Path to the game's master.mdb")
	_ = viper.BindPFlag("paths.masterdb", extractCmd.Flags().Lookup("dbpath"))
}
