// Package races evaluates race results against the race reference table.
package races

import (
	"strconv"

	"umaspark/pkg/gamedata"
	"umaspark/pkg/schema"
)

// Sentinel values marking a top-tier (G1) program in the reference table.
const (
	topGrade = 100
	topGroup = 1
)

// Result is one entry of a record's race_result_list.
type Result struct {
	ProgramID  int64
	ResultRank int64
}

// IsTopWin reports whether a result is a first-place finish in a G1 program.
// An unknown program id means the race table is stale.
func IsTopWin(r Result, table map[string]gamedata.Race) (bool, error) {
	race, ok := table[strconv.FormatInt(r.ProgramID, 10)]
	if !ok {
		return false, schema.Newf("game_data/races.json", "races.json[%d]", r.ProgramID)
	}
	return r.ResultRank == 1 && race.Grade == topGrade && race.Group == topGroup, nil
}

// CountWins counts the top-tier wins across a result list.
func CountWins(results []Result, table map[string]gamedata.Race) (int, error) {
	wins := 0
	for _, r := range results {
		top, err := IsTopWin(r, table)
		if err != nil {
			return 0, err
		}
		if top {
			wins++
		}
	}
	return wins, nil
}
