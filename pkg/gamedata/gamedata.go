// Package gamedata loads the reference tables the resolver and evaluator
// need: factor, skill and character name maps plus the race program table.
// The tables come from JSON files under a game_data directory, which can be
// (re)extracted from the game's local master.mdb.
package gamedata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	FactorFile = "factor.json"
	SkillsFile = "skills.json"
	CharaFile  = "chara.json"
	RacesFile  = "races.json"
)

// Race is one row of the extracted race program table.
type Race struct {
	ID          int64   `json:"id"`
	RaceID      int64   `json:"race_id"`
	ThumbnailID int64   `json:"thumbnail_id"`
	CourseSet   int64   `json:"course_set"`
	ProgramID   *int64  `json:"program_id"`
	RaceName    *string `json:"race_name"`
	TrackName   *string `json:"track_name"`
	Distance    *int64  `json:"distance"`
	Ground      *int64  `json:"ground"`
	Inout       *int64  `json:"inout"`
	Date        *int64  `json:"date"`
	Time        *string `json:"time"`
	Group       int     `json:"group"`
	Grade       int     `json:"grade"`
	EntryNum    int64   `json:"entry_num"`
}

// Tables holds every reference table, loaded once and never mutated.
type Tables struct {
	Factors map[string]string
	Skills  map[string]string
	Chara   map[string]string
	// Races is keyed by stringified program id. Rows whose program id was
	// null in the database cannot be looked up and are skipped.
	Races map[string]Race
}

// Load reads the four reference JSONs from dir.
func Load(dir string) (*Tables, error) {
	t := &Tables{}

	if err := loadJSON(filepath.Join(dir, FactorFile), &t.Factors); err != nil {
		return nil, err
	}
	if err := loadJSON(filepath.Join(dir, SkillsFile), &t.Skills); err != nil {
		return nil, err
	}
	if err := loadJSON(filepath.Join(dir, CharaFile), &t.Chara); err != nil {
		return nil, err
	}

	var races []Race
	if err := loadJSON(filepath.Join(dir, RacesFile), &races); err != nil {
		return nil, err
	}
	t.Races = make(map[string]Race, len(races))
	for _, r := range races {
		if r.ProgramID == nil {
			continue
		}
		t.Races[strconv.FormatInt(*r.ProgramID, 10)] = r
	}

	return t, nil
}

func loadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("required JSON file not found: %s. Ensure the file exists or run extraction against master.mdb", path)
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse JSON file %s: %w", path, err)
	}
	return nil
}

// Ensure makes the reference JSONs under dir usable.
//
// If the local master.mdb exists it always re-extracts, so the tables follow
// game updates. Without the database the existing JSONs are accepted as-is.
// With neither, it fails and explains what is missing.
func Ensure(dir, dbPath string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if _, err := os.Stat(dbPath); err == nil {
		return Extract(dbPath, dir)
	}

	var missing []string
	for _, name := range []string{FactorFile, SkillsFile, CharaFile, RacesFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("database not found at %s and required JSON files missing: %v. Install the game at the default location or provide the game_data JSONs in %s", dbPath, missing, dir)
}
