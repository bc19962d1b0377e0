package gamedata

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"
)

// text_data categories holding the name tables we need.
const (
	factorTextCategory = 147
	skillTextCategory  = 47
	charaTextCategory  = 4
)

const racesQuery = `SELECT
  ri.id, ri.race_id, race.thumbnail_id, race.course_set, smp.id AS program_id,
  td1.[text] AS race_name, td2.[text] AS track_name,
  rcs.distance, rcs.ground, rcs.inout,
  ri.[date], ri.[time],
  race.[group], race.grade, race.entry_num
FROM race_instance ri
LEFT JOIN single_mode_program smp ON ri.id = smp.race_instance_id
LEFT JOIN race ON ri.race_id = race.id
LEFT JOIN race_course_set rcs ON race.course_set = rcs.id
LEFT JOIN text_data td1 ON td1.[index] = ri.id AND td1.category = 28
LEFT JOIN text_data td2 ON td2.[index] = rcs.race_track_id AND td2.category = 31
WHERE (race.[group] = 1 OR race.[group] = 7)
ORDER BY ri.id;`

// Extract recreates the reference JSONs under dir from the game's master.mdb.
// The database is opened read-only so a running game client is never touched.
func Extract(dbPath, dir string) error {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return err
	}

	if err := extractTextData(db, factorTextCategory, filepath.Join(dir, FactorFile)); err != nil {
		return err
	}
	if err := extractTextData(db, skillTextCategory, filepath.Join(dir, SkillsFile)); err != nil {
		return err
	}
	if err := extractTextData(db, charaTextCategory, filepath.Join(dir, CharaFile)); err != nil {
		return err
	}
	return extractRaces(db, filepath.Join(dir, RacesFile))
}

func extractTextData(db *sql.DB, category int, path string) error {
	rows, err := db.Query("SELECT td.[index], td.[text] FROM text_data td WHERE category = ?;", category)
	if err != nil {
		return err
	}
	defer rows.Close()

	table := make(map[string]string)
	for rows.Next() {
		var (
			index int64
			text  string
		)
		if err := rows.Scan(&index, &text); err != nil {
			return err
		}
		table[strconv.FormatInt(index, 10)] = text
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return writeJSON(path, table)
}

func extractRaces(db *sql.DB, path string) error {
	rows, err := db.Query(racesQuery)
	if err != nil {
		return err
	}
	defer rows.Close()

	var races []Race
	for rows.Next() {
		var (
			r         Race
			programID sql.NullInt64
			raceName  sql.NullString
			trackName sql.NullString
			distance  sql.NullInt64
			ground    sql.NullInt64
			inout     sql.NullInt64
			date      sql.NullInt64
			timeStr   sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.RaceID, &r.ThumbnailID, &r.CourseSet, &programID,
			&raceName, &trackName, &distance, &ground, &inout,
			&date, &timeStr, &r.Group, &r.Grade, &r.EntryNum); err != nil {
			return err
		}
		if programID.Valid {
			r.ProgramID = &programID.Int64
		}
		if raceName.Valid {
			r.RaceName = &raceName.String
		}
		if trackName.Valid {
			r.TrackName = &trackName.String
		}
		if distance.Valid {
			r.Distance = &distance.Int64
		}
		if ground.Valid {
			r.Ground = &ground.Int64
		}
		if inout.Valid {
			r.Inout = &inout.Int64
		}
		if date.Valid {
			r.Date = &date.Int64
		}
		if timeStr.Valid {
			r.Time = &timeStr.String
		}
		races = append(races, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return writeJSON(path, races)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
