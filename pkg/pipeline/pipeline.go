// Package pipeline resolves a raw breeding export into rated, ranked
// records. Every entry is processed independently; any schema failure in a
// single entry aborts the whole run with no partial output.
package pipeline

import (
	"sort"

	"github.com/tidwall/gjson"

	"umaspark/pkg/gamedata"
	"umaspark/pkg/rating"
	"umaspark/pkg/schema"
	"umaspark/pkg/spark"
)

// Record is one fully resolved, rated entry of the output collection.
type Record struct {
	ParentRank   int64         `json:"parent_rank"`
	ParentRarity int64         `json:"parent_rarity"`
	Uma          Uma           `json:"uma"`
	Stats        Stats         `json:"stats"`
	Fans         int64         `json:"fans"`
	ScenarioID   int64         `json:"scenario_id"`
	Affinities   Affinities    `json:"affinities"`
	Skills       []string      `json:"skills"`
	Sparks       spark.Summary `json:"sparks"`
	WinCount     int           `json:"win_count"`
	Rating       float64       `json:"rating"`
	RatingIdx    int           `json:"rating_idx"`
}

// Uma names the subject and both breeding ancestors. The export may carry an
// explicit null card id, so names are nullable.
type Uma struct {
	MainParent  *string `json:"main_parent"`
	ParentLeft  *string `json:"parent_left"`
	ParentRight *string `json:"parent_right"`
}

type Stats struct {
	Speed   int64 `json:"speed"`
	Stamina int64 `json:"stamina"`
	Power   int64 `json:"power"`
	Guts    int64 `json:"guts"`
	Wisdom  int64 `json:"wisdom"`
}

type Affinities struct {
	Track    TrackAffinities    `json:"track"`
	Distance DistanceAffinities `json:"distance"`
	Style    StyleAffinities    `json:"style"`
}

type TrackAffinities struct {
	Turf string `json:"turf"`
	Dirt string `json:"dirt"`
}

type DistanceAffinities struct {
	Sprint string `json:"sprint"`
	Mile   string `json:"mile"`
	Medium string `json:"medium"`
	Long   string `json:"long"`
}

type StyleAffinities struct {
	Front string `json:"front"`
	Pace  string `json:"pace"`
	Late  string `json:"late"`
	End   string `json:"end"`
}

// Run resolves every entry of the raw export, scores it with the given
// weights, then sorts descending by (rating, total spark count, parent rank)
// and assigns 1-based rating indices.
func Run(raw []byte, tables *gamedata.Tables, weights rating.Weights) ([]Record, error) {
	parsed := gjson.ParseBytes(raw)
	if !parsed.IsArray() {
		return nil, schema.New("expected a top-level array of entries", "umadump_data.json")
	}

	resolver := spark.NewResolver(tables.Factors)

	entries := parsed.Array()
	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		rec, err := buildRecord(entry, tables, resolver, weights)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.Sparks.TotalSparkCount != b.Sparks.TotalSparkCount {
			return a.Sparks.TotalSparkCount > b.Sparks.TotalSparkCount
		}
		return a.ParentRank > b.ParentRank
	})

	for i := range records {
		records[i].RatingIdx = i + 1
	}
	return records, nil
}
