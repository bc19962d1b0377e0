package pipeline

import (
	"strconv"

	"github.com/tidwall/gjson"

	"umaspark/pkg/factor"
	"umaspark/pkg/gamedata"
	"umaspark/pkg/races"
	"umaspark/pkg/rating"
	"umaspark/pkg/schema"
	"umaspark/pkg/spark"
)

// Ancestor sub-records are identified by slot position in the succession
// array: 10 is the left parent, 20 the right.
const (
	leftParentPosition  = 10
	rightParentPosition = 20
)

// affinityScale maps the export's 0-8 affinity integers to display grades.
var affinityScale = []string{"Unknown", "G", "F", "E", "D", "C", "B", "A", "S"}

// require fetches a key from a gjson value, failing with the dotted path
// when it is absent.
func require(res gjson.Result, key, where string) (gjson.Result, error) {
	v := res.Get(key)
	if !v.Exists() {
		return gjson.Result{}, schema.Newf("umadump_data.json", "%s.%s", where, key)
	}
	return v, nil
}

func requireInt(res gjson.Result, key, where string) (int64, error) {
	v, err := require(res, key, where)
	if err != nil {
		return 0, err
	}
	if v.Type != gjson.Number {
		return 0, schema.Newf("umadump_data.json", "%s.%s is not a number", where, key)
	}
	return v.Int(), nil
}

// findAncestor returns the succession sub-record at the given slot position.
func findAncestor(succession gjson.Result, position int64) (gjson.Result, error) {
	for _, sub := range succession.Array() {
		if sub.Get("position_id").Int() == position {
			return sub, nil
		}
	}
	return gjson.Result{}, schema.Newf("umadump_data.json",
		"entry.succession_chara_array position_id==%d", position)
}

// factorIDs parses a record's factor_id_array into integer ids.
func factorIDs(res gjson.Result, where string) ([]int64, error) {
	arr, err := require(res, "factor_id_array", where)
	if err != nil {
		return nil, err
	}
	if !arr.IsArray() {
		return nil, schema.Newf("umadump_data.json", "%s.factor_id_array is not a list", where)
	}
	var ids []int64
	for _, v := range arr.Array() {
		if v.Type != gjson.Number {
			return nil, schema.Newf("umadump_data.json", "invalid factor id: %s", v.Raw)
		}
		ids = append(ids, v.Int())
	}
	return ids, nil
}

// umaName resolves a record's card id to a character name. The key must be
// present, but an explicitly null value yields a null name.
func umaName(res gjson.Result, where string, chara map[string]string) (*string, error) {
	v, err := require(res, "card_id", where)
	if err != nil {
		return nil, err
	}
	if v.Type == gjson.Null {
		return nil, nil
	}
	name, ok := chara[strconv.FormatInt(v.Int(), 10)]
	if !ok {
		return nil, schema.Newf("game_data/chara.json", "chara.json[%d]", v.Int())
	}
	return &name, nil
}

func affinityFromValue(val int64) (string, error) {
	if val < 0 || val >= int64(len(affinityScale)) {
		return "", schema.Newf("umadump_data.json", "invalid affinity value: %d", val)
	}
	return affinityScale[val], nil
}

func affinity(entry gjson.Result, key string) (string, error) {
	val, err := requireInt(entry, key, "entry")
	if err != nil {
		return "", err
	}
	return affinityFromValue(val)
}

func buildRecord(entry gjson.Result, tables *gamedata.Tables, resolver *spark.Resolver, weights rating.Weights) (Record, error) {
	var rec Record
	var err error

	succession, err := require(entry, "succession_chara_array", "entry")
	if err != nil {
		return Record{}, err
	}
	leftParent, err := findAncestor(succession, leftParentPosition)
	if err != nil {
		return Record{}, err
	}
	rightParent, err := findAncestor(succession, rightParentPosition)
	if err != nil {
		return Record{}, err
	}

	if rec.ParentRank, err = requireInt(entry, "rank_score", "entry"); err != nil {
		return Record{}, err
	}
	if rec.ParentRarity, err = requireInt(entry, "rank", "entry"); err != nil {
		return Record{}, err
	}

	if rec.Uma.MainParent, err = umaName(entry, "entry", tables.Chara); err != nil {
		return Record{}, err
	}
	if rec.Uma.ParentLeft, err = umaName(leftParent, "entry.succession_chara_array[10]", tables.Chara); err != nil {
		return Record{}, err
	}
	if rec.Uma.ParentRight, err = umaName(rightParent, "entry.succession_chara_array[20]", tables.Chara); err != nil {
		return Record{}, err
	}

	statFields := []struct {
		key string
		dst *int64
	}{
		{"speed", &rec.Stats.Speed},
		{"stamina", &rec.Stats.Stamina},
		{"power", &rec.Stats.Power},
		{"guts", &rec.Stats.Guts},
		{"wiz", &rec.Stats.Wisdom},
	}
	for _, f := range statFields {
		if *f.dst, err = requireInt(entry, f.key, "entry"); err != nil {
			return Record{}, err
		}
	}

	if rec.Fans, err = requireInt(entry, "fans", "entry"); err != nil {
		return Record{}, err
	}
	if rec.ScenarioID, err = requireInt(entry, "scenario_id", "entry"); err != nil {
		return Record{}, err
	}

	affinityFields := []struct {
		key string
		dst *string
	}{
		{"proper_ground_turf", &rec.Affinities.Track.Turf},
		{"proper_ground_dirt", &rec.Affinities.Track.Dirt},
		{"proper_distance_short", &rec.Affinities.Distance.Sprint},
		{"proper_distance_mile", &rec.Affinities.Distance.Mile},
		{"proper_distance_middle", &rec.Affinities.Distance.Medium},
		{"proper_distance_long", &rec.Affinities.Distance.Long},
		{"proper_running_style_nige", &rec.Affinities.Style.Front},
		{"proper_running_style_senko", &rec.Affinities.Style.Pace},
		{"proper_running_style_sashi", &rec.Affinities.Style.Late},
		{"proper_running_style_oikomi", &rec.Affinities.Style.End},
	}
	for _, f := range affinityFields {
		if *f.dst, err = affinity(entry, f.key); err != nil {
			return Record{}, err
		}
	}

	if rec.Skills, err = resolveSkills(entry, tables.Skills); err != nil {
		return Record{}, err
	}

	mainIDs, err := factorIDs(entry, "entry")
	if err != nil {
		return Record{}, err
	}
	leftIDs, err := factorIDs(leftParent, "entry.succession_chara_array[10]")
	if err != nil {
		return Record{}, err
	}
	rightIDs, err := factorIDs(rightParent, "entry.succession_chara_array[20]")
	if err != nil {
		return Record{}, err
	}

	aggregated, err := factor.Aggregate(mainIDs, leftIDs, rightIDs)
	if err != nil {
		return Record{}, err
	}
	rec.Sparks, err = spark.BuildSummary(resolver, factor.Classify(aggregated), factor.Classify(mainIDs))
	if err != nil {
		return Record{}, err
	}

	if rec.WinCount, err = countWins(entry, tables.Races); err != nil {
		return Record{}, err
	}

	rec.Rating, err = rating.Score(rating.Input{
		Sparks:     rec.Sparks,
		WinCount:   rec.WinCount,
		ParentRank: rec.ParentRank,
	}, weights)
	if err != nil {
		return Record{}, err
	}

	return rec, nil
}

func resolveSkills(entry gjson.Result, skills map[string]string) ([]string, error) {
	arr, err := require(entry, "skill_array", "entry")
	if err != nil {
		return nil, err
	}
	if !arr.IsArray() {
		return nil, schema.New("entry.skill_array is not a list", "umadump_data.json")
	}
	var out []string
	for _, item := range arr.Array() {
		id, err := requireInt(item, "skill_id", "entry.skill_array[]")
		if err != nil {
			return nil, err
		}
		name, ok := skills[strconv.FormatInt(id, 10)]
		if !ok {
			return nil, schema.Newf("game_data/skills.json", "skills.json[%d]", id)
		}
		out = append(out, name)
	}
	return out, nil
}

func countWins(entry gjson.Result, table map[string]gamedata.Race) (int, error) {
	arr, err := require(entry, "race_result_list", "entry")
	if err != nil {
		return 0, err
	}
	if !arr.IsArray() {
		return 0, schema.New("entry.race_result_list is not a list", "umadump_data.json")
	}
	var results []races.Result
	for _, item := range arr.Array() {
		programID, err := requireInt(item, "program_id", "entry.race_result_list[]")
		if err != nil {
			return 0, err
		}
		resultRank, err := requireInt(item, "result_rank", "entry.race_result_list[]")
		if err != nil {
			return 0, err
		}
		results = append(results, races.Result{ProgramID: programID, ResultRank: resultRank})
	}
	return races.CountWins(results, table)
}
