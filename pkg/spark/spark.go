// Package spark turns factor ids into display strings and builds the
// per-record spark summary used by the scorer and the output.
package spark

import (
	"fmt"
	"strconv"
	"strings"

	"umaspark/pkg/factor"
	"umaspark/pkg/schema"
)

// StarGlyph separates the trait name from its star level in display strings.
const StarGlyph = "★"

// Resolver maps decoded factors to display strings through the factor name
// table. Names are keyed by the canonical star-1 id of each base.
type Resolver struct {
	factors map[string]string
}

func NewResolver(factors map[string]string) *Resolver {
	return &Resolver{factors: factors}
}

// Resolve builds "<name> ★<star>" for an id.
func (r *Resolver) Resolve(id int64) (string, error) {
	base, star, _ := factor.Decode(id)
	name, ok := r.factors[base+"1"]
	if !ok {
		return "", schema.Newf("game_data/factor.json", "factor.json[%s1]", base)
	}
	return fmt.Sprintf("%s %s%d", name, StarGlyph, star), nil
}

// ResolveAll maps Resolve over ids, preserving order. Resolution is
// all-or-nothing: the first unresolvable id fails the whole call.
func (r *Resolver) ResolveAll(ids []int64) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		s, err := r.Resolve(id)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// ParseNameStar splits a display string back into its lowercased, trimmed
// name and star level.
func ParseNameStar(s string) (string, int, error) {
	name, starStr, found := strings.Cut(s, StarGlyph)
	if !found {
		return "", 0, schema.Newf("umadump_data.json", "malformed spark string: %q", s)
	}
	star, err := strconv.Atoi(starStr)
	if err != nil {
		return "", 0, schema.Newf("umadump_data.json", "malformed spark star in: %q", s)
	}
	return strings.ToLower(strings.TrimSpace(name)), star, nil
}

// starDigit is the final digit of a display string's star total. Aggregated
// totals above 9 contribute only their last digit to the category counts.
func starDigit(s string) int {
	return int(s[len(s)-1] - '0')
}

func sumStarDigits(sparks []string) int {
	total := 0
	for _, s := range sparks {
		total += starDigit(s)
	}
	return total
}

// Summary aggregates a record's resolved sparks: the lineage-wide lists with
// their counts, plus the subject's own main-slot sparks.
type Summary struct {
	BlueSparks  []string `json:"blue_sparks"`
	PinkSparks  []string `json:"pink_sparks"`
	GreenSparks []string `json:"green_sparks"`
	WhiteSparks []string `json:"white_sparks"`

	// Blue/pink/green counts are star-digit weighted; the white count is the
	// number of entries.
	BlueCount       int `json:"blue_count"`
	PinkCount       int `json:"pink_count"`
	GreenCount      int `json:"green_count"`
	WhiteCount      int `json:"white_count"`
	TotalSparkCount int `json:"total_spark_count"`

	MainBlueSpark   string   `json:"main_blue_spark"`
	MainPinkSpark   string   `json:"main_pink_spark"`
	MainGreenSpark  *string  `json:"main_green_spark"`
	MainWhiteSparks []string `json:"main_white_sparks"`
	MainWhiteCount  int      `json:"main_white_count"`
}

// BuildSummary resolves the aggregated and main-slot classifications into a
// Summary. A record without a main blue and a main pink spark is malformed.
func BuildSummary(r *Resolver, all, main factor.Classified) (Summary, error) {
	var (
		s   Summary
		err error
	)

	if s.BlueSparks, err = r.ResolveAll(all.Blue); err != nil {
		return Summary{}, err
	}
	if s.PinkSparks, err = r.ResolveAll(all.Pink); err != nil {
		return Summary{}, err
	}
	if s.GreenSparks, err = r.ResolveAll(all.Green); err != nil {
		return Summary{}, err
	}
	if s.WhiteSparks, err = r.ResolveAll(all.White); err != nil {
		return Summary{}, err
	}

	s.BlueCount = sumStarDigits(s.BlueSparks)
	s.PinkCount = sumStarDigits(s.PinkSparks)
	s.GreenCount = sumStarDigits(s.GreenSparks)
	s.WhiteCount = len(s.WhiteSparks)
	s.TotalSparkCount = s.BlueCount + s.PinkCount + s.GreenCount + s.WhiteCount

	mainBlue, err := r.ResolveAll(main.Blue)
	if err != nil {
		return Summary{}, err
	}
	mainPink, err := r.ResolveAll(main.Pink)
	if err != nil {
		return Summary{}, err
	}
	if len(mainBlue) == 0 || len(mainPink) == 0 {
		return Summary{}, schema.New("expected main blue and main pink sparks in factor_id_array", "umadump_data.json")
	}
	s.MainBlueSpark = mainBlue[0]
	s.MainPinkSpark = mainPink[0]

	mainGreen, err := r.ResolveAll(main.Green)
	if err != nil {
		return Summary{}, err
	}
	if len(mainGreen) > 0 {
		s.MainGreenSpark = &mainGreen[0]
	}

	if s.MainWhiteSparks, err = r.ResolveAll(main.White); err != nil {
		return Summary{}, err
	}
	s.MainWhiteCount = len(s.MainWhiteSparks)

	return s, nil
}
