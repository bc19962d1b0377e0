// Package rating computes the breeding desirability score of a fully
// resolved record. Scoring is pure: same input, same output, no mutation.
package rating

import (
	"math"
	"strings"

	"umaspark/pkg/schema"
	"umaspark/pkg/spark"
)

// Weights holds every tunable term of the heuristic. Adjusting selection
// strategy should never require touching Score itself.
type Weights struct {
	// TotalSparks is applied to the record's total spark count.
	TotalSparks float64
	// Win is added per G1 win.
	Win float64
	// NonMainWhitePenalty is subtracted per white spark outside the main slot.
	NonMainWhitePenalty float64
	// GreenCountBonus rewards each green entry beyond the first, regardless
	// of star level.
	GreenCountBonus float64
	// MainThreshold is the star level a main blue/pink spark must reach;
	// LowMainPenaltyPerStar is subtracted per missing star below it.
	MainThreshold         int
	LowMainPenaltyPerStar float64
	// MissingGreenPenalty is subtracted when the main slot has no green spark.
	MissingGreenPenalty float64
	// Conflict penalties apply per extra distinct keyword beyond the first.
	DistanceConflictPenalty float64
	AptitudeConflictPenalty float64
	// Parent rank adjustments: below the low threshold the (negative) low
	// penalty is added, above the high threshold the high bonus is added.
	// Ranks between the thresholds, inclusive, are neutral.
	ParentLowThreshold   int64
	ParentHighThreshold  int64
	ParentRankLowPenalty float64
	ParentRankHighBonus  float64
}

// DefaultWeights returns the reference weighting.
func DefaultWeights() Weights {
	return Weights{
		TotalSparks:             1.0,
		Win:                     0.5,
		NonMainWhitePenalty:     0.5,
		GreenCountBonus:         3.0,
		MainThreshold:           2,
		LowMainPenaltyPerStar:   2.0,
		MissingGreenPenalty:     2.0,
		DistanceConflictPenalty: 5.0,
		AptitudeConflictPenalty: 4.0,
		ParentLowThreshold:      8000,
		ParentHighThreshold:     10000,
		ParentRankLowPenalty:    -2.0,
		ParentRankHighBonus:     2.0,
	}
}

// Keyword sets used for conflict detection across resolved spark names.
var (
	distanceKeywords = []string{"sprint", "mile", "medium", "long"}
	aptitudeKeywords = []string{"front", "pace", "late", "end"}
)

// Input is the read-only slice of a resolved record that scoring needs.
type Input struct {
	Sparks     spark.Summary
	WinCount   int
	ParentRank int64
}

// Score computes the heuristic, clamped to zero and rounded to two decimals.
// A record lacking its main blue or pink spark is malformed, not worthless:
// scoring refuses it instead of returning zero.
func Score(in Input, w Weights) (float64, error) {
	s := in.Sparks
	score := float64(s.TotalSparkCount) * w.TotalSparks

	// small penalty for non-main white sparks
	score -= float64(s.WhiteCount-s.MainWhiteCount) * w.NonMainWhitePenalty

	if n := len(s.GreenSparks); n > 1 {
		score += float64(n-1) * w.GreenCountBonus
	}

	score += float64(in.WinCount) * w.Win

	for _, main := range []struct{ key, val string }{
		{"main_blue_spark", s.MainBlueSpark},
		{"main_pink_spark", s.MainPinkSpark},
	} {
		if main.val == "" {
			return 0, schema.Newf("umadump_data.json", "expected %s in sparks", main.key)
		}
		_, star, err := spark.ParseNameStar(main.val)
		if err != nil {
			return 0, err
		}
		if star < w.MainThreshold {
			score -= float64(w.MainThreshold-star) * w.LowMainPenaltyPerStar
		}
	}

	if s.MainGreenSpark == nil || *s.MainGreenSpark == "" {
		score -= w.MissingGreenPenalty
	}

	distanceTypes := make(map[string]bool)
	aptitudeTypes := make(map[string]bool)
	for _, sp := range append(append([]string{}, s.BlueSparks...), s.PinkSparks...) {
		name, _, err := spark.ParseNameStar(sp)
		if err != nil {
			return 0, err
		}
		for _, k := range distanceKeywords {
			if strings.Contains(name, k) {
				distanceTypes[k] = true
			}
		}
		for _, k := range aptitudeKeywords {
			if strings.Contains(name, k) {
				aptitudeTypes[k] = true
			}
		}
	}
	if len(distanceTypes) > 1 {
		score -= w.DistanceConflictPenalty * float64(len(distanceTypes)-1)
	}
	if len(aptitudeTypes) > 1 {
		score -= w.AptitudeConflictPenalty * float64(len(aptitudeTypes)-1)
	}

	if in.ParentRank < w.ParentLowThreshold {
		score += w.ParentRankLowPenalty
	} else if in.ParentRank > w.ParentHighThreshold {
		score += w.ParentRankHighBonus
	}

	return math.Round(math.Max(score, 0)*100) / 100, nil
}
