package rating

import (
	"testing"

	"umaspark/pkg/schema"
	"umaspark/pkg/spark"
)

func strPtr(s string) *string { return &s }

// baseInput is a clean record: no conflicts, main stars at threshold,
// neutral parent rank.
func baseInput() Input {
	return Input{
		Sparks: spark.Summary{
			BlueSparks:      []string{"Speed ★3"},
			PinkSparks:      []string{"Sprint ★3"},
			GreenSparks:     []string{"Chorus ★1"},
			WhiteSparks:     []string{"Tail ★1", "Corner ★1"},
			TotalSparkCount: 10,
			WhiteCount:      2,
			MainBlueSpark:   "Speed ★3",
			MainPinkSpark:   "Sprint ★3",
			MainGreenSpark:  strPtr("Chorus ★1"),
			MainWhiteCount:  2,
		},
		WinCount:   2,
		ParentRank: 9000,
	}
}

func mustScore(t *testing.T, in Input) float64 {
	t.Helper()
	got, err := Score(in, DefaultWeights())
	if err != nil {
		t.Fatal(err)
	}
	return got
}

func TestScoreBaseline(t *testing.T) {
	// 10 total + 2 wins * 0.5, everything else neutral
	if got := mustScore(t, baseInput()); got != 11.0 {
		t.Fatalf("score = %v, want 11.0", got)
	}
}

func TestScoreDeterministic(t *testing.T) {
	a := mustScore(t, baseInput())
	b := mustScore(t, baseInput())
	if a != b {
		t.Fatalf("same input scored differently: %v vs %v", a, b)
	}
}

func TestScoreClampedAtZero(t *testing.T) {
	in := baseInput()
	in.Sparks.TotalSparkCount = 0
	in.Sparks.WhiteCount = 20
	in.Sparks.MainWhiteCount = 0
	in.WinCount = 0
	in.ParentRank = 1000
	if got := mustScore(t, in); got != 0.0 {
		t.Fatalf("score = %v, want 0.0 (clamped)", got)
	}
}

func TestNonMainWhitePenalty(t *testing.T) {
	in := baseInput()
	in.Sparks.WhiteCount = 6
	in.Sparks.MainWhiteCount = 2
	// 4 non-main whites at 0.5 each
	if got := mustScore(t, in); got != 9.0 {
		t.Fatalf("score = %v, want 9.0", got)
	}
}

func TestMultipleGreenEntriesRaiseScore(t *testing.T) {
	single := mustScore(t, baseInput())

	in := baseInput()
	in.Sparks.GreenSparks = []string{"Chorus ★1", "Anthem ★1"}
	double := mustScore(t, in)

	if double != single+3.0 {
		t.Fatalf("two green entries scored %v, want %v", double, single+3.0)
	}

	in.Sparks.GreenSparks = []string{"Chorus ★1", "Anthem ★1", "Encore ★1"}
	if triple := mustScore(t, in); triple != single+6.0 {
		t.Fatalf("three green entries scored %v, want %v", triple, single+6.0)
	}
}

func TestLowMainStarPenalty(t *testing.T) {
	in := baseInput()
	in.Sparks.MainBlueSpark = "Speed ★1"
	// one star below threshold 2 costs 2.0
	if got := mustScore(t, in); got != 9.0 {
		t.Fatalf("score = %v, want 9.0", got)
	}

	in.Sparks.MainPinkSpark = "Sprint ★1"
	if got := mustScore(t, in); got != 7.0 {
		t.Fatalf("score = %v, want 7.0", got)
	}
}

func TestMissingMainGreenPenalty(t *testing.T) {
	in := baseInput()
	in.Sparks.MainGreenSpark = nil
	if got := mustScore(t, in); got != 9.0 {
		t.Fatalf("score = %v, want 9.0", got)
	}
}

func TestDistanceConflictPenalty(t *testing.T) {
	in := baseInput()
	in.Sparks.PinkSparks = []string{"Sprint ★3", "Mile ★1"}
	// two distinct distance keywords: one conflict at 5.0
	if got := mustScore(t, in); got != 6.0 {
		t.Fatalf("score = %v, want 6.0", got)
	}

	in.Sparks.PinkSparks = []string{"Sprint ★3", "Mile ★1", "Long ★1", "Medium ★1"}
	if got := mustScore(t, in); got != 0.0 {
		t.Fatalf("score = %v, want 0.0 (three conflicts, clamped from -4)", got)
	}
}

func TestAptitudeConflictPenalty(t *testing.T) {
	in := baseInput()
	in.Sparks.PinkSparks = []string{"Front Runner ★3", "Pace Chaser ★1"}
	if got := mustScore(t, in); got != 7.0 {
		t.Fatalf("score = %v, want 7.0", got)
	}
}

func TestConflictCountsDistinctKeywordsNotOccurrences(t *testing.T) {
	in := baseInput()
	// "sprint" twice is not a conflict
	in.Sparks.PinkSparks = []string{"Sprint ★3", "Sprint Star ★1"}
	if got := mustScore(t, in); got != 11.0 {
		t.Fatalf("score = %v, want 11.0", got)
	}
}

func TestParentRankBands(t *testing.T) {
	cases := []struct {
		rank int64
		want float64
	}{
		{7999, 9.0},   // below the low threshold
		{8000, 11.0},  // thresholds are inclusive-neutral
		{10000, 11.0},
		{10001, 13.0}, // above the high threshold
	}
	for _, c := range cases {
		in := baseInput()
		in.ParentRank = c.rank
		if got := mustScore(t, in); got != c.want {
			t.Fatalf("rank %d scored %v, want %v", c.rank, got, c.want)
		}
	}
}

func TestMissingMainSparkIsSchemaError(t *testing.T) {
	in := baseInput()
	in.Sparks.MainBlueSpark = ""
	if _, err := Score(in, DefaultWeights()); !schema.Is(err) {
		t.Fatalf("expected schema error for missing main blue spark, got %v", err)
	}

	in = baseInput()
	in.Sparks.MainPinkSpark = ""
	if _, err := Score(in, DefaultWeights()); !schema.Is(err) {
		t.Fatalf("expected schema error for missing main pink spark, got %v", err)
	}
}

func TestScoreRoundedToTwoDecimals(t *testing.T) {
	w := DefaultWeights()
	w.Win = 0.333
	in := baseInput()
	got, err := Score(in, w)
	if err != nil {
		t.Fatal(err)
	}
	// 10 + 2*0.333 = 10.666 -> 10.67
	if got != 10.67 {
		t.Fatalf("score = %v, want 10.67", got)
	}
}
