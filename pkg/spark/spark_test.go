package spark

import (
	"testing"

	"umaspark/pkg/factor"
	"umaspark/pkg/schema"
)

func testFactors() map[string]string {
	return map[string]string{
		"121":      "Speed",
		"131":      "Stamina",
		"1011":     "Sprint",
		"1211":     "Power",
		"1021":     "Long",
		"10000011": "Chorus",
		"1000011":  "Tail",
	}
}

func TestResolve(t *testing.T) {
	r := NewResolver(testFactors())
	got, err := r.Resolve(1013)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Sprint ★3" {
		t.Fatalf("Resolve(1013) = %q, want %q", got, "Sprint ★3")
	}
}

func TestResolveUnknownBase(t *testing.T) {
	r := NewResolver(testFactors())
	if _, err := r.Resolve(9993); !schema.Is(err) {
		t.Fatalf("expected schema error for unknown base, got %v", err)
	}
}

func TestResolveAllFailsOnFirstUnknown(t *testing.T) {
	r := NewResolver(testFactors())
	if _, err := r.ResolveAll([]int64{121, 9993, 131}); !schema.Is(err) {
		t.Fatalf("expected schema error, got %v", err)
	}

	got, err := r.ResolveAll([]int64{121, 133})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "Speed ★1" || got[1] != "Stamina ★3" {
		t.Fatalf("ResolveAll = %v", got)
	}
}

func TestParseNameStar(t *testing.T) {
	name, star, err := ParseNameStar("Sprint ★3")
	if err != nil {
		t.Fatal(err)
	}
	if name != "sprint" || star != 3 {
		t.Fatalf("ParseNameStar = (%q, %d), want (\"sprint\", 3)", name, star)
	}

	// aggregated totals above 9 parse fully
	_, star, err = ParseNameStar("Speed ★12")
	if err != nil {
		t.Fatal(err)
	}
	if star != 12 {
		t.Fatalf("star = %d, want 12", star)
	}

	if _, _, err := ParseNameStar("no glyph here"); !schema.Is(err) {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestBuildSummary(t *testing.T) {
	r := NewResolver(testFactors())

	mainIDs := []int64{123, 1012, 10000011, 1000013}
	all := factor.Classify([]int64{124, 131, 1013, 1022, 10000011, 1000013})

	s, err := BuildSummary(r, all, factor.Classify(mainIDs))
	if err != nil {
		t.Fatal(err)
	}

	if s.BlueCount != 5 || s.PinkCount != 5 || s.GreenCount != 1 {
		t.Fatalf("star counts = (%d, %d, %d), want (5, 5, 1)", s.BlueCount, s.PinkCount, s.GreenCount)
	}
	if s.WhiteCount != 1 {
		t.Fatalf("white count = %d, want 1 (entry count, not star-weighted)", s.WhiteCount)
	}
	if s.TotalSparkCount != 12 {
		t.Fatalf("total = %d, want 12", s.TotalSparkCount)
	}

	if s.MainBlueSpark != "Speed ★3" || s.MainPinkSpark != "Sprint ★2" {
		t.Fatalf("main sparks = (%q, %q)", s.MainBlueSpark, s.MainPinkSpark)
	}
	if s.MainGreenSpark == nil || *s.MainGreenSpark != "Chorus ★1" {
		t.Fatalf("main green = %v, want Chorus ★1", s.MainGreenSpark)
	}
	if s.MainWhiteCount != 1 {
		t.Fatalf("main white count = %d, want 1", s.MainWhiteCount)
	}
}

func TestBuildSummaryRequiresMainBlueAndPink(t *testing.T) {
	r := NewResolver(testFactors())

	// main slot has a blue but no pink spark
	mainIDs := factor.Classify([]int64{123})
	all := factor.Classify([]int64{123})
	if _, err := BuildSummary(r, all, mainIDs); !schema.Is(err) {
		t.Fatalf("expected schema error for missing main pink, got %v", err)
	}
}

func TestBuildSummaryMainGreenOptional(t *testing.T) {
	r := NewResolver(testFactors())

	mainIDs := factor.Classify([]int64{123, 1012})
	all := factor.Classify([]int64{123, 1012})
	s, err := BuildSummary(r, all, mainIDs)
	if err != nil {
		t.Fatal(err)
	}
	if s.MainGreenSpark != nil {
		t.Fatalf("main green = %v, want nil", *s.MainGreenSpark)
	}
}

func TestStarCountUsesLastDigit(t *testing.T) {
	r := NewResolver(testFactors())

	// base 12 with an aggregated star total of 12 encodes as 1212; resolution
	// reads only the final digit, so the id is looked up as base 121 star 2
	resolved, err := r.ResolveAll([]int64{1212})
	if err != nil {
		t.Fatal(err)
	}
	if resolved[0] != "Power ★2" {
		t.Fatalf("resolved = %q, want %q", resolved[0], "Power ★2")
	}
	if got := sumStarDigits(resolved); got != 2 {
		t.Fatalf("sumStarDigits = %d, want 2", got)
	}
}
