package races

import (
	"testing"

	"umaspark/pkg/gamedata"
	"umaspark/pkg/schema"
)

func testTable() map[string]gamedata.Race {
	return map[string]gamedata.Race{
		"300": {Grade: 100, Group: 1},
		"301": {Grade: 300, Group: 1},
		"302": {Grade: 100, Group: 7},
	}
}

func TestIsTopWin(t *testing.T) {
	cases := []struct {
		name string
		r    Result
		want bool
	}{
		{"g1 first place", Result{ProgramID: 300, ResultRank: 1}, true},
		{"g1 second place", Result{ProgramID: 300, ResultRank: 2}, false},
		{"lower grade win", Result{ProgramID: 301, ResultRank: 1}, false},
		{"wrong group win", Result{ProgramID: 302, ResultRank: 1}, false},
	}
	for _, c := range cases {
		got, err := IsTopWin(c.r, testTable())
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got != c.want {
			t.Fatalf("%s: IsTopWin = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestIsTopWinUnknownProgram(t *testing.T) {
	if _, err := IsTopWin(Result{ProgramID: 999, ResultRank: 1}, testTable()); !schema.Is(err) {
		t.Fatalf("expected schema error for unknown program id, got %v", err)
	}
}

func TestCountWins(t *testing.T) {
	results := []Result{
		{ProgramID: 300, ResultRank: 1},
		{ProgramID: 300, ResultRank: 3},
		{ProgramID: 301, ResultRank: 1},
		{ProgramID: 300, ResultRank: 1},
	}
	got, err := CountWins(results, testTable())
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Fatalf("CountWins = %d, want 2", got)
	}
}

func TestCountWinsFailsFast(t *testing.T) {
	results := []Result{
		{ProgramID: 300, ResultRank: 1},
		{ProgramID: 999, ResultRank: 1},
	}
	if _, err := CountWins(results, testTable()); !schema.Is(err) {
		t.Fatalf("expected schema error, got %v", err)
	}
}
