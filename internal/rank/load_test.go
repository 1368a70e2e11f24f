package rank

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const shortLadder = `{
  "version": "1.2.0",
  "ranks": [
    {"id": "e", "display_name": "E-Rank Hunter", "min_xp": 0, "xp_to_next": 100, "days_to_next": 3},
    {"id": "D", "min_xp": 100, "xp_to_next": 0, "days_to_next": 0}
  ],
  "assessment": {"ceiling": "d", "bands": [{"min_score": 0, "rank": "E"}, {"min_score": 120, "rank": "D"}]}
}`

func TestLoadLadder(t *testing.T) {
	l, err := LoadLadder(strings.NewReader(shortLadder))
	if err != nil {
		t.Fatalf("LoadLadder: %v", err)
	}
	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}
	if l.Lowest() != E || l.Terminal() != D {
		t.Errorf("ladder = %v, want [E D]", l.IDs())
	}
	if l.Assessment().Ceiling != D {
		t.Errorf("ceiling = %s, want D", l.Assessment().Ceiling)
	}

	e, err := NewEngine(l)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if got := e.RankFromXP(100); got != D {
		t.Errorf("RankFromXP(100) = %s, want D", got)
	}
	if got := e.RankFromAssessmentScore(120); got != D {
		t.Errorf("RankFromAssessmentScore(120) = %s, want D", got)
	}
}

func TestLoadLadder_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"not json", `{`, "parse ladder"},
		{"missing ranks", `{"version": "1.0.0", "assessment": {"ceiling": "E", "bands": [{"min_score": 0, "rank": "E"}]}}`, "ladder schema"},
		{"negative xp", strings.Replace(shortLadder, `"min_xp": 100`, `"min_xp": -1`, 1), "ladder schema"},
		{"unknown field", strings.Replace(shortLadder, `"version": "1.2.0",`, `"version": "1.2.0", "extra": true,`, 1), "ladder schema"},
		{"bad version", strings.Replace(shortLadder, "1.2.0", "one", 1), "not valid semver"},
		{"future major", strings.Replace(shortLadder, "1.2.0", "2.0.0", 1), "unsupported"},
		{"invariant broken", strings.Replace(shortLadder, `"xp_to_next": 100`, `"xp_to_next": 50`, 1), "threshold span"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLadder(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestMarshalLadder_RoundTripsDefault(t *testing.T) {
	data, err := MarshalLadder(DefaultLadder())
	if err != nil {
		t.Fatalf("MarshalLadder: %v", err)
	}
	path := filepath.Join(t.TempDir(), "ladder.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := LoadLadderFile(path)
	if err != nil {
		t.Fatalf("LoadLadderFile: %v", err)
	}
	if got, want := l.IDs(), DefaultLadder().IDs(); len(got) != len(want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for i, c := range l.Ranks() {
		if c != DefaultLadder().Ranks()[i] {
			t.Errorf("rank %d = %+v, want %+v", i, c, DefaultLadder().Ranks()[i])
		}
	}
}

func TestLoadLadderFile_Missing(t *testing.T) {
	if _, err := LoadLadderFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
