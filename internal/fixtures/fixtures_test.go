package fixtures_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/playperu/cipherchamber/internal/escaperoom"
	"github.com/playperu/cipherchamber/internal/fixtures"
)

func TestLoadEmbedded(t *testing.T) {
	s, err := fixtures.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s.Rooms) != 3 {
		t.Errorf("expected 3 rooms, got %d", len(s.Rooms))
	}
	if len(s.Puzzles) == 0 || len(s.Items) == 0 {
		t.Fatalf("expected puzzles and items, got %d and %d", len(s.Puzzles), len(s.Items))
	}

	// Every shipped puzzle must be solvable through the validator.
	for _, p := range s.Puzzles {
		if p.Solution.IsZero() {
			t.Errorf("puzzle %d has no solution", p.ID)
		}
		if len(p.Hints) == 0 {
			t.Errorf("puzzle %d has no hints", p.ID)
		}
	}
}

func TestLoadStudyCipher(t *testing.T) {
	s, err := fixtures.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var cipher escaperoom.Puzzle
	for _, p := range s.Puzzles {
		if p.ID == 1 {
			cipher = p
		}
	}
	ok, err := escaperoom.Validate(cipher, escaperoom.Submission{Answer: " gold "})
	if err != nil || !ok {
		t.Fatalf("expected ' gold ' to solve puzzle 1, got %v, %v", ok, err)
	}
}

func TestLoadFSRejectsBrokenReferences(t *testing.T) {
	tests := []struct {
		name    string
		rooms   string
		puzzles string
		items   string
		wantErr string
	}{
		{
			name:    "missing puzzle",
			rooms:   `[{"id":1,"name":"R","difficulty":"Easy","puzzleIds":[9]}]`,
			puzzles: `[{"id":1,"type":"riddle","solution":"x"}]`,
			items:   `[]`,
			wantErr: "puzzle 9 not found",
		},
		{
			name:    "missing reward",
			rooms:   `[]`,
			puzzles: `[{"id":1,"type":"riddle","solution":"x","rewardItem":3}]`,
			items:   `[]`,
			wantErr: "reward item 3",
		},
		{
			name:    "bad type",
			rooms:   `[]`,
			puzzles: `[{"id":1,"type":"jigsaw","solution":"x"}]`,
			items:   `[]`,
			wantErr: "unknown type",
		},
		{
			name:    "bad difficulty",
			rooms:   `[{"id":1,"name":"R","difficulty":"Insane","puzzleIds":[]}]`,
			puzzles: `[]`,
			items:   `[]`,
			wantErr: "unknown difficulty",
		},
		{
			name:    "duplicate item",
			rooms:   `[]`,
			puzzles: `[]`,
			items:   `[{"id":1},{"id":1}]`,
			wantErr: "duplicate id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"rooms.json":   {Data: []byte(tt.rooms)},
				"puzzles.json": {Data: []byte(tt.puzzles)},
				"items.json":   {Data: []byte(tt.items)},
			}
			_, err := fixtures.LoadFS(fsys)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadMissingDir(t *testing.T) {
	if _, err := fixtures.Load(t.TempDir()); err == nil {
		t.Fatal("expected error for directory without fixtures")
	}
}
