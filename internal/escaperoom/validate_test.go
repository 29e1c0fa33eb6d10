package escaperoom

import (
	"encoding/json"
	"errors"
	"testing"
)

func intPtr(n int) *int { return &n }

func TestValidate(t *testing.T) {
	cipher := Puzzle{ID: 1, Type: PuzzleCipher, Solution: TextSolution("Gold")}
	riddle := Puzzle{ID: 2, Type: PuzzleRiddle, Solution: TextSolution("a map")}
	pattern := Puzzle{ID: 3, Type: PuzzlePattern, Options: []int{8, 10, 12, 16}, Solution: OptionSolution(2)}
	logic := Puzzle{
		ID:       5,
		Type:     PuzzleLogic,
		Keys:     []string{"red", "blue"},
		Locks:    []string{"A", "B"},
		Solution: AssignmentSolution(map[string]string{"red": "B", "blue": "A"}),
	}
	hidden := Puzzle{
		ID:   7,
		Type: PuzzleHidden,
		Locations: []Location{
			{X: 10, Y: 10, Number: 7}, {X: 40, Y: 20, Number: 3},
			{X: 60, Y: 70, Number: 9}, {X: 80, Y: 30, Number: 1},
		},
		Solution: TextSolution("1379"),
	}

	tests := []struct {
		name    string
		puzzle  Puzzle
		sub     Submission
		want    bool
		wantErr error
	}{
		{"cipher exact", cipher, Submission{Answer: "Gold"}, true, nil},
		{"cipher case and space", cipher, Submission{Answer: "  gOLD "}, true, nil},
		{"cipher wrong", cipher, Submission{Answer: "silver"}, false, nil},
		{"cipher blank", cipher, Submission{Answer: "   "}, false, ErrIncompleteSubmission},
		{"riddle inner space kept", riddle, Submission{Answer: "A Map"}, true, nil},
		{"riddle inner space differs", riddle, Submission{Answer: "amap"}, false, nil},
		{"pattern right", pattern, Submission{Option: intPtr(2)}, true, nil},
		{"pattern wrong", pattern, Submission{Option: intPtr(0)}, false, nil},
		{"pattern missing", pattern, Submission{Answer: "2"}, false, ErrIncompleteSubmission},
		{"logic right", logic, Submission{Assignments: map[string]string{"red": "b", "blue": " A"}}, true, nil},
		{"logic swapped", logic, Submission{Assignments: map[string]string{"red": "A", "blue": "B"}}, false, nil},
		{"logic partial", logic, Submission{Assignments: map[string]string{"red": "B"}}, false, ErrIncompleteSubmission},
		{"logic extra key", logic, Submission{Assignments: map[string]string{"red": "B", "blue": "A", "green": "C"}}, false, nil},
		{"hidden any order", hidden, Submission{Numbers: []int{9, 1, 7, 3}}, true, nil},
		{"hidden wrong", hidden, Submission{Numbers: []int{9, 1, 7, 4}}, false, nil},
		{"hidden too few", hidden, Submission{Numbers: []int{9, 1}}, false, ErrIncompleteSubmission},
		{"unknown type", Puzzle{Type: "jigsaw"}, Submission{Answer: "x"}, false, ErrUnknownPuzzleType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.puzzle, tt.sub)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCanonicalNumbers(t *testing.T) {
	nums := []int{7, 3, 9, 1}
	if got := CanonicalNumbers(nums); got != "1379" {
		t.Errorf("expected 1379, got %q", got)
	}
	if nums[0] != 7 {
		t.Error("input slice was reordered")
	}
}

func TestSolutionJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Solution
	}{
		{"text", `"gold"`, TextSolution("gold")},
		{"option", `2`, OptionSolution(2)},
		{"assignments", `{"red":"B"}`, AssignmentSolution(map[string]string{"red": "B"})},
		{"null", `null`, Solution{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Solution
			if err := json.Unmarshal([]byte(tt.in), &s); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if s.kind != tt.want.kind || s.Text != tt.want.Text || s.Option != tt.want.Option {
				t.Errorf("expected %+v, got %+v", tt.want, s)
			}
			out, err := json.Marshal(s)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(out) != tt.in {
				t.Errorf("expected %s, got %s", tt.in, out)
			}
		})
	}

	var s Solution
	if err := json.Unmarshal([]byte(`true`), &s); err == nil {
		t.Error("expected error for boolean solution")
	}
}
