// Package escaperoom defines the core domain types of the escape-room game:
// reference records (rooms, puzzles, items), the per-session game state and
// the rules that act on them. It does no I/O.
package escaperoom

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty matches s case-insensitively against the known levels.
func ParseDifficulty(s string) (Difficulty, bool) {
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, true
		}
	}
	return "", false
}

type PuzzleType string

const (
	PuzzleCipher  PuzzleType = "cipher"
	PuzzlePattern PuzzleType = "pattern"
	PuzzleLogic   PuzzleType = "logic"
	PuzzleHidden  PuzzleType = "hidden"
	PuzzleRiddle  PuzzleType = "riddle"
)

func (t PuzzleType) Valid() bool {
	switch t {
	case PuzzleCipher, PuzzlePattern, PuzzleLogic, PuzzleHidden, PuzzleRiddle:
		return true
	}
	return false
}

type Room struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Difficulty    Difficulty `json:"difficulty"`
	PuzzleIDs     []int      `json:"puzzleIds"`
	EstimatedTime string     `json:"estimatedTime"`
	Hotspots      []Hotspot  `json:"hotspots,omitempty"`
}

// Hotspot is a clickable region of a room, positioned in percent of the
// room view.
type Hotspot struct {
	ID   string `json:"id"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Size string `json:"size"`
	Icon string `json:"icon"`
}

// Location is one clickable number in a hidden-number puzzle.
type Location struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Number int `json:"number"`
}

type Puzzle struct {
	ID          int        `json:"id"`
	Type        PuzzleType `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`

	// cipher
	CipherText string `json:"cipherText,omitempty"`

	// pattern
	Sequence []int    `json:"sequence,omitempty"`
	Symbols  []string `json:"symbols,omitempty"`
	Options  []int    `json:"options,omitempty"`

	// logic
	Clues []string `json:"clues,omitempty"`
	Keys  []string `json:"keys,omitempty"`
	Locks []string `json:"locks,omitempty"`

	// hidden
	Locations []Location `json:"locations,omitempty"`

	// riddle
	Riddle string `json:"riddle,omitempty"`

	Solution   Solution `json:"solution"`
	Hints      []string `json:"hints"`
	RewardItem int      `json:"rewardItem,omitempty"`
}

type Item struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	UsableOn    []string `json:"usableOn"`
}

// CanUseOn reports whether the item can be used on the given hotspot.
func (it Item) CanUseOn(hotspotID string) bool {
	for _, h := range it.UsableOn {
		if h == hotspotID {
			return true
		}
	}
	return false
}

// Solution is the stored answer of a puzzle. In JSON it is a string
// (cipher, riddle, hidden), a number (pattern option) or an object mapping
// logic-grid keys to locks.
type Solution struct {
	Text        string
	Option      int
	Assignments map[string]string

	kind solutionKind
}

type solutionKind int

const (
	solutionNone solutionKind = iota
	solutionText
	solutionOption
	solutionAssignments
)

func TextSolution(s string) Solution { return Solution{Text: s, kind: solutionText} }

func OptionSolution(n int) Solution { return Solution{Option: n, kind: solutionOption} }

func AssignmentSolution(m map[string]string) Solution {
	return Solution{Assignments: m, kind: solutionAssignments}
}

func (s Solution) IsZero() bool { return s.kind == solutionNone }

func (s Solution) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case solutionText:
		return json.Marshal(s.Text)
	case solutionOption:
		return json.Marshal(s.Option)
	case solutionAssignments:
		return json.Marshal(s.Assignments)
	}
	return []byte("null"), nil
}

func (s *Solution) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = Solution{}
		return nil
	}
	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = TextSolution(text)
	case '{':
		var m map[string]string
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*s = AssignmentSolution(m)
	default:
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("solution must be a string, integer or object: %w", err)
		}
		*s = OptionSolution(n)
	}
	return nil
}
