package escaperoom

import (
	"errors"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrIncompleteSubmission = errors.New("submission is incomplete")
	ErrUnknownPuzzleType    = errors.New("unknown puzzle type")
)

// Submission is a player's attempt at a puzzle. Which field is read depends
// on the puzzle type: Answer for cipher and riddle, Option for pattern,
// Assignments for logic and Numbers for hidden.
type Submission struct {
	Answer      string            `json:"answer,omitempty"`
	Option      *int              `json:"option,omitempty"`
	Assignments map[string]string `json:"assignments,omitempty"`
	Numbers     []int             `json:"numbers,omitempty"`
}

// Validate checks sub against the stored solution of p. A wrong answer is
// (false, nil); an error means the submission could not be judged at all.
func Validate(p Puzzle, sub Submission) (bool, error) {
	switch p.Type {
	case PuzzleCipher, PuzzleRiddle:
		if normalize(sub.Answer) == "" {
			return false, ErrIncompleteSubmission
		}
		return MatchText(p.Solution.Text, sub.Answer), nil

	case PuzzlePattern:
		if sub.Option == nil {
			return false, ErrIncompleteSubmission
		}
		return p.Solution.kind == solutionOption && *sub.Option == p.Solution.Option, nil

	case PuzzleLogic:
		if len(sub.Assignments) < len(p.Keys) || len(sub.Assignments) == 0 {
			return false, ErrIncompleteSubmission
		}
		return matchAssignments(p.Solution.Assignments, sub.Assignments), nil

	case PuzzleHidden:
		if len(sub.Numbers) == 0 || len(sub.Numbers) < len(p.Locations) {
			return false, ErrIncompleteSubmission
		}
		return MatchText(p.Solution.Text, CanonicalNumbers(sub.Numbers)), nil
	}
	return false, ErrUnknownPuzzleType
}

// MatchText compares two answers ignoring case and surrounding whitespace.
func MatchText(stored, submitted string) bool {
	return normalize(stored) == normalize(submitted)
}

// CanonicalNumbers sorts found numbers ascending and concatenates them,
// e.g. [7 3 9 1] becomes "1379".
func CanonicalNumbers(nums []int) string {
	sorted := slices.Clone(nums)
	slices.Sort(sorted)
	var b strings.Builder
	for _, n := range sorted {
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

func matchAssignments(stored, submitted map[string]string) bool {
	if len(stored) == 0 || len(stored) != len(submitted) {
		return false
	}
	for k, want := range stored {
		got, ok := submitted[k]
		if !ok || !MatchText(want, got) {
			return false
		}
	}
	return true
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
