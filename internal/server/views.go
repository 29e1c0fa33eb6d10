package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/cipherchamber/internal/escaperoom"
)

// PuzzleView is a puzzle as players see it: no solution, no hint text.
type PuzzleView struct {
	ID          int                   `json:"id"`
	Type        escaperoom.PuzzleType `json:"type"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	CipherText  string                `json:"cipherText,omitempty"`
	Sequence    []int                 `json:"sequence,omitempty"`
	Symbols     []string              `json:"symbols,omitempty"`
	Options     []int                 `json:"options,omitempty"`
	Clues       []string              `json:"clues,omitempty"`
	Keys        []string              `json:"keys,omitempty"`
	Locks       []string              `json:"locks,omitempty"`
	Locations   []escaperoom.Location `json:"locations,omitempty"`
	Riddle      string                `json:"riddle,omitempty"`
	HintCount   int                   `json:"hintCount"`
}

func newPuzzleView(p escaperoom.Puzzle) PuzzleView {
	return PuzzleView{
		ID:          p.ID,
		Type:        p.Type,
		Title:       p.Title,
		Description: p.Description,
		CipherText:  p.CipherText,
		Sequence:    p.Sequence,
		Symbols:     p.Symbols,
		Options:     p.Options,
		Clues:       p.Clues,
		Keys:        p.Keys,
		Locks:       p.Locks,
		Locations:   p.Locations,
		Riddle:      p.Riddle,
		HintCount:   len(p.Hints),
	}
}

// GamePuzzleView adds a session's progress on the puzzle.
type GamePuzzleView struct {
	PuzzleView
	Solved         bool     `json:"solved"`
	RevealedHints  []string `json:"revealedHints"`
	HintsRemaining int      `json:"hintsRemaining"`
}

func newGamePuzzleView(p escaperoom.Puzzle, g *escaperoom.GameState) GamePuzzleView {
	return GamePuzzleView{
		PuzzleView:     newPuzzleView(p),
		Solved:         g.IsSolved(p.ID),
		RevealedHints:  g.RevealedHints(p),
		HintsRemaining: g.HintsRemaining(p),
	}
}

// HotspotView is a hotspot of the current room and the puzzle behind it.
type HotspotView struct {
	escaperoom.Hotspot
	PuzzleID int  `json:"puzzleId,omitempty"`
	Solved   bool `json:"solved"`
}

func hotspotViews(room escaperoom.Room, g *escaperoom.GameState) []HotspotView {
	layout := room.Layout()
	out := make([]HotspotView, 0, len(layout))
	for _, h := range layout {
		v := HotspotView{Hotspot: h}
		if pid, ok := g.PuzzleAt(room, h.ID); ok {
			v.PuzzleID = pid
			v.Solved = g.IsSolved(pid)
		}
		out = append(out, v)
	}
	return out
}

// withLayout returns room with its effective hotspots filled in.
func withLayout(room escaperoom.Room) escaperoom.Room {
	room.Hotspots = room.Layout()
	return room
}

func intParam(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	return n, err == nil
}

// parseIDs parses a comma-separated id list such as "1,2,5".
func parseIDs(s string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, n)
	}
	return ids, nil
}
