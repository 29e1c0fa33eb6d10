package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/playperu/cipherchamber/internal/escaperoom"
)

type HintResponse struct {
	Hint      string   `json:"hint,omitempty"`
	Revealed  []string `json:"revealed"`
	Remaining int      `json:"remaining"`
	HintsUsed int      `json:"hintsUsed"`
	Exhausted bool     `json:"exhausted"`
}

// handleRequestHint reveals the next hint of a puzzle. Once every hint is
// shown the request succeeds without counting another hint.
func handleRequestHint(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)

		id, ok := intParam(r, "puzzleID")
		if !ok {
			writeError(w, http.StatusNotFound, "puzzle not found")
			return
		}

		p, err := store.GetPuzzle(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "puzzle not found")
			return
		}
		if err != nil {
			logger.Error("loading puzzle", "puzzle_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		var (
			hint     string
			revealed bool
		)
		g, err := store.ModifySession(r.Context(), token, func(g *escaperoom.GameState) error {
			if !g.InRoom(p.ID) {
				return escaperoom.ErrPuzzleNotInRoom
			}
			hint, revealed = g.RequestHint(p)
			return nil
		})
		if errors.Is(err, escaperoom.ErrPuzzleNotInRoom) {
			writeError(w, http.StatusNotFound, "puzzle is not part of the current room")
			return
		}
		if err != nil {
			logger.Error("requesting hint", "puzzle_id", p.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if revealed {
			broker.Publish(token, SSEEvent{Type: eventHintUsed, PuzzleID: p.ID, HintsUsed: g.HintsUsed})
		}

		writeJSON(w, http.StatusOK, HintResponse{
			Hint:      hint,
			Revealed:  g.RevealedHints(p),
			Remaining: g.HintsRemaining(p),
			HintsUsed: g.HintsUsed,
			Exhausted: !revealed,
		})
	}
}
