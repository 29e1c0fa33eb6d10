package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/playperu/cipherchamber/internal/escaperoom"
)

const (
	msgSolved    = "Puzzle solved!"
	msgIncorrect = "Incorrect solution. Try again!"
)

type SolveRequest = escaperoom.Submission

type SolveResponse struct {
	IsCorrect  bool                  `json:"isCorrect"`
	Message    string                `json:"message"`
	PuzzleID   int                   `json:"puzzleId"`
	RewardItem *escaperoom.Item      `json:"rewardItem,omitempty"`
	IsComplete bool                  `json:"isComplete"`
	State      *escaperoom.GameState `json:"state,omitempty"`
}

var errIncorrect = errors.New("incorrect solution")

func handleSolvePuzzle(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)

		id, ok := intParam(r, "puzzleID")
		if !ok {
			writeError(w, http.StatusNotFound, "puzzle not found")
			return
		}

		var req SolveRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
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
			itemAdded   bool
			wasComplete bool
		)
		g, err := store.ModifySession(r.Context(), token, func(g *escaperoom.GameState) error {
			if !g.InRoom(p.ID) {
				return escaperoom.ErrPuzzleNotInRoom
			}
			if g.IsSolved(p.ID) {
				return errAlreadySolved
			}
			correct, err := escaperoom.Validate(p, req)
			if err != nil {
				return err
			}
			if !correct {
				return errIncorrect
			}

			wasComplete = g.IsComplete
			if err := g.SolvePuzzle(p.ID); err != nil {
				return err
			}
			if p.RewardItem != 0 {
				itemAdded = g.AddToInventory(p.RewardItem)
			}
			return nil
		})
		switch {
		case errors.Is(err, errIncorrect):
			broker.Publish(token, SSEEvent{Type: eventWrongAnswer, PuzzleID: p.ID})
			writeJSON(w, http.StatusOK, SolveResponse{
				IsCorrect: false,
				Message:   msgIncorrect,
				PuzzleID:  p.ID,
			})
			return
		case errors.Is(err, escaperoom.ErrPuzzleNotInRoom):
			writeError(w, http.StatusNotFound, "puzzle is not part of the current room")
			return
		case errors.Is(err, errAlreadySolved):
			writeError(w, http.StatusConflict, "puzzle already solved")
			return
		case errors.Is(err, escaperoom.ErrIncompleteSubmission):
			writeError(w, http.StatusBadRequest, "submission is incomplete")
			return
		case err != nil:
			logger.Error("solving puzzle", "puzzle_id", p.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := SolveResponse{
			IsCorrect:  true,
			Message:    msgSolved,
			PuzzleID:   p.ID,
			IsComplete: g.IsComplete,
			State:      g,
		}
		if p.RewardItem != 0 {
			it, err := store.GetItem(r.Context(), p.RewardItem)
			if err == nil {
				resp.RewardItem = &it
			} else if !errors.Is(err, ErrNotFound) {
				logger.Error("loading reward item", "item_id", p.RewardItem, "error", err)
			}
		}

		broker.Publish(token, SSEEvent{Type: eventPuzzleSolved, PuzzleID: p.ID})
		if itemAdded {
			broker.Publish(token, SSEEvent{Type: eventItemAdded, ItemID: p.RewardItem})
		}
		if g.IsComplete && !wasComplete {
			broker.Publish(token, SSEEvent{Type: eventGameComplete, RoomID: g.CurrentRoomID, Elapsed: g.ElapsedTime})
			logger.Info("room complete", "room_id", g.CurrentRoomID, "elapsed", g.ElapsedTime, "hints", g.HintsUsed)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
