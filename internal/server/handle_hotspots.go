package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/cipherchamber/internal/escaperoom"
)

type HotspotRequest struct {
	ItemID int `json:"itemId,omitempty"`
}

type HotspotResponse struct {
	Hotspot  escaperoom.Hotspot `json:"hotspot"`
	Puzzle   *GamePuzzleView    `json:"puzzle,omitempty"`
	ItemUsed bool               `json:"itemUsed"`
	Message  string             `json:"message,omitempty"`
}

// handleHotspot opens the puzzle behind a hotspot of the current room. When
// the body names a held item it is tried on the hotspot first; items are
// never consumed.
func handleHotspot(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)

		var req HotspotRequest
		if err := readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		g, err := store.Session(r.Context(), token)
		if err != nil {
			logger.Error("loading session", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		room, err := store.GetRoom(r.Context(), g.CurrentRoomID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}
		if err != nil {
			logger.Error("loading room", "room_id", g.CurrentRoomID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		hotspotID := chi.URLParam(r, "hotspotID")
		h, _, ok := room.Hotspot(hotspotID)
		if !ok {
			writeError(w, http.StatusNotFound, "hotspot not found")
			return
		}

		resp := HotspotResponse{Hotspot: h}

		if req.ItemID != 0 {
			if !g.HasItem(req.ItemID) {
				writeError(w, http.StatusConflict, "item is not in the inventory")
				return
			}
			it, err := store.GetItem(r.Context(), req.ItemID)
			if errors.Is(err, ErrNotFound) {
				writeError(w, http.StatusNotFound, "item not found")
				return
			}
			if err != nil {
				logger.Error("loading item", "item_id", req.ItemID, "error", err)
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			if it.CanUseOn(h.ID) {
				resp.ItemUsed = true
				resp.Message = fmt.Sprintf("You used the %s on the %s.", it.Name, h.ID)
				broker.Publish(token, SSEEvent{Type: eventItemUsed, ItemID: it.ID, HotspotID: h.ID})
			} else {
				resp.Message = fmt.Sprintf("The %s can't be used here.", it.Name)
			}
		}

		if pid, ok := g.PuzzleAt(room, h.ID); ok {
			p, err := store.GetPuzzle(r.Context(), pid)
			if err != nil && !errors.Is(err, ErrNotFound) {
				logger.Error("loading puzzle", "puzzle_id", pid, "error", err)
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			if err == nil {
				view := newGamePuzzleView(p, g)
				resp.Puzzle = &view
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
