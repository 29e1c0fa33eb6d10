package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/playperu/cipherchamber/internal/escaperoom"
)

type AdminRoomRequest struct {
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Difficulty    string               `json:"difficulty"`
	PuzzleIDs     []int                `json:"puzzleIds"`
	EstimatedTime string               `json:"estimatedTime"`
	Hotspots      []escaperoom.Hotspot `json:"hotspots,omitempty"`
}

// validate normalizes the request and checks it against the puzzle
// catalogue. It returns a message for the client, or "" when valid.
func (req *AdminRoomRequest) validate(puzzles []escaperoom.Puzzle) string {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.EstimatedTime = strings.TrimSpace(req.EstimatedTime)
	if req.Name == "" {
		return "name is required"
	}
	d, ok := escaperoom.ParseDifficulty(req.Difficulty)
	if !ok {
		return "difficulty must be Easy, Medium or Hard"
	}
	req.Difficulty = string(d)
	if len(req.PuzzleIDs) == 0 {
		return "at least one puzzle is required"
	}

	known := mapset.New[int]()
	for _, p := range puzzles {
		known.Put(p.ID)
	}
	seen := mapset.New[int]()
	for _, id := range req.PuzzleIDs {
		if !known.Has(id) {
			return "unknown puzzle id in puzzleIds"
		}
		if seen.Has(id) {
			return "puzzleIds must not repeat"
		}
		seen.Put(id)
	}

	spots := mapset.New[string]()
	for _, h := range req.Hotspots {
		if strings.TrimSpace(h.ID) == "" {
			return "each hotspot must have an id"
		}
		if spots.Has(h.ID) {
			return "hotspot ids must be unique"
		}
		spots.Put(h.ID)
	}
	return ""
}

func (req AdminRoomRequest) room() escaperoom.Room {
	return escaperoom.Room{
		Name:          req.Name,
		Description:   req.Description,
		Difficulty:    escaperoom.Difficulty(req.Difficulty),
		PuzzleIDs:     req.PuzzleIDs,
		EstimatedTime: req.EstimatedTime,
		Hotspots:      req.Hotspots,
	}
}

func handleAdminListPuzzles(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		puzzles, err := store.ListPuzzles(r.Context())
		if err != nil {
			logger.Error("listing puzzles", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, puzzles)
	}
}

func readRoomRequest(w http.ResponseWriter, r *http.Request, logger *slog.Logger, store Store) (AdminRoomRequest, bool) {
	var req AdminRoomRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	puzzles, err := store.ListPuzzles(r.Context())
	if err != nil {
		logger.Error("listing puzzles", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return req, false
	}
	if msg := req.validate(puzzles); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return req, false
	}
	return req, true
}

func handleAdminCreateRoom(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := readRoomRequest(w, r, logger, store)
		if !ok {
			return
		}

		room, err := store.CreateRoom(r.Context(), req.room())
		if err != nil {
			logger.Error("creating room", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		logger.Info("room created", "room_id", room.ID, "admin", adminFrom(r).Email)
		writeJSON(w, http.StatusCreated, room)
	}
}

func handleAdminUpdateRoom(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := intParam(r, "roomID")
		if !ok {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}
		req, ok := readRoomRequest(w, r, logger, store)
		if !ok {
			return
		}

		room, err := store.UpdateRoom(r.Context(), id, req.room())
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}
		if err != nil {
			logger.Error("updating room", "room_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, room)
	}
}

func handleAdminDeleteRoom(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := intParam(r, "roomID")
		if !ok {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}

		err := store.DeleteRoom(r.Context(), id)
		switch {
		case errors.Is(err, ErrRoomInUse):
			writeError(w, http.StatusConflict, "cannot delete room with existing game sessions")
			return
		case errors.Is(err, ErrNotFound):
			writeError(w, http.StatusNotFound, "room not found")
			return
		case err != nil:
			logger.Error("deleting room", "room_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		logger.Info("room deleted", "room_id", id, "admin", adminFrom(r).Email)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
