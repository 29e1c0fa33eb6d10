package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/playperu/cipherchamber/internal/escaperoom"
)

func handleListRooms(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rooms, err := store.ListRooms(r.Context())
		if err != nil {
			logger.Error("listing rooms", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		filter := strings.TrimSpace(r.URL.Query().Get("difficulty"))
		if filter == "" || strings.EqualFold(filter, "all") {
			writeJSON(w, http.StatusOK, rooms)
			return
		}

		// An unknown difficulty matches nothing.
		want, _ := escaperoom.ParseDifficulty(filter)
		out := []escaperoom.Room{}
		for _, room := range rooms {
			if room.Difficulty == want {
				out = append(out, room)
			}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func handleGetRoom(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := intParam(r, "roomID")
		if !ok {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}

		room, err := store.GetRoom(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}
		if err != nil {
			logger.Error("loading room", "room_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, withLayout(room))
	}
}

func handleRoomPuzzles(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := intParam(r, "roomID")
		if !ok {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}

		room, err := store.GetRoom(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}
		if err != nil {
			logger.Error("loading room", "room_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		puzzles, err := store.PuzzlesByIDs(r.Context(), room.PuzzleIDs)
		if err != nil {
			logger.Error("loading room puzzles", "room_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		views := make([]PuzzleView, 0, len(puzzles))
		for _, p := range puzzles {
			views = append(views, newPuzzleView(p))
		}
		writeJSON(w, http.StatusOK, views)
	}
}

func handleGetPuzzle(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		writeJSON(w, http.StatusOK, newPuzzleView(p))
	}
}

func handleListItems(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			items []escaperoom.Item
			err   error
		)
		if raw := r.URL.Query().Get("ids"); raw != "" {
			ids, perr := parseIDs(raw)
			if perr != nil {
				writeError(w, http.StatusBadRequest, "ids must be a comma-separated list of integers")
				return
			}
			items, err = store.ItemsByIDs(r.Context(), ids)
		} else {
			items, err = store.ListItems(r.Context())
		}
		if err != nil {
			logger.Error("listing items", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}

func handleGetItem(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := intParam(r, "itemID")
		if !ok {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}

		it, err := store.GetItem(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		if err != nil {
			logger.Error("loading item", "item_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, it)
	}
}
