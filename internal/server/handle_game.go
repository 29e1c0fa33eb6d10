package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/playperu/cipherchamber/internal/escaperoom"
)

type StartGameRequest struct {
	RoomID int `json:"roomId"`
}

type StartGameResponse struct {
	Token string                `json:"token"`
	State *escaperoom.GameState `json:"state"`
}

type GameStateResponse struct {
	State     *escaperoom.GameState `json:"state"`
	Room      escaperoom.Room       `json:"room"`
	Hotspots  []HotspotView         `json:"hotspots"`
	Puzzles   []GamePuzzleView      `json:"puzzles"`
	Inventory []escaperoom.Item     `json:"inventory"`
}

var errAlreadySolved = errors.New("puzzle already solved")

// handleStartGame binds a fresh state to a room. A request that already
// carries a valid session token restarts that session in the new room;
// otherwise a new session is issued.
func handleStartGame(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartGameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.RoomID <= 0 {
			writeError(w, http.StatusBadRequest, "roomId is required")
			return
		}

		room, err := store.GetRoom(r.Context(), req.RoomID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}
		if err != nil {
			logger.Error("loading room", "room_id", req.RoomID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		var (
			token string
			g     *escaperoom.GameState
		)
		if t, terr := bearerToken(r); terr == nil {
			g, err = store.ModifySession(r.Context(), t, func(g *escaperoom.GameState) error {
				g.Reset(room)
				return nil
			})
			token = t
		}
		if g == nil {
			if err != nil && !errors.Is(err, ErrNotFound) {
				logger.Error("rebinding session", "error", err)
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			token, g, err = store.StartGame(r.Context(), room)
			if errors.Is(err, ErrNotFound) {
				writeError(w, http.StatusNotFound, "room not found")
				return
			}
			if err != nil {
				logger.Error("starting game", "room_id", room.ID, "error", err)
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
		}

		broker.Publish(token, SSEEvent{Type: eventGameStarted, RoomID: room.ID})
		logger.Info("game started", "room_id", room.ID)

		writeJSON(w, http.StatusCreated, StartGameResponse{Token: token, State: g})
	}
}

func handleGameState(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := store.Session(r.Context(), sessionToken(r))
		if err != nil {
			logger.Error("loading session", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp, err := buildGameState(r.Context(), store, g)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}
		if err != nil {
			logger.Error("building game state", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func buildGameState(ctx context.Context, store Store, g *escaperoom.GameState) (GameStateResponse, error) {
	room, err := store.GetRoom(ctx, g.CurrentRoomID)
	if err != nil {
		return GameStateResponse{}, err
	}
	puzzles, err := store.PuzzlesByIDs(ctx, g.RoomPuzzleIDs)
	if err != nil {
		return GameStateResponse{}, err
	}
	items, err := store.ItemsByIDs(ctx, g.Inventory)
	if err != nil {
		return GameStateResponse{}, err
	}

	views := make([]GamePuzzleView, 0, len(puzzles))
	for _, p := range puzzles {
		views = append(views, newGamePuzzleView(p, g))
	}

	return GameStateResponse{
		State:     g,
		Room:      withLayout(room),
		Hotspots:  hotspotViews(room, g),
		Puzzles:   views,
		Inventory: items,
	}, nil
}

func handleRestart(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)

		current, err := store.Session(r.Context(), token)
		if err != nil {
			logger.Error("loading session", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		room, err := store.GetRoom(r.Context(), current.CurrentRoomID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}
		if err != nil {
			logger.Error("loading room", "room_id", current.CurrentRoomID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		g, err := store.ModifySession(r.Context(), token, func(g *escaperoom.GameState) error {
			g.Reset(room)
			return nil
		})
		if err != nil {
			logger.Error("resetting session", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		broker.Publish(token, SSEEvent{Type: eventGameReset, RoomID: room.ID})
		writeJSON(w, http.StatusOK, g)
	}
}

func handleSummary(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := store.Session(r.Context(), sessionToken(r))
		if err != nil {
			logger.Error("loading session", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !g.IsComplete {
			writeError(w, http.StatusConflict, "room is not complete")
			return
		}
		writeJSON(w, http.StatusOK, escaperoom.Summarize(g))
	}
}

func handleGamePuzzle(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := intParam(r, "puzzleID")
		if !ok {
			writeError(w, http.StatusNotFound, "puzzle not found")
			return
		}

		g, err := store.Session(r.Context(), sessionToken(r))
		if err != nil {
			logger.Error("loading session", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !g.InRoom(id) {
			writeError(w, http.StatusNotFound, "puzzle is not part of the current room")
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

		writeJSON(w, http.StatusOK, newGamePuzzleView(p, g))
	}
}
