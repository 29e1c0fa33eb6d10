package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/playperu/cipherchamber/internal/escaperoom"
)

type TimerRequest struct {
	ElapsedTime *int `json:"elapsedTime"`
}

type TimerResponse struct {
	ElapsedTime int    `json:"elapsedTime"`
	Formatted   string `json:"formatted"`
	IsComplete  bool   `json:"isComplete"`
	Error       string `json:"error,omitempty"`
}

func timerResponse(g *escaperoom.GameState) TimerResponse {
	return TimerResponse{
		ElapsedTime: g.ElapsedTime,
		Formatted:   escaperoom.FormatElapsed(g.ElapsedTime),
		IsComplete:  g.IsComplete,
	}
}

func setTimer(ctx context.Context, store Store, token string, seconds int) (*escaperoom.GameState, error) {
	return store.ModifySession(ctx, token, func(g *escaperoom.GameState) error {
		return g.UpdateTimer(seconds)
	})
}

func handleSetTimer(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TimerRequest
		if err := readJSON(r, &req); err != nil || req.ElapsedTime == nil {
			writeError(w, http.StatusBadRequest, "elapsedTime is required")
			return
		}

		g, err := setTimer(r.Context(), store, sessionToken(r), *req.ElapsedTime)
		if errors.Is(err, escaperoom.ErrNegativeElapsed) {
			writeError(w, http.StatusBadRequest, "elapsedTime must not be negative")
			return
		}
		if err != nil {
			logger.Error("updating timer", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, timerResponse(g))
	}
}

// handleTimerWS accepts elapsed-time ticks over a WebSocket and answers each
// with the stored clock. The session token comes from the query string.
func handleTimerWS(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			writeError(w, http.StatusUnauthorized, "token query parameter required")
			return
		}
		if _, err := store.Session(r.Context(), token); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid session token")
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Hour)
		defer cancel()

		for {
			var tick TimerRequest
			if err := wsjson.Read(ctx, conn, &tick); err != nil {
				logger.Debug("websocket read ended", "error", err)
				return
			}

			var resp TimerResponse
			switch {
			case tick.ElapsedTime == nil:
				resp.Error = "elapsedTime is required"
			default:
				g, err := setTimer(ctx, store, token, *tick.ElapsedTime)
				switch {
				case errors.Is(err, escaperoom.ErrNegativeElapsed):
					resp.Error = "elapsedTime must not be negative"
				case err != nil:
					logger.Error("updating timer", "error", err)
					conn.Close(websocket.StatusInternalError, "internal error")
					return
				default:
					resp = timerResponse(g)
				}
			}

			if err := wsjson.Write(ctx, conn, resp); err != nil {
				logger.Debug("websocket write failed", "error", err)
				return
			}
		}
	}
}
