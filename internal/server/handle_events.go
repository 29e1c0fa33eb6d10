package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// eventGameState carries the full state when a stream opens, so a client
// that reconnects does not need a separate fetch.
const eventGameState = "game_state"

const ssePingInterval = 30 * time.Second

func writeSSE(w http.ResponseWriter, f http.Flusher, event string, data []byte) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	f.Flush()
}

func handleEvents(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			writeError(w, http.StatusUnauthorized, "token query parameter required")
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		// Subscribe before reading the snapshot so nothing published in
		// between is lost.
		ch := broker.Subscribe(token)
		defer broker.Unsubscribe(token, ch)

		g, err := store.Session(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid session token")
			return
		}
		snapshot, err := json.Marshal(g)
		if err != nil {
			logger.Error("encoding game state", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		writeSSE(w, flusher, eventGameState, snapshot)

		ping := time.NewTicker(ssePingInterval)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case data := <-ch:
				var ev SSEEvent
				if err := json.Unmarshal(data, &ev); err != nil {
					logger.Error("decoding event", "error", err)
					continue
				}
				writeSSE(w, flusher, ev.Type, data)
			case <-ping.C:
				fmt.Fprint(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
