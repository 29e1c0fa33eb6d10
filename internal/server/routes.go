package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, store Store, admin AdminStore, spaDir string) {
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Cipher Chamber API", "/openapi.json", "/docs"))

	// Public catalogue.
	r.Get("/api/rooms", handleListRooms(logger, store))
	r.Get("/api/rooms/{roomID}", handleGetRoom(logger, store))
	r.Get("/api/rooms/{roomID}/puzzles", handleRoomPuzzles(logger, store))
	r.Get("/api/puzzles/{puzzleID}", handleGetPuzzle(logger, store))
	r.Get("/api/items", handleListItems(logger, store))
	r.Get("/api/items/{itemID}", handleGetItem(logger, store))

	r.Post("/api/games", handleStartGame(logger, store, broker))

	// Streams take the session token from the query string.
	r.Get("/api/game/events", handleEvents(logger, store, broker))
	r.Get("/api/game/timer/ws", handleTimerWS(logger, store))

	// Session routes require a Bearer token.
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware(logger, store))
		r.Get("/api/game/state", handleGameState(logger, store))
		r.Post("/api/game/restart", handleRestart(logger, store, broker))
		r.Get("/api/game/puzzles/{puzzleID}", handleGamePuzzle(logger, store))
		r.Post("/api/game/puzzles/{puzzleID}/solve", handleSolvePuzzle(logger, store, broker))
		r.Post("/api/game/puzzles/{puzzleID}/hints", handleRequestHint(logger, store, broker))
		r.Post("/api/game/hotspots/{hotspotID}", handleHotspot(logger, store, broker))
		r.Get("/api/game/inventory", handleListInventory(logger, store))
		r.Post("/api/game/inventory", handleAddItem(logger, store, broker))
		r.Delete("/api/game/inventory/{itemID}", handleRemoveItem(logger, store, broker))
		r.Put("/api/game/timer", handleSetTimer(logger, store))
		r.Get("/api/game/summary", handleSummary(logger, store))
	})

	// Admin auth.
	r.Post("/api/admin/login", handleAdminLogin(logger, admin))
	r.Post("/api/admin/logout", handleAdminLogout(logger, admin))

	r.Group(func(r chi.Router) {
		r.Use(adminAuthMiddleware(logger, admin))
		r.Get("/api/admin/me", handleAdminMe())
		r.Get("/api/admin/puzzles", handleAdminListPuzzles(logger, store))
		r.Post("/api/admin/rooms", handleAdminCreateRoom(logger, store))
		r.Put("/api/admin/rooms/{roomID}", handleAdminUpdateRoom(logger, store))
		r.Delete("/api/admin/rooms/{roomID}", handleAdminDeleteRoom(logger, store))
	})

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
		} else {
			spaDir = ""
		}
	}
	r.NotFound(handleNotFound(spaDir))
}
