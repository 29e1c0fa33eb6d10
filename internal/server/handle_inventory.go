package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/playperu/cipherchamber/internal/escaperoom"
)

type AddItemRequest struct {
	ItemID int `json:"itemId"`
}

type InventoryResponse struct {
	Added     bool              `json:"added"`
	Inventory []escaperoom.Item `json:"inventory"`
}

func handleListInventory(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := store.Session(r.Context(), sessionToken(r))
		if err != nil {
			logger.Error("loading session", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		items, err := store.ItemsByIDs(r.Context(), g.Inventory)
		if err != nil {
			logger.Error("loading inventory", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// handleAddItem puts an item in the inventory. Adding a held item succeeds
// with added=false.
func handleAddItem(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)

		var req AddItemRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.ItemID <= 0 {
			writeError(w, http.StatusBadRequest, "itemId is required")
			return
		}

		if _, err := store.GetItem(r.Context(), req.ItemID); err != nil {
			if errors.Is(err, ErrNotFound) {
				writeError(w, http.StatusNotFound, "item not found")
				return
			}
			logger.Error("loading item", "item_id", req.ItemID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		var added bool
		g, err := store.ModifySession(r.Context(), token, func(g *escaperoom.GameState) error {
			added = g.AddToInventory(req.ItemID)
			return nil
		})
		if err != nil {
			logger.Error("adding item", "item_id", req.ItemID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if added {
			broker.Publish(token, SSEEvent{Type: eventItemAdded, ItemID: req.ItemID})
		}

		items, err := store.ItemsByIDs(r.Context(), g.Inventory)
		if err != nil {
			logger.Error("loading inventory", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, InventoryResponse{Added: added, Inventory: items})
	}
}

var errNotHeld = errors.New("item not held")

func handleRemoveItem(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)

		id, ok := intParam(r, "itemID")
		if !ok {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}

		g, err := store.ModifySession(r.Context(), token, func(g *escaperoom.GameState) error {
			if !g.RemoveFromInventory(id) {
				return errNotHeld
			}
			return nil
		})
		if errors.Is(err, errNotHeld) {
			writeError(w, http.StatusNotFound, "item is not in the inventory")
			return
		}
		if err != nil {
			logger.Error("removing item", "item_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		broker.Publish(token, SSEEvent{Type: eventItemRemoved, ItemID: id})

		items, err := store.ItemsByIDs(r.Context(), g.Inventory)
		if err != nil {
			logger.Error("loading inventory", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, InventoryResponse{Inventory: items})
	}
}
