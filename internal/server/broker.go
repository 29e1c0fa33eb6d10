package server

import (
	"encoding/json"
	"sync"
)

const (
	eventGameStarted  = "game_started"
	eventPuzzleSolved = "puzzle_solved"
	eventWrongAnswer  = "wrong_answer"
	eventItemAdded    = "item_added"
	eventItemRemoved  = "item_removed"
	eventHintUsed     = "hint_used"
	eventItemUsed     = "item_used"
	eventGameComplete = "game_complete"
	eventGameReset    = "game_reset"
)

// SSEEvent is the payload published to session subscribers.
type SSEEvent struct {
	Type      string `json:"type"`
	RoomID    int    `json:"roomId,omitempty"`
	PuzzleID  int    `json:"puzzleId,omitempty"`
	ItemID    int    `json:"itemId,omitempty"`
	HotspotID string `json:"hotspotId,omitempty"`
	HintsUsed int    `json:"hintsUsed,omitempty"`
	Elapsed   int    `json:"elapsedTime,omitempty"`
}

// Broker is an in-process pub/sub for SSE events, keyed by session token.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded SSE events for the given session.
func (b *Broker) Subscribe(token string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[token] == nil {
		b.subs[token] = make(map[chan []byte]struct{})
	}
	b.subs[token][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the session's subscribers.
func (b *Broker) Unsubscribe(token string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[token], ch)
	if len(b.subs[token]) == 0 {
		delete(b.subs, token)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given session.
func (b *Broker) Publish(token string, event SSEEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[token] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
