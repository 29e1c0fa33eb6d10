package server

import (
	"context"
	"errors"

	"github.com/playperu/cipherchamber/internal/escaperoom"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrRoomInUse = errors.New("room has game sessions")
)

// Store holds the reference catalogue and the per-session game state.
type Store interface {
	ListRooms(ctx context.Context) ([]escaperoom.Room, error)
	GetRoom(ctx context.Context, id int) (escaperoom.Room, error)
	CreateRoom(ctx context.Context, room escaperoom.Room) (escaperoom.Room, error)
	UpdateRoom(ctx context.Context, id int, room escaperoom.Room) (escaperoom.Room, error)
	// DeleteRoom fails with ErrRoomInUse while a session is bound to the room.
	DeleteRoom(ctx context.Context, id int) error

	ListPuzzles(ctx context.Context) ([]escaperoom.Puzzle, error)
	GetPuzzle(ctx context.Context, id int) (escaperoom.Puzzle, error)
	PuzzlesByIDs(ctx context.Context, ids []int) ([]escaperoom.Puzzle, error)

	ListItems(ctx context.Context) ([]escaperoom.Item, error)
	GetItem(ctx context.Context, id int) (escaperoom.Item, error)
	ItemsByIDs(ctx context.Context, ids []int) ([]escaperoom.Item, error)

	// StartGame creates a session bound to room and returns its token, or
	// ErrNotFound when the room no longer exists.
	StartGame(ctx context.Context, room escaperoom.Room) (string, *escaperoom.GameState, error)
	Session(ctx context.Context, token string) (*escaperoom.GameState, error)
	// ModifySession loads a session, applies fn and saves it atomically.
	// Nothing is saved when fn returns an error.
	ModifySession(ctx context.Context, token string, fn func(*escaperoom.GameState) error) (*escaperoom.GameState, error)
}

// AdminStore holds admin accounts and their cookie sessions.
type AdminStore interface {
	AdminByEmail(ctx context.Context, email string) (AdminAccount, error)
	CreateAdminSession(ctx context.Context, acct AdminAccount) (sessionID string, err error)
	DeleteAdminSession(ctx context.Context, sessionID string) error
	AdminFromSession(ctx context.Context, sessionID string) (adminSession, error)
}
