package server

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/playperu/cipherchamber/internal/escaperoom"
)

// DocStore implements Store using per-model tables with JSONB data columns.
// The tables are created by the migrations package.
type DocStore struct {
	db *sql.DB
}

func NewDocStore(db *sql.DB) *DocStore {
	return &DocStore{db: db}
}

func (s *DocStore) get(ctx context.Context, table string, id any, dest any) error {
	return queryDoc(ctx, s.db, dest, fmt.Sprintf(`SELECT json(data) FROM %s WHERE id = ?`, table), id)
}

// all decodes every document of table, ordered by id.
func all[T any](ctx context.Context, db *sql.DB, table string) ([]T, error) {
	rows, err := db.QueryContext(ctx,
		fmt.Sprintf(`SELECT json(data) FROM %s ORDER BY id`, table),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(data), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// pick returns the elements of docs whose id is in ids, in the order of ids.
// Unknown and repeated ids are skipped.
func pick[T any](docs []T, idOf func(T) int, ids []int) []T {
	byID := make(map[int]T, len(docs))
	for _, d := range docs {
		byID[idOf(d)] = d
	}
	seen := mapset.New[int]()
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		d, ok := byID[id]
		if !ok || seen.Has(id) {
			continue
		}
		seen.Put(id)
		out = append(out, d)
	}
	return out
}

// Per-table put methods, each with its own indexed columns.

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func putRoom(ctx context.Context, db execer, r escaperoom.Room) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO rooms (id, difficulty, data) VALUES (?, ?, jsonb(?))
		 ON CONFLICT(id) DO UPDATE SET difficulty = excluded.difficulty, data = excluded.data`,
		r.ID, string(r.Difficulty), string(data),
	)
	return err
}

func putPuzzle(ctx context.Context, db execer, p escaperoom.Puzzle) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO puzzles (id, type, data) VALUES (?, ?, jsonb(?))
		 ON CONFLICT(id) DO UPDATE SET type = excluded.type, data = excluded.data`,
		p.ID, string(p.Type), string(data),
	)
	return err
}

func putItem(ctx context.Context, db execer, it escaperoom.Item) error {
	data, err := json.Marshal(it)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO items (id, data) VALUES (?, jsonb(?))
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
		it.ID, string(data),
	)
	return err
}

func newID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func nowUTC() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// Rooms.

func (s *DocStore) ListRooms(ctx context.Context) ([]escaperoom.Room, error) {
	return all[escaperoom.Room](ctx, s.db, "rooms")
}

func (s *DocStore) GetRoom(ctx context.Context, id int) (escaperoom.Room, error) {
	var r escaperoom.Room
	err := s.get(ctx, "rooms", id, &r)
	return r, err
}

// CreateRoom stores room under the next free id (max + 1).
func (s *DocStore) CreateRoom(ctx context.Context, room escaperoom.Room) (escaperoom.Room, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return escaperoom.Room{}, err
	}
	defer tx.Rollback()

	var maxID int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM rooms`).Scan(&maxID); err != nil {
		return escaperoom.Room{}, err
	}
	room.ID = maxID + 1
	if err := putRoom(ctx, tx, room); err != nil {
		return escaperoom.Room{}, err
	}
	return room, tx.Commit()
}

// UpdateRoom replaces the room stored under id; the id itself never changes.
func (s *DocStore) UpdateRoom(ctx context.Context, id int, room escaperoom.Room) (escaperoom.Room, error) {
	if _, err := s.GetRoom(ctx, id); err != nil {
		return escaperoom.Room{}, err
	}
	room.ID = id
	if err := putRoom(ctx, s.db, room); err != nil {
		return escaperoom.Room{}, err
	}
	return room, nil
}

// DeleteRoom removes a room that no game session is bound to. The session
// check and the delete share one transaction.
func (s *DocStore) DeleteRoom(ctx context.Context, id int) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM rooms WHERE id = ?
		 AND NOT EXISTS (SELECT 1 FROM game_sessions WHERE room_id = ?)`,
		id, id,
	)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM rooms WHERE id = ?)`, id,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return ErrRoomInUse
		}
		return ErrNotFound
	}
	return tx.Commit()
}

// Puzzles.

func (s *DocStore) ListPuzzles(ctx context.Context) ([]escaperoom.Puzzle, error) {
	return all[escaperoom.Puzzle](ctx, s.db, "puzzles")
}

func (s *DocStore) GetPuzzle(ctx context.Context, id int) (escaperoom.Puzzle, error) {
	var p escaperoom.Puzzle
	err := s.get(ctx, "puzzles", id, &p)
	return p, err
}

func (s *DocStore) PuzzlesByIDs(ctx context.Context, ids []int) ([]escaperoom.Puzzle, error) {
	puzzles, err := s.ListPuzzles(ctx)
	if err != nil {
		return nil, err
	}
	return pick(puzzles, func(p escaperoom.Puzzle) int { return p.ID }, ids), nil
}

// Items.

func (s *DocStore) ListItems(ctx context.Context) ([]escaperoom.Item, error) {
	return all[escaperoom.Item](ctx, s.db, "items")
}

func (s *DocStore) GetItem(ctx context.Context, id int) (escaperoom.Item, error) {
	var it escaperoom.Item
	err := s.get(ctx, "items", id, &it)
	return it, err
}

func (s *DocStore) ItemsByIDs(ctx context.Context, ids []int) ([]escaperoom.Item, error) {
	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return pick(items, func(it escaperoom.Item) int { return it.ID }, ids), nil
}

// Sessions.

func (s *DocStore) StartGame(ctx context.Context, room escaperoom.Room) (string, *escaperoom.GameState, error) {
	token := newID()
	g := escaperoom.NewGame(room)
	data, err := json.Marshal(g)
	if err != nil {
		return "", nil, err
	}
	now := nowUTC()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO game_sessions (id, room_id, data, created_at, updated_at)
		 SELECT ?, id, jsonb(?), ?, ? FROM rooms WHERE id = ?`,
		token, string(data), now, now, g.CurrentRoomID,
	)
	if err != nil {
		return "", nil, err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return "", nil, ErrNotFound
	}
	return token, g, nil
}

func (s *DocStore) Session(ctx context.Context, token string) (*escaperoom.GameState, error) {
	var g escaperoom.GameState
	if err := s.get(ctx, "game_sessions", token, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// ModifySession loads a session, applies fn, and saves it in a transaction.
func (s *DocStore) ModifySession(ctx context.Context, token string, fn func(*escaperoom.GameState) error) (*escaperoom.GameState, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var data string
	err = tx.QueryRowContext(ctx,
		`SELECT json(data) FROM game_sessions WHERE id = ?`, token,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var g escaperoom.GameState
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		return nil, err
	}
	if err := fn(&g); err != nil {
		return nil, err
	}

	updated, err := json.Marshal(&g)
	if err != nil {
		return nil, err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE game_sessions SET room_id = ?, data = jsonb(?), updated_at = ? WHERE id = ?`,
		g.CurrentRoomID, string(updated), nowUTC(), token,
	)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &g, nil
}
