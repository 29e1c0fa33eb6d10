// Package fixtures holds the reference data the game ships with: rooms,
// puzzles and items. The files are embedded; a directory with the same three
// files can replace them at startup.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/zyedidia/generic/mapset"

	"github.com/playperu/cipherchamber/internal/escaperoom"
)

//go:embed *.json
var embedded embed.FS

type Set struct {
	Rooms   []escaperoom.Room
	Puzzles []escaperoom.Puzzle
	Items   []escaperoom.Item
}

// Load reads the fixture files from dir, or the embedded copies when dir is
// empty, and checks that every reference resolves.
func Load(dir string) (*Set, error) {
	var fsys fs.FS = embedded
	if dir != "" {
		fsys = os.DirFS(dir)
	}
	return LoadFS(fsys)
}

func LoadFS(fsys fs.FS) (*Set, error) {
	var s Set
	if err := decode(fsys, "rooms.json", &s.Rooms); err != nil {
		return nil, err
	}
	if err := decode(fsys, "puzzles.json", &s.Puzzles); err != nil {
		return nil, err
	}
	if err := decode(fsys, "items.json", &s.Items); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func decode(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Validate checks ids are unique and that rooms, rewards and solutions refer
// to things that exist.
func (s *Set) Validate() error {
	items := mapset.New[int]()
	for _, it := range s.Items {
		if items.Has(it.ID) {
			return fmt.Errorf("item %d: duplicate id", it.ID)
		}
		items.Put(it.ID)
	}

	puzzles := mapset.New[int]()
	for _, p := range s.Puzzles {
		if puzzles.Has(p.ID) {
			return fmt.Errorf("puzzle %d: duplicate id", p.ID)
		}
		puzzles.Put(p.ID)
		if !p.Type.Valid() {
			return fmt.Errorf("puzzle %d: unknown type %q", p.ID, p.Type)
		}
		if p.Solution.IsZero() {
			return fmt.Errorf("puzzle %d: missing solution", p.ID)
		}
		if p.RewardItem != 0 && !items.Has(p.RewardItem) {
			return fmt.Errorf("puzzle %d: reward item %d not found", p.ID, p.RewardItem)
		}
	}

	rooms := mapset.New[int]()
	for _, r := range s.Rooms {
		if rooms.Has(r.ID) {
			return fmt.Errorf("room %d: duplicate id", r.ID)
		}
		rooms.Put(r.ID)
		if _, ok := escaperoom.ParseDifficulty(string(r.Difficulty)); !ok {
			return fmt.Errorf("room %d: unknown difficulty %q", r.ID, r.Difficulty)
		}
		for _, pid := range r.PuzzleIDs {
			if !puzzles.Has(pid) {
				return fmt.Errorf("room %d: puzzle %d not found", r.ID, pid)
			}
		}
	}
	return nil
}
