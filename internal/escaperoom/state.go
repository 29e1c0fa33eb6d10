package escaperoom

import (
	"errors"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

var (
	ErrPuzzleNotInRoom = errors.New("puzzle is not part of the current room")
	ErrNegativeElapsed = errors.New("elapsed time must not be negative")
)

// GameState is the mutable record of one play-through of a room.
//
// SolvedPuzzles and Inventory hold unique ids in the order they were added.
// IsComplete is true exactly when every puzzle of the bound room is solved.
type GameState struct {
	CurrentRoomID int         `json:"currentRoomId"`
	RoomPuzzleIDs []int       `json:"roomPuzzleIds"`
	ElapsedTime   int         `json:"elapsedTime"`
	HintsUsed     int         `json:"hintsUsed"`
	SolvedPuzzles []int       `json:"solvedPuzzles"`
	Inventory     []int       `json:"inventory"`
	IsComplete    bool        `json:"isComplete"`
	HintProgress  map[int]int `json:"hintProgress"`
}

// NewGame returns a fresh state bound to room.
func NewGame(room Room) *GameState {
	g := &GameState{}
	g.Reset(room)
	return g
}

// Reset discards all progress and binds the state to room.
func (g *GameState) Reset(room Room) {
	*g = GameState{
		CurrentRoomID: room.ID,
		RoomPuzzleIDs: slices.Clone(room.PuzzleIDs),
		SolvedPuzzles: []int{},
		Inventory:     []int{},
		HintProgress:  map[int]int{},
	}
	if g.RoomPuzzleIDs == nil {
		g.RoomPuzzleIDs = []int{}
	}
}

// SolvePuzzle marks puzzleID as solved. Solving an already solved puzzle is a
// no-op. Completion is recomputed on every call.
func (g *GameState) SolvePuzzle(puzzleID int) error {
	if !slices.Contains(g.RoomPuzzleIDs, puzzleID) {
		return ErrPuzzleNotInRoom
	}
	if !slices.Contains(g.SolvedPuzzles, puzzleID) {
		g.SolvedPuzzles = append(g.SolvedPuzzles, puzzleID)
	}
	g.IsComplete = g.allSolved()
	return nil
}

func (g *GameState) allSolved() bool {
	if len(g.RoomPuzzleIDs) == 0 {
		return false
	}
	solved := mapset.New[int]()
	for _, id := range g.SolvedPuzzles {
		solved.Put(id)
	}
	for _, id := range g.RoomPuzzleIDs {
		if !solved.Has(id) {
			return false
		}
	}
	return true
}

// AddToInventory adds itemID and reports whether it was not held before.
func (g *GameState) AddToInventory(itemID int) bool {
	if slices.Contains(g.Inventory, itemID) {
		return false
	}
	g.Inventory = append(g.Inventory, itemID)
	return true
}

// RemoveFromInventory drops itemID and reports whether it was held.
func (g *GameState) RemoveFromInventory(itemID int) bool {
	i := slices.Index(g.Inventory, itemID)
	if i < 0 {
		return false
	}
	g.Inventory = slices.Delete(g.Inventory, i, i+1)
	return true
}

func (g *GameState) UseHint() { g.HintsUsed++ }

// UpdateTimer sets the elapsed time in seconds. The clock only moves forward
// and stops once the room is complete.
func (g *GameState) UpdateTimer(seconds int) error {
	if seconds < 0 {
		return ErrNegativeElapsed
	}
	if g.IsComplete || seconds < g.ElapsedTime {
		return nil
	}
	g.ElapsedTime = seconds
	return nil
}

func (g *GameState) IsSolved(puzzleID int) bool { return slices.Contains(g.SolvedPuzzles, puzzleID) }

func (g *GameState) HasItem(itemID int) bool { return slices.Contains(g.Inventory, itemID) }

func (g *GameState) InRoom(puzzleID int) bool { return slices.Contains(g.RoomPuzzleIDs, puzzleID) }

func (g *GameState) SolvedCount() int { return len(g.SolvedPuzzles) }

func (g *GameState) TotalPuzzles() int { return len(g.RoomPuzzleIDs) }
