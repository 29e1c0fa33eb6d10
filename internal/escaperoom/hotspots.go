package escaperoom

// DefaultHotspots is the layout used for rooms that do not define their own.
var DefaultHotspots = []Hotspot{
	{ID: "door", X: 85, Y: 45, Size: "large", Icon: "DoorOpen"},
	{ID: "desk", X: 20, Y: 65, Size: "medium", Icon: "Desk"},
	{ID: "bookshelf", X: 10, Y: 25, Size: "medium", Icon: "BookOpen"},
	{ID: "painting", X: 50, Y: 15, Size: "small", Icon: "Image"},
	{ID: "chest", X: 75, Y: 80, Size: "medium", Icon: "Box"},
}

// Layout returns the room's hotspots, falling back to DefaultHotspots.
func (r Room) Layout() []Hotspot {
	if len(r.Hotspots) > 0 {
		return r.Hotspots
	}
	return DefaultHotspots
}

// Hotspot looks up a hotspot of the room's layout by id.
func (r Room) Hotspot(id string) (Hotspot, int, bool) {
	for i, h := range r.Layout() {
		if h.ID == id {
			return h, i, true
		}
	}
	return Hotspot{}, -1, false
}

// PuzzleAt returns the puzzle bound to a hotspot. The n-th hotspot of the
// layout opens the n-th puzzle of the room; extra hotspots open nothing.
func (r Room) PuzzleAt(hotspotID string) (int, bool) {
	return r.puzzleAt(r.PuzzleIDs, hotspotID)
}

// PuzzleAt is Room.PuzzleAt against the puzzle list the session was bound
// with, so edits to the room record do not reach a running game.
func (g *GameState) PuzzleAt(room Room, hotspotID string) (int, bool) {
	return room.puzzleAt(g.RoomPuzzleIDs, hotspotID)
}

func (r Room) puzzleAt(puzzleIDs []int, hotspotID string) (int, bool) {
	_, i, ok := r.Hotspot(hotspotID)
	if !ok || i >= len(puzzleIDs) {
		return 0, false
	}
	return puzzleIDs[i], true
}
