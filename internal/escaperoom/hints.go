package escaperoom

// RequestHint reveals the next hint of p and counts it against the session.
// Once every hint of p is revealed it returns false and changes nothing.
func (g *GameState) RequestHint(p Puzzle) (string, bool) {
	if g.HintProgress == nil {
		g.HintProgress = map[int]int{}
	}
	next := g.HintProgress[p.ID]
	if next >= len(p.Hints) {
		return "", false
	}
	g.HintProgress[p.ID] = next + 1
	g.UseHint()
	return p.Hints[next], true
}

// RevealedHints returns the hints of p shown so far, in order.
func (g *GameState) RevealedHints(p Puzzle) []string {
	n := min(g.HintProgress[p.ID], len(p.Hints))
	out := make([]string, n)
	copy(out, p.Hints[:n])
	return out
}

// HintsRemaining is the number of hints of p not yet revealed.
func (g *GameState) HintsRemaining(p Puzzle) int {
	return max(len(p.Hints)-g.HintProgress[p.ID], 0)
}
