package escaperoom

import "testing"

func TestFormatElapsed(t *testing.T) {
	tests := map[int]string{
		0:    "0:00",
		9:    "0:09",
		65:   "1:05",
		600:  "10:00",
		3725: "62:05",
		-3:   "0:00",
	}
	for in, want := range tests {
		if got := FormatElapsed(in); got != want {
			t.Errorf("FormatElapsed(%d): expected %q, got %q", in, want, got)
		}
	}
}

func TestRatings(t *testing.T) {
	tests := []struct {
		seconds, hints int
		rating         string
		stars          int
	}{
		{300, 0, RatingMaster, 3},
		{599, 0, RatingMaster, 3},
		{600, 0, RatingSkilled, 2},
		{300, 1, RatingSkilled, 2},
		{899, 2, RatingSkilled, 2},
		{900, 2, RatingCompetent, 1},
		{1000, 5, RatingCompetent, 1},
		{1199, 3, RatingCompetent, 1},
		{1200, 0, RatingPersistent, 1},
		{100, 6, RatingPersistent, 1},
	}
	for _, tt := range tests {
		if got := PerformanceRating(tt.seconds, tt.hints); got != tt.rating {
			t.Errorf("PerformanceRating(%d, %d): expected %q, got %q", tt.seconds, tt.hints, tt.rating, got)
		}
		if got := StarRating(tt.seconds, tt.hints); got != tt.stars {
			t.Errorf("StarRating(%d, %d): expected %d, got %d", tt.seconds, tt.hints, tt.stars, got)
		}
	}
}

func TestSummarize(t *testing.T) {
	g := NewGame(Room{ID: 1, PuzzleIDs: []int{1, 2}})
	g.UpdateTimer(125)
	g.UseHint()
	g.AddToInventory(4)
	g.SolvePuzzle(1)
	g.SolvePuzzle(2)

	s := Summarize(g)
	if s.Time != "2:05" {
		t.Errorf("expected 2:05, got %q", s.Time)
	}
	if s.Solved != 2 || s.Total != 2 || !s.IsComplete {
		t.Errorf("expected 2/2 complete, got %+v", s)
	}
	if s.Rating != RatingSkilled || s.Stars != 2 {
		t.Errorf("expected Skilled Investigator with 2 stars, got %q %d", s.Rating, s.Stars)
	}
	if s.ItemsFound != 1 {
		t.Errorf("expected 1 item, got %d", s.ItemsFound)
	}
}
