package escaperoom

import "fmt"

const (
	RatingMaster     = "Master Detective"
	RatingSkilled    = "Skilled Investigator"
	RatingCompetent  = "Competent Solver"
	RatingPersistent = "Persistent Explorer"
)

// Summary is the end-of-room report shown on the victory screen.
type Summary struct {
	RoomID      int    `json:"roomId"`
	Time        string `json:"time"`
	ElapsedTime int    `json:"elapsedTime"`
	Solved      int    `json:"solved"`
	Total       int    `json:"total"`
	HintsUsed   int    `json:"hintsUsed"`
	ItemsFound  int    `json:"itemsFound"`
	Rating      string `json:"rating"`
	Stars       int    `json:"stars"`
	IsComplete  bool   `json:"isComplete"`
}

func Summarize(g *GameState) Summary {
	return Summary{
		RoomID:      g.CurrentRoomID,
		Time:        FormatElapsed(g.ElapsedTime),
		ElapsedTime: g.ElapsedTime,
		Solved:      g.SolvedCount(),
		Total:       g.TotalPuzzles(),
		HintsUsed:   g.HintsUsed,
		ItemsFound:  len(g.Inventory),
		Rating:      PerformanceRating(g.ElapsedTime, g.HintsUsed),
		Stars:       StarRating(g.ElapsedTime, g.HintsUsed),
		IsComplete:  g.IsComplete,
	}
}

// FormatElapsed renders seconds as m:ss.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func PerformanceRating(seconds, hints int) string {
	switch {
	case hints == 0 && seconds < 600:
		return RatingMaster
	case hints <= 2 && seconds < 900:
		return RatingSkilled
	case hints <= 5 && seconds < 1200:
		return RatingCompetent
	}
	return RatingPersistent
}

func StarRating(seconds, hints int) int {
	switch {
	case hints == 0 && seconds < 600:
		return 3
	case hints <= 2 && seconds < 900:
		return 2
	}
	return 1
}
