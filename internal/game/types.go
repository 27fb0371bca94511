package game

import "time"

const (
	phaseIdle      = "idle"
	phaseDrawing   = "drawing"
	phaseReveal    = "reveal"
	phaseConcluded = "concluded"
)

const (
	rolePainter = "painter"
	roleGuesser = "guesser"
)

// maskedGuess replaces a correct guess in the room-wide bubble feed so
// the answer is not spoiled for players still guessing.
const maskedGuess = "✓✓✓"

// Player is one roster member. The team fields are a snapshot taken at
// join time from the fixed catalog.
type Player struct {
	ID       string
	Nickname string
	Team     Team
	JoinedAt time.Time
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is a single drawn line segment, immutable once recorded.
type Stroke struct {
	From  Point   `json:"from"`
	To    Point   `json:"to"`
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// StrokeRecord is a stroke as kept in the round's log, stamped with the
// server receive time.
type StrokeRecord struct {
	Stroke
	Timestamp int64 `json:"timestamp"`
}

// CorrectGuess records one player's first correct guess in a round.
type CorrectGuess struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	TeamID    string `json:"teamId"`
	TeamName  string `json:"teamName"`
	TeamImage string `json:"teamImage"`
	TeamColor string `json:"teamColor"`
	Time      int    `json:"time"`
	Points    int    `json:"points"`
	Order     int    `json:"order"`
}

// roundState holds everything scoped to the live (or just-revealed)
// round. It is nil while the room is idle or concluded.
type roundState struct {
	Painter        string
	Word           string
	StartedAt      time.Time
	Strokes        []StrokeRecord
	CorrectGuesses []CorrectGuess
}

// FinalPlayer is one row of the end-of-game standings.
type FinalPlayer struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	TeamID    string `json:"teamId"`
	TeamName  string `json:"teamName"`
	TeamImage string `json:"teamImage"`
	TeamColor string `json:"teamColor"`
	Score     int    `json:"score"`
}

// TeamScore is a per-game team total, part of the game-over payload.
type TeamScore struct {
	TeamID    string `json:"teamId"`
	TeamName  string `json:"teamName"`
	TeamImage string `json:"teamImage"`
	Score     int    `json:"score"`
}

// Settings are the room's tunable rule constants.
type Settings struct {
	RoundSeconds  int
	RevealSeconds int
	MaxRounds     int
}

func DefaultSettings() Settings {
	return Settings{
		RoundSeconds:  30,
		RevealSeconds: 6,
		MaxRounds:     10,
	}
}
