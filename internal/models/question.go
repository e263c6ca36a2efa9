package models

// Difficulty levels as served to the client. Upstream difficulty strings
// map onto these; anything unrecognized counts as medium.
const (
	DifficultyEasy   = 1
	DifficultyMedium = 2
	DifficultyHard   = 3
)

// Question is one multiple-choice trivia question, ready to serve.
// Options holds the shuffled answers; CorrectIndex is the post-shuffle
// position of the correct one.
type Question struct {
	Category     string   `json:"category"`
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctAnswer"`
	Difficulty   int      `json:"difficulty"`
}
