package model

// ProblemID uniquely identifies a problem in the catalog
type ProblemID string

// Difficulty classifies how hard a problem is
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// TestCase is a single input/expected-output pair for a problem
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
	Description    string `json:"description,omitempty"`
}

// Problem is a coding exercise served to a room.
// Problems are immutable after catalog load; rooms hold them by value.
type Problem struct {
	ID               ProblemID  `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Difficulty       Difficulty `json:"difficulty"`
	TimeLimitSeconds int        `json:"timeLimit"`
	MaxPlayers       int        `json:"maxPlayers"`
	InitialCode      string     `json:"initialCode"`
	VisibleTestCases []TestCase `json:"testCases"`
	HiddenTestCases  []TestCase `json:"hiddenTestCases,omitempty"`
}
