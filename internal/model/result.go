package model

// TestResult is the outcome of running the submitted code against one test case
type TestResult struct {
	TestCase     TestCase `json:"testCase"`
	Passed       bool     `json:"passed"`
	ActualOutput string   `json:"actualOutput,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// ExecutionReport is what the grading subsystem returns for a submission.
// It is opaque to the coordination core beyond the overall pass/fail.
type ExecutionReport struct {
	Passed  bool         `json:"passed"`
	Results []TestResult `json:"results"`
	Error   string       `json:"error,omitempty"`
}

// GameResult is the terminal outcome of a room's game
type GameResult struct {
	IsSuccess        bool           `json:"isSuccess"`
	TotalTimeSeconds int            `json:"totalTime"`
	TurnLog          []TurnLogEntry `json:"turnLog"`
	FinalCode        string         `json:"finalCode"`
	TestResults      []TestResult   `json:"testResults"`
}
