package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Room:
		o.printRoom(v)
	case Problem:
		o.printProblem(v)
	case ProblemList:
		o.printProblemList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TurnOrder     int       `json:"turnOrder"`
	IsCurrentTurn bool      `json:"isCurrentTurn"`
	JoinedAt      time.Time `json:"joinedAt"`
}

// TestCase response type
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
	Description    string `json:"description,omitempty"`
}

// Problem response type
type Problem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  string     `json:"difficulty"`
	TimeLimit   int        `json:"timeLimit"`
	MaxPlayers  int        `json:"maxPlayers"`
	TestCases   []TestCase `json:"testCases"`
}

// ProblemList response type
type ProblemList struct {
	Problems []Problem `json:"problems"`
}

// Room response type
type Room struct {
	ID                 string     `json:"id"`
	Players            []Player   `json:"players"`
	CurrentPlayerIndex int        `json:"currentPlayerIndex"`
	Code               string     `json:"code"`
	IsGameActive       bool       `json:"isGameActive"`
	Problem            Problem    `json:"problem"`
	StartTime          *time.Time `json:"startTime,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}

func (o *Output) printRoom(r Room) {
	state := "waiting"
	if r.IsGameActive {
		state = "active"
	}
	fmt.Printf("Room: %s\n", r.ID)
	fmt.Printf("State: %s\n", state)
	fmt.Printf("Problem: %s (%s)\n", r.Problem.Title, r.Problem.Difficulty)
	fmt.Printf("Turn Limit: %ds\n", r.Problem.TimeLimit)
	fmt.Printf("Players (%d/%d):\n", len(r.Players), r.Problem.MaxPlayers)
	for _, p := range r.Players {
		turnStr := ""
		if p.IsCurrentTurn {
			turnStr = " [turn]"
		}
		fmt.Printf("  %d. %s (%s)%s\n", p.TurnOrder+1, p.Name, p.ID, turnStr)
	}
}

func (o *Output) printProblem(p Problem) {
	fmt.Printf("Problem: %s (%s)\n", p.Title, p.ID)
	fmt.Printf("Difficulty: %s\n", p.Difficulty)
	fmt.Printf("Turn Limit: %ds\n", p.TimeLimit)
	fmt.Printf("Max Players: %d\n", p.MaxPlayers)
	fmt.Printf("\n%s\n", p.Description)
	if len(p.TestCases) > 0 {
		fmt.Println("\nTest Cases:")
		for _, tc := range p.TestCases {
			fmt.Printf("  %s -> %s\n", tc.Input, tc.ExpectedOutput)
		}
	}
}

func (o *Output) printProblemList(l ProblemList) {
	fmt.Printf("Problems (%d):\n", len(l.Problems))
	for _, p := range l.Problems {
		fmt.Printf("  - %s (%s, %s)\n", p.Title, p.ID, p.Difficulty)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Rooms: %d\n", h.Rooms)
}
