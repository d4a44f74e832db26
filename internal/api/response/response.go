// Package response holds the wire-facing views of domain objects. Rooms
// and problems cross the wire only through these types, which is what
// keeps hidden test cases on the server.
package response

import (
	"time"

	"github.com/ktanaka/coderelay-go/internal/model"
)

// Player represents a room member in responses and broadcasts
type Player struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TurnOrder     int       `json:"turnOrder"`
	IsCurrentTurn bool      `json:"isCurrentTurn"`
	JoinedAt      time.Time `json:"joinedAt"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:            string(p.ID),
		Name:          p.Name,
		TurnOrder:     p.TurnOrder,
		IsCurrentTurn: p.IsCurrentTurn,
		JoinedAt:      p.JoinedAt,
	}
}

// Problem is the client-visible view of a problem. Hidden test cases are
// deliberately absent.
type Problem struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Difficulty  string           `json:"difficulty"`
	TimeLimit   int              `json:"timeLimit"`
	MaxPlayers  int              `json:"maxPlayers"`
	InitialCode string           `json:"initialCode"`
	TestCases   []model.TestCase `json:"testCases"`
}

// ProblemFromModel converts model.Problem, dropping hidden test cases
func ProblemFromModel(p model.Problem) Problem {
	return Problem{
		ID:          string(p.ID),
		Title:       p.Title,
		Description: p.Description,
		Difficulty:  string(p.Difficulty),
		TimeLimit:   p.TimeLimitSeconds,
		MaxPlayers:  p.MaxPlayers,
		InitialCode: p.InitialCode,
		TestCases:   p.VisibleTestCases,
	}
}

// Room is the full client-visible room snapshot
type Room struct {
	ID                 string     `json:"id"`
	Players            []Player   `json:"players"`
	CurrentPlayerIndex int        `json:"currentPlayerIndex"`
	Code               string     `json:"code"`
	IsGameActive       bool       `json:"isGameActive"`
	Problem            Problem    `json:"problem"`
	StartTime          *time.Time `json:"startTime,omitempty"`
	EndTime            *time.Time `json:"endTime,omitempty"`
}

// RoomFromModel converts model.Room
func RoomFromModel(r *model.Room) Room {
	players := make([]Player, len(r.Players))
	for i := range r.Players {
		players[i] = PlayerFromModel(&r.Players[i])
	}
	return Room{
		ID:                 string(r.ID),
		Players:            players,
		CurrentPlayerIndex: r.CurrentPlayerIndex,
		Code:               r.Code,
		IsGameActive:       r.IsGameActive,
		Problem:            ProblemFromModel(r.Problem),
		StartTime:          r.StartTime,
		EndTime:            r.EndTime,
	}
}

// RoomJoined is the private acknowledgement sent to a joining player
type RoomJoined struct {
	Room     Room   `json:"room"`
	PlayerID string `json:"playerId"`
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}

// ProblemList wraps the catalog listing
type ProblemList struct {
	Problems []Problem `json:"problems"`
}
