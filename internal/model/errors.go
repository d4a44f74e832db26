package model

import "errors"

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomExists    = errors.New("room already exists")
	ErrRoomFull      = errors.New("room is full")
	ErrRoomNotActive = errors.New("game is not active")

	// Player errors
	ErrPlayerNotFound       = errors.New("player not found")
	ErrAlreadyInAnotherRoom = errors.New("player is already in another room")
	ErrNotPlayerTurn        = errors.New("not this player's turn")

	// Validation errors
	ErrInvalidPlayerName = errors.New("invalid player name")
	ErrInvalidRoomID     = errors.New("invalid room id")

	// Catalog errors
	ErrCatalogEmpty = errors.New("problem catalog is empty")

	// Execution errors
	ErrExecutionFailure = errors.New("code execution failed")
)
