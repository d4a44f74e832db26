// Package apierr maps domain errors to HTTP error responses.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ktanaka/coderelay-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidRoomID    = "INVALID_ROOM_ID"
	CodeRoomNotFound     = "ROOM_NOT_FOUND"
	CodeRoomExists       = "ROOM_EXISTS"
	CodeRoomFull         = "ROOM_FULL"
	CodeRoomNotActive    = "ROOM_NOT_ACTIVE"
	CodePlayerNotFound   = "PLAYER_NOT_FOUND"
	CodeAlreadyInRoom    = "ALREADY_IN_ROOM"
	CodeNotYourTurn      = "NOT_YOUR_TURN"
	CodeProblemNotFound  = "PROBLEM_NOT_FOUND"
	CodeCatalogEmpty     = "CATALOG_EMPTY"
	CodeExecutionFailure = "EXECUTION_FAILURE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewNotFoundError creates a generic not found error
func NewNotFoundError(code, message string) error {
	return &httpError{http.StatusNotFound, APIError{code, message}}
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrRoomExists):
		return &httpError{http.StatusConflict, APIError{CodeRoomExists, "Room already exists"}}
	case errors.Is(err, model.ErrRoomFull):
		return &httpError{http.StatusConflict, APIError{CodeRoomFull, "Room is full"}}
	case errors.Is(err, model.ErrRoomNotActive):
		return &httpError{http.StatusConflict, APIError{CodeRoomNotActive, "Game is not active"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrAlreadyInAnotherRoom):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInRoom, "Already in another room"}}
	case errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrInvalidRoomID):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRoomID, "Room id must be 6 uppercase letters or digits"}}
	case errors.Is(err, model.ErrInvalidPlayerName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Invalid player name"}}
	case errors.Is(err, model.ErrCatalogEmpty):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeCatalogEmpty, "No problems available"}}
	case errors.Is(err, model.ErrExecutionFailure):
		return &httpError{http.StatusBadGateway, APIError{CodeExecutionFailure, "Code evaluation failed"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}
