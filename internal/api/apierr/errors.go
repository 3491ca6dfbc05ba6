package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/scoreboard/internal/model"
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

// Error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidThreshold = "INVALID_THRESHOLD"
	CodeEmptyPlayerName  = "EMPTY_PLAYER_NAME"
	CodePlayerExists     = "PLAYER_EXISTS"
	CodeZeroScore        = "ZERO_SCORE"
	CodePlayerNotFound   = "PLAYER_NOT_FOUND"
	CodeBoardNotFound    = "BOARD_NOT_FOUND"
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

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrInvalidThreshold):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidThreshold, "Win threshold must be a positive integer"}}
	case errors.Is(err, model.ErrEmptyPlayerName):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyPlayerName, "Player name cannot be empty"}}
	case errors.Is(err, model.ErrPlayerExists):
		return &httpError{http.StatusConflict, APIError{CodePlayerExists, "Player already exists"}}
	case errors.Is(err, model.ErrZeroScore):
		return &httpError{http.StatusBadRequest, APIError{CodeZeroScore, "Score cannot be zero"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrBoardNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeBoardNotFound, "Board not found"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// NewInternalErrorForRequest creates an internal server error that names the request
func NewInternalErrorForRequest(requestID string) error {
	if requestID == "" {
		return NewInternalError()
	}
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error (request " + requestID + ")"}}
}
