package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/mcoot/scoreboard/internal/api/apierr"
	"github.com/mcoot/scoreboard/internal/middleware"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest   = apierr.CodeInvalidRequest
	CodeInvalidThreshold = apierr.CodeInvalidThreshold
	CodeEmptyPlayerName  = apierr.CodeEmptyPlayerName
	CodePlayerExists     = apierr.CodePlayerExists
	CodeZeroScore        = apierr.CodeZeroScore
	CodePlayerNotFound   = apierr.CodePlayerNotFound
	CodeBoardNotFound    = apierr.CodeBoardNotFound
	CodeInternalError    = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// writeError writes err and logs it when it maps to a server error
func writeError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if apierr.Status(err) >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	WriteError(w, err)
}

// pathName decodes a percent-encoded path segment
func pathName(raw string) (string, error) {
	name, err := url.PathUnescape(raw)
	if err != nil {
		return "", NewInvalidRequestError(fmt.Sprintf("invalid path segment %q", raw))
	}
	return name, nil
}
