package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/scoreboard/internal/api/apierr"
	"github.com/mcoot/scoreboard/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// A panicking handler yields a JSON INTERNAL_ERROR naming the request id.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalErrorForRequest(middleware.RequestIDFromContext(r.Context())))
}
