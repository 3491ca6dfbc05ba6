package middleware

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/scoreboard/internal/middleware"
	"github.com/mcoot/scoreboard/internal/web/views"
)

// Recovery creates panic recovery middleware for the web interface
// Returns an HTML error page on panic
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

var errorBody = templ.Raw(`<h1>Internal Server Error</h1>
<p>Something went wrong. Please try again later.</p>
<p><a href="/">All boards</a></p>`)

func webPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = views.Layout("Error", errorBody).Render(r.Context(), w)
}
