package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/minefield/internal/middleware"
	"github.com/mcoot/minefield/internal/web/components"
)

// Recovery creates panic recovery middleware for the web interface.
// The browser gets the error page; htmx leaves the board alone on a 500.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = components.ErrorPage("The server hit a problem with that request. Please try again.").Render(r.Context(), w)
}
