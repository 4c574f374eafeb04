package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/minefield/internal/api/apierr"
	"github.com/mcoot/minefield/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// Clients get the usual JSON error body plus the request ID to report.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	w.Header().Set("Connection", "close")
	apierr.WriteError(w, apierr.NewInternalErrorFor(w.Header().Get(middleware.RequestIDHeader)))
}
