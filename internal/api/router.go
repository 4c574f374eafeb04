package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/minefield/internal/api/handler"
	apimiddleware "github.com/mcoot/minefield/internal/api/middleware"
	"github.com/mcoot/minefield/internal/middleware"
	"github.com/mcoot/minefield/internal/services/bot"
	"github.com/mcoot/minefield/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Controller session.ControllerInterface
	Bots       *bot.Service // Optional, enables hint and autoplay
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Mount(r, cfg)
	return r
}

// Mount registers the API routes under /api/v1 on r
func Mount(r *mux.Router, cfg RouterConfig) {
	gameHandler := handler.NewGameHandler(cfg.Controller)

	// Create middleware
	ownerMiddleware := apimiddleware.OwnerToken(cfg.Controller)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Open routes
	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)

	// Routes that need the owner token
	owned := api.PathPrefix("/games/{id}").Subrouter()
	owned.Use(ownerMiddleware)
	owned.HandleFunc("/step", gameHandler.Step).Methods(http.MethodPost)
	owned.HandleFunc("/flag", gameHandler.Flag).Methods(http.MethodPost)
	owned.HandleFunc("/reset", gameHandler.Reset).Methods(http.MethodPost)
	owned.HandleFunc("", gameHandler.Abandon).Methods(http.MethodDelete)

	if cfg.Bots != nil {
		botHandler := handler.NewBotHandler(cfg.Controller, cfg.Bots)
		api.HandleFunc("/games/{id}/hint", botHandler.Hint).Methods(http.MethodGet)
		owned.HandleFunc("/autoplay", botHandler.Autoplay).Methods(http.MethodPost)
	}

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
