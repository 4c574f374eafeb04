package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	basemiddleware "github.com/mcoot/minefield/internal/middleware"
	"github.com/mcoot/minefield/internal/services/session"
	"github.com/mcoot/minefield/internal/web/handler"
	"github.com/mcoot/minefield/internal/web/middleware"
	"github.com/mcoot/minefield/internal/web/stream"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger     *slog.Logger
	Controller session.ControllerInterface
	HubManager *stream.HubManager
	StaticDir  string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Mount(r, cfg)
	return r
}

// Mount registers the web routes on an existing router
func Mount(root *mux.Router, cfg RouterConfig) {
	r := root.NewRoute().Subrouter()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(basemiddleware.Logging(cfg.Logger))

	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = stream.NewHubManager(cfg.Logger)
	}

	homeHandler := handler.NewHomeHandler(cfg.Controller)
	gameHandler := handler.NewGameHandler(cfg.Controller, hubManager, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	public := r.NewRoute().Subrouter()
	public.Use(middleware.Flash())
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/games", homeHandler.Create).Methods(http.MethodPost)

	games := r.PathPrefix("/games/{id}").Subrouter()
	games.Use(middleware.Flash())
	games.Use(middleware.Owner(cfg.Controller))
	games.HandleFunc("", gameHandler.View).Methods(http.MethodGet)
	games.HandleFunc("/step", gameHandler.Step).Methods(http.MethodPost)
	games.HandleFunc("/flag", gameHandler.Flag).Methods(http.MethodPost)
	games.HandleFunc("/reset", gameHandler.Reset).Methods(http.MethodPost)
	games.HandleFunc("/abandon", gameHandler.Abandon).Methods(http.MethodPost)
	games.HandleFunc("/events", gameHandler.Events).Methods(http.MethodGet)
	games.HandleFunc("/ws", gameHandler.Socket).Methods(http.MethodGet)
}
