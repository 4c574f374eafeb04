package handler

import (
	"net/http"
	"strconv"

	"github.com/mcoot/minefield/internal/engine"
	"github.com/mcoot/minefield/internal/services/session"
	"github.com/mcoot/minefield/internal/web/components"
	"github.com/mcoot/minefield/internal/web/middleware"
)

// HomeHandler handles the home page and game creation
type HomeHandler struct {
	controller session.ControllerInterface
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(controller session.ControllerInterface) *HomeHandler {
	return &HomeHandler{controller: controller}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	games, err := h.controller.ListGames(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := components.HomeData{
		Games:         games,
		DefaultWidth:  engine.DefaultSize,
		DefaultHeight: engine.DefaultSize,
	}
	render(w, r, http.StatusOK, components.Page(components.PageData{
		Title: "Home",
		Flash: middleware.FlashText(r.Context()),
	}, components.Home(data)))
}

// Create starts a new game and hands its owner token to the browser
func (h *HomeHandler) Create(w http.ResponseWriter, r *http.Request) {
	cfg, err := parseConfig(r)
	if err != nil {
		middleware.SetFlash(w, "error", err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	created, err := h.controller.CreateGame(r.Context(), cfg)
	if err != nil {
		middleware.SetFlash(w, "error", "Could not create game: "+err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetOwnerCookie(w, created.Game.ID, created.Token)
	http.Redirect(w, r, gamePath(created.Game.ID), http.StatusSeeOther)
}

// parseConfig reads the new game form. Blank fields take the defaults.
func parseConfig(r *http.Request) (engine.Config, error) {
	if err := r.ParseForm(); err != nil {
		return engine.Config{}, errInvalidForm
	}

	cfg := engine.DefaultConfig()
	fields := []struct {
		name string
		dst  *int
	}{
		{"width", &cfg.Width},
		{"height", &cfg.Height},
		{"mines", &cfg.Mines},
	}
	for _, f := range fields {
		value := r.PostFormValue(f.name)
		if value == "" {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return engine.Config{}, errInvalidForm
		}
		*f.dst = n
	}
	return cfg, nil
}
