package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/minefield/internal/model"
	"github.com/mcoot/minefield/internal/services/session"
	"github.com/mcoot/minefield/internal/web/components"
	"github.com/mcoot/minefield/internal/web/middleware"
	"github.com/mcoot/minefield/internal/web/sse"
	"github.com/mcoot/minefield/internal/web/stream"
	"github.com/mcoot/minefield/internal/web/ws"
)

// GameHandler handles game pages and actions
type GameHandler struct {
	controller session.ControllerInterface
	hubManager *stream.HubManager
	logger     *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(controller session.ControllerInterface, hubManager *stream.HubManager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		controller: controller,
		hubManager: hubManager,
		logger:     logger,
	}
}

// View renders the game page
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	view, err := h.controller.GetGame(r.Context(), id)
	if err != nil {
		h.fail(w, r, id, err)
		return
	}

	render(w, r, http.StatusOK, components.Page(components.PageData{
		Title: "Game " + string(id),
		Flash: middleware.FlashText(r.Context()),
	}, components.GamePage(view, middleware.IsOwner(r.Context()))))
}

// Step handles a step intent
func (h *GameHandler) Step(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.controller.StepOn)
}

// Flag handles a flag toggle intent
func (h *GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.controller.ToggleFlag)
}

type moveFunc func(ctx context.Context, id model.GameID, pos model.Position) (*model.MoveResult, error)

func (h *GameHandler) move(w http.ResponseWriter, r *http.Request, apply moveFunc) {
	id := gameID(r)
	if !middleware.IsOwner(r.Context()) {
		h.fail(w, r, id, errNotOwner)
		return
	}

	pos, err := parsePosition(r)
	if err != nil {
		h.fail(w, r, id, err)
		return
	}

	result, err := apply(r.Context(), id, pos)
	if err != nil {
		h.fail(w, r, id, err)
		return
	}

	h.respondBoard(w, r, result.View)
}

// Reset starts the game over with a new layout
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if !middleware.IsOwner(r.Context()) {
		h.fail(w, r, id, errNotOwner)
		return
	}

	view, err := h.controller.ResetGame(r.Context(), id)
	if err != nil {
		h.fail(w, r, id, err)
		return
	}

	h.respondBoard(w, r, view)
}

// Abandon deletes the game and forgets its owner cookie
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if !middleware.IsOwner(r.Context()) {
		h.fail(w, r, id, errNotOwner)
		return
	}

	if err := h.controller.AbandonGame(r.Context(), id); err != nil {
		h.fail(w, r, id, err)
		return
	}

	middleware.ClearOwnerCookie(w, id)
	middleware.SetFlash(w, "info", "Game abandoned")
	redirect(w, r, "/")
}

// Events streams the game's events as server-sent events
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	hub, ok := h.hub(w, r)
	if !ok {
		return
	}
	sse.ServeSSE(w, r, hub, sse.ParseFormat(r.URL.Query().Get("format")))
}

// Socket streams the game's events over a WebSocket
func (h *GameHandler) Socket(w http.ResponseWriter, r *http.Request) {
	hub, ok := h.hub(w, r)
	if !ok {
		return
	}
	ws.ServeWS(w, r, hub, h.logger)
}

func (h *GameHandler) hub(w http.ResponseWriter, r *http.Request) (*stream.Hub, bool) {
	id := gameID(r)
	if _, err := h.controller.GetGame(r.Context(), id); err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			http.Error(w, "Game not found", http.StatusNotFound)
		} else {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return nil, false
	}
	return h.hubManager.GetOrCreateHub(id), true
}

// respondBoard swaps the board for htmx requests and redirects otherwise
func (h *GameHandler) respondBoard(w http.ResponseWriter, r *http.Request, view *model.GameView) {
	if isHTMX(r) {
		render(w, r, http.StatusOK, components.Board(view, true))
		return
	}
	http.Redirect(w, r, gamePath(view.ID), http.StatusSeeOther)
}

// fail reports an error as a flash message on the most useful page
func (h *GameHandler) fail(w http.ResponseWriter, r *http.Request, id model.GameID, err error) {
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		middleware.SetFlash(w, "error", "Game not found")
		redirect(w, r, "/")
	case errors.Is(err, model.ErrGameOver):
		middleware.SetFlash(w, "info", "The game is over")
		redirect(w, r, gamePath(id))
	case errors.Is(err, model.ErrInvalidPosition), errors.Is(err, errInvalidForm), errors.Is(err, errNotOwner):
		middleware.SetFlash(w, "error", err.Error())
		redirect(w, r, gamePath(id))
	default:
		h.logger.Error("web game action failed",
			slog.String("game_id", string(id)),
			slog.Any("error", err))
		middleware.SetFlash(w, "error", "Something went wrong")
		redirect(w, r, gamePath(id))
	}
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

func parsePosition(r *http.Request) (model.Position, error) {
	if err := r.ParseForm(); err != nil {
		return model.Position{}, errInvalidForm
	}
	x, err := strconv.Atoi(r.PostFormValue("x"))
	if err != nil {
		return model.Position{}, errInvalidForm
	}
	y, err := strconv.Atoi(r.PostFormValue("y"))
	if err != nil {
		return model.Position{}, errInvalidForm
	}
	return model.Position{X: x, Y: y}, nil
}
