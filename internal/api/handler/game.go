package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/minefield/internal/api/request"
	"github.com/mcoot/minefield/internal/api/response"
	"github.com/mcoot/minefield/internal/model"
	"github.com/mcoot/minefield/internal/services/session"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	controller session.ControllerInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(controller session.ControllerInterface) *GameHandler {
	return &GameHandler{
		controller: controller,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := decodeOptional(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	created, err := h.controller.CreateGame(r.Context(), req.Config())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CreateGameResponseFromCreated(created))
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.controller.ListGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameList{Games: games})
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.controller.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// Step handles POST /api/v1/games/{id}/step
func (h *GameHandler) Step(w http.ResponseWriter, r *http.Request) {
	pos, err := decodePosition(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.controller.StepOn(r.Context(), gameID(r), pos)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveResponseFromResult(result))
}

// Flag handles POST /api/v1/games/{id}/flag
func (h *GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	pos, err := decodePosition(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.controller.ToggleFlag(r.Context(), gameID(r), pos)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveResponseFromResult(result))
}

// Reset handles POST /api/v1/games/{id}/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	view, err := h.controller.ResetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// Abandon handles DELETE /api/v1/games/{id}
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.AbandonGame(r.Context(), gameID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

func decodePosition(r *http.Request) (model.Position, error) {
	var req request.PositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return model.Position{}, NewInvalidRequestError("Invalid request body")
	}
	if req.X == nil || req.Y == nil {
		return model.Position{}, NewInvalidRequestError("x and y are required")
	}
	return model.Position{X: *req.X, Y: *req.Y}, nil
}
