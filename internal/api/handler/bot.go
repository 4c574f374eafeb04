package handler

import (
	"net/http"

	"github.com/mcoot/minefield/internal/api/request"
	"github.com/mcoot/minefield/internal/api/response"
	"github.com/mcoot/minefield/internal/services/bot"
	"github.com/mcoot/minefield/internal/services/session"
)

// BotHandler handles hint and autoplay endpoints
type BotHandler struct {
	controller session.ControllerInterface
	bots       *bot.Service
}

// NewBotHandler creates a new bot handler
func NewBotHandler(controller session.ControllerInterface, bots *bot.Service) *BotHandler {
	return &BotHandler{
		controller: controller,
		bots:       bots,
	}
}

// Hint handles GET /api/v1/games/{id}/hint
func (h *BotHandler) Hint(w http.ResponseWriter, r *http.Request) {
	strategy := r.URL.Query().Get("strategy")
	if strategy == "" {
		strategy = bot.DefaultStrategy
	}

	move, err := h.bots.Hint(r.Context(), gameID(r), strategy)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HintResponse{Strategy: strategy, Move: move})
}

// Autoplay handles POST /api/v1/games/{id}/autoplay
func (h *BotHandler) Autoplay(w http.ResponseWriter, r *http.Request) {
	var req request.AutoplayRequest
	if err := decodeOptional(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	actions, err := h.bots.Autoplay(r.Context(), gameID(r), req.Strategy, req.MaxMoves)
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := h.controller.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	if actions == nil {
		actions = []bot.Action{}
	}
	response.JSON(w, http.StatusOK, response.AutoplayResponse{Actions: actions, Game: view})
}
