package response

import (
	"github.com/mcoot/minefield/internal/model"
	"github.com/mcoot/minefield/internal/services/bot"
	"github.com/mcoot/minefield/internal/services/session"
)

// CreateGameResponse is returned once on creation; the token is not retrievable later
type CreateGameResponse struct {
	Game  *model.GameView `json:"game"`
	Token string          `json:"token"`
}

// CreateGameResponseFromCreated converts a session.Created
func CreateGameResponseFromCreated(c *session.Created) CreateGameResponse {
	return CreateGameResponse{
		Game:  c.Game,
		Token: c.Token,
	}
}

// GameList is the response for listing games
type GameList struct {
	Games []model.GameSummary `json:"games"`
}

// MoveResponse is the response after a step or flag
type MoveResponse struct {
	Changed []model.TileView `json:"changed"`
	Waves   int              `json:"waves"`
	Game    *model.GameView  `json:"game"`
}

// MoveResponseFromResult converts a model.MoveResult
func MoveResponseFromResult(r *model.MoveResult) MoveResponse {
	return MoveResponse{
		Changed: r.Changed,
		Waves:   r.Waves,
		Game:    r.View,
	}
}

// HintResponse is the move a bot suggests
type HintResponse struct {
	Strategy string   `json:"strategy"`
	Move     bot.Move `json:"move"`
}

// AutoplayResponse lists the moves a bot played and where the game ended up
type AutoplayResponse struct {
	Actions []bot.Action    `json:"actions"`
	Game    *model.GameView `json:"game"`
}
