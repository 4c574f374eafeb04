package request

import "github.com/mcoot/minefield/internal/engine"

// CreateGameRequest is the request body for creating a game.
// Zero sizes take the defaults and an absent mine count takes the default density.
type CreateGameRequest struct {
	Width  int  `json:"width,omitempty"`
	Height int  `json:"height,omitempty"`
	Mines  *int `json:"mines,omitempty"`
}

// Config converts the request to an engine configuration
func (r CreateGameRequest) Config() engine.Config {
	mines := engine.AutoMines
	if r.Mines != nil {
		mines = *r.Mines
	}
	return engine.Config{Width: r.Width, Height: r.Height, Mines: mines}
}

// PositionRequest is the request body for stepping on or flagging a tile
type PositionRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

// AutoplayRequest is the request body for letting a bot play a game
type AutoplayRequest struct {
	Strategy string `json:"strategy,omitempty"`
	MaxMoves int    `json:"max_moves,omitempty"`
}
