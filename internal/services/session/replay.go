package session

import (
	"fmt"

	"github.com/mcoot/minefield/internal/engine"
	"github.com/mcoot/minefield/internal/model"
)

// Rebuild lays out the record's mines and replays its moves in order,
// settling the cascade after each one
func Rebuild(record *model.GameRecord) (*engine.Game, error) {
	cfg := engine.Config{Width: record.Width, Height: record.Height, Mines: record.Mines}
	game, err := engine.New(cfg, engine.WithLayout(record.MineLayout))
	if err != nil {
		return nil, fmt.Errorf("rebuilding game %s: %w", record.ID, err)
	}

	for i, move := range record.Moves {
		if err := apply(game, move); err != nil {
			return nil, fmt.Errorf("replaying move %d of game %s: %w", i, record.ID, err)
		}
		game.Settle()
		game.YouWin()
	}
	return game, nil
}

// apply performs a single intent without running the cascade
func apply(game *engine.Game, move model.Move) error {
	tile := game.Tile(move.Position)
	if tile == nil {
		return fmt.Errorf("%w: %s", model.ErrInvalidPosition, move.Position)
	}

	switch move.Kind {
	case model.MoveStep:
		tile.StepOn()
	case model.MoveFlag:
		tile.PutFlag()
	default:
		return fmt.Errorf("%w: %q", model.ErrUnknownMove, move.Kind)
	}
	return nil
}
