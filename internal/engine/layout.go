package engine

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/mcoot/minefield/internal/dependencies/random"
	"github.com/mcoot/minefield/internal/model"
)

// RandomLayout shuffles every tile index and takes the first mines of them.
// Index i maps to x = i / height, y = i % height, the order the grid is built in.
func RandomLayout(cfg Config, rnd random.Random) []model.Position {
	cells := make([]int, cfg.Cells())
	for i := range cells {
		cells[i] = i
	}

	random.Shuffle(rnd, len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})

	layout := make([]model.Position, cfg.Mines)
	for i, index := range cells[:cfg.Mines] {
		layout[i] = positionOf(index, cfg.Height)
	}
	return layout
}

// ValidateLayout checks that layout places exactly cfg.Mines distinct mines on the board
func ValidateLayout(cfg Config, layout []model.Position) error {
	if len(layout) != cfg.Mines {
		return fmt.Errorf("%w: %d positions for %d mines", model.ErrInvalidLayout, len(layout), cfg.Mines)
	}

	seen := mapset.New[model.Position]()
	for _, pos := range layout {
		if pos.X < 0 || pos.X >= cfg.Width || pos.Y < 0 || pos.Y >= cfg.Height {
			return fmt.Errorf("%w: %s is off the board", model.ErrInvalidLayout, pos)
		}
		if seen.Has(pos) {
			return fmt.Errorf("%w: %s appears twice", model.ErrInvalidLayout, pos)
		}
		seen.Put(pos)
	}
	return nil
}

func positionOf(index, height int) model.Position {
	return model.Position{X: index / height, Y: index % height}
}
