package engine

import (
	"fmt"

	"github.com/mcoot/minefield/internal/model"
)

const (
	// DefaultSize is used for any dimension left at zero
	DefaultSize = 10

	// AutoMines asks for the default mine density of one mine per five tiles, rounded up
	AutoMines = -1
)

// Config holds the width/height/mine-count triple a game is built from
type Config struct {
	Width  int
	Height int
	Mines  int // AutoMines for the default density
}

// DefaultConfig returns a 10x10 board with the default mine density
func DefaultConfig() Config {
	return Config{
		Width:  DefaultSize,
		Height: DefaultSize,
		Mines:  AutoMines,
	}
}

// Normalize fills in defaults and validates the result.
// A zero width becomes DefaultSize, a zero height follows the width.
func (c Config) Normalize() (Config, error) {
	if c.Width < 0 || c.Height < 0 || c.Mines < AutoMines {
		return Config{}, &ConfigError{Width: c.Width, Height: c.Height, Mines: c.Mines}
	}

	if c.Width == 0 {
		c.Width = DefaultSize
	}
	if c.Height == 0 {
		c.Height = c.Width
	}

	cells := c.Width * c.Height
	if c.Mines == AutoMines {
		c.Mines = (cells + 4) / 5
	}
	if c.Mines > cells {
		return Config{}, &ConfigError{Width: c.Width, Height: c.Height, Mines: c.Mines}
	}
	return c, nil
}

// Cells returns the number of tiles on the board
func (c Config) Cells() int {
	return c.Width * c.Height
}

// ConfigError reports a width/height/mines triple that cannot form a board
type ConfigError struct {
	Width  int
	Height int
	Mines  int
}

func (e *ConfigError) Error() string {
	switch {
	case e.Width < 0:
		return fmt.Sprintf("cannot create a board with width %d", e.Width)
	case e.Height < 0:
		return fmt.Sprintf("cannot create a board with height %d", e.Height)
	case e.Mines < AutoMines:
		return fmt.Sprintf("cannot create a board with %d mines", e.Mines)
	case e.Mines > e.Width*e.Height:
		return fmt.Sprintf("too many mines: %d > %d * %d", e.Mines, e.Width, e.Height)
	default:
		return "cannot create board"
	}
}

// Unwrap lets callers match with errors.Is(err, model.ErrInvalidConfiguration)
func (e *ConfigError) Unwrap() error {
	return model.ErrInvalidConfiguration
}
