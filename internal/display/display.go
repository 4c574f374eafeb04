// Package display maps tile views to what a player is shown
package display

import (
	"fmt"
	"strconv"

	"github.com/mcoot/minefield/internal/model"
)

// Glyphs used on every front end
const (
	GlyphFlag = "⚑"
	GlyphMine = "✹"
)

// Kind classifies a tile for styling
type Kind string

const (
	KindHidden    Kind = "hidden"
	KindEmpty     Kind = "empty"
	KindNumber    Kind = "number"
	KindFlag      Kind = "flag"
	KindBoom      Kind = "boom"
	KindMine      Kind = "mine"
	KindWrongFlag Kind = "wrong-flag"
)

// Tile is the presentation of one tile
type Tile struct {
	Kind  Kind
	Glyph string
	Class string
	Open  bool // Whether the tile still accepts step and flag intents
}

// UnknownStateError is returned for a state no front end knows how to draw
type UnknownStateError struct {
	State model.TileState
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("undefined tile state: %q", e.State)
}

// ForTile maps a tile view to its presentation
func ForTile(t model.TileView) (Tile, error) {
	switch t.State {
	case model.TileStateUnclicked, model.TileStateFlagOff:
		return Tile{Kind: KindHidden, Class: "tile", Open: true}, nil
	case model.TileStateNoMinesAround:
		return Tile{Kind: KindEmpty, Class: "tile clicked nomines"}, nil
	case model.TileStateMinesAround:
		return Tile{
			Kind:  KindNumber,
			Glyph: strconv.Itoa(t.MinesAround),
			Class: "tile clicked mines-" + strconv.Itoa(t.MinesAround),
		}, nil
	case model.TileStateFlagOn:
		return Tile{Kind: KindFlag, Glyph: GlyphFlag, Class: "tile clicked flag", Open: true}, nil
	case model.TileStateBoom:
		return Tile{Kind: KindBoom, Glyph: GlyphMine, Class: "tile boom"}, nil
	case model.TileStateReveal:
		return forReveal(t), nil
	default:
		return Tile{}, &UnknownStateError{State: t.State}
	}
}

func forReveal(t model.TileView) Tile {
	switch {
	case t.HasMine && !t.HasFlag:
		return Tile{Kind: KindMine, Glyph: GlyphMine, Class: "tile revealed mine"}
	case !t.HasMine && t.HasFlag:
		return Tile{Kind: KindWrongFlag, Glyph: GlyphFlag, Class: "tile boom wrong-flag"}
	case t.HasMine && t.HasFlag:
		return Tile{Kind: KindFlag, Glyph: GlyphFlag, Class: "tile clicked flag"}
	case t.MinesAround > 0:
		return Tile{
			Kind:  KindNumber,
			Glyph: strconv.Itoa(t.MinesAround),
			Class: "tile revealed mines-" + strconv.Itoa(t.MinesAround),
		}
	default:
		return Tile{Kind: KindEmpty, Class: "tile revealed nomines"}
	}
}
