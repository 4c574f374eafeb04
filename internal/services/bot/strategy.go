package bot

import "github.com/mcoot/minefield/internal/model"

// Move is a step or flag a strategy wants to make
type Move struct {
	Kind     model.MoveKind `json:"kind"`
	Position model.Position `json:"position"`
}

// Strategy defines how a bot chooses its next move from what a player can see
type Strategy interface {
	// ChooseMove returns false when no tile is left to play
	ChooseMove(view *model.GameView) (Move, bool)
}

// hidden reports whether a tile can still be stepped on
func hidden(tv model.TileView) bool {
	return tv.State == model.TileStateUnclicked || tv.State == model.TileStateFlagOff
}

// hiddenTiles lists every tile that can still be stepped on, column by column
func hiddenTiles(view *model.GameView) []model.Position {
	var positions []model.Position
	for x := range view.Tiles {
		for y := range view.Tiles[x] {
			if hidden(view.Tiles[x][y]) {
				positions = append(positions, model.Position{X: x, Y: y})
			}
		}
	}
	return positions
}

// neighbours returns the in-bounds positions around pos
func neighbours(view *model.GameView, pos model.Position) []model.Position {
	var out []model.Position
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			p := model.Position{X: pos.X + dx, Y: pos.Y + dy}
			if view.Tile(p) != nil {
				out = append(out, p)
			}
		}
	}
	return out
}
