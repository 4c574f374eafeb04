package bot

import "github.com/mcoot/minefield/internal/model"

// DeductionStrategy plays the moves the numbers prove safe and
// falls back to another strategy when nothing can be deduced
type DeductionStrategy struct {
	fallback Strategy
}

// NewDeductionStrategy creates a DeductionStrategy guessing with fallback
func NewDeductionStrategy(fallback Strategy) *DeductionStrategy {
	return &DeductionStrategy{fallback: fallback}
}

// ChooseMove looks for, in order: a tile proven clear, a tile proven mined,
// and when only mines are left, any unflagged tile
func (s *DeductionStrategy) ChooseMove(view *model.GameView) (Move, bool) {
	if move, ok := s.deduce(view); ok {
		return move, true
	}

	// Whatever is still hidden is a mine
	if view.TilesLeft == view.Mines && view.FlagsLeft > 0 {
		if candidates := hiddenTiles(view); len(candidates) > 0 {
			return Move{Kind: model.MoveFlag, Position: candidates[0]}, true
		}
	}

	if s.fallback == nil {
		return Move{}, false
	}
	return s.fallback.ChooseMove(view)
}

func (s *DeductionStrategy) deduce(view *model.GameView) (Move, bool) {
	var flag *Move

	for x := range view.Tiles {
		for y := range view.Tiles[x] {
			tv := view.Tiles[x][y]
			if tv.State != model.TileStateMinesAround {
				continue
			}

			var unknown []model.Position
			flagged := 0
			for _, p := range neighbours(view, tv.Position()) {
				n := view.Tile(p)
				switch {
				case n.State == model.TileStateFlagOn:
					flagged++
				case hidden(*n):
					unknown = append(unknown, p)
				}
			}
			if len(unknown) == 0 {
				continue
			}

			// Every mine around is flagged, the rest are clear
			if flagged == tv.MinesAround {
				return Move{Kind: model.MoveStep, Position: unknown[0]}, true
			}

			// Every unknown neighbour must be a mine
			if flag == nil && flagged+len(unknown) == tv.MinesAround && view.FlagsLeft > 0 {
				flag = &Move{Kind: model.MoveFlag, Position: unknown[0]}
			}
		}
	}

	if flag != nil {
		return *flag, true
	}
	return Move{}, false
}
