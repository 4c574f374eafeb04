package bot

import (
	"github.com/mcoot/minefield/internal/dependencies/random"
	"github.com/mcoot/minefield/internal/model"
)

// RandomStrategy steps on a random hidden tile
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseMove picks a random hidden tile to step on
func (s *RandomStrategy) ChooseMove(view *model.GameView) (Move, bool) {
	candidates := hiddenTiles(view)
	if len(candidates) == 0 {
		return Move{}, false
	}
	return Move{Kind: model.MoveStep, Position: candidates[s.random.Intn(len(candidates))]}, true
}
