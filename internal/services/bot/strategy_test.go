package bot_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/minefield/internal/dependencies/mocks"
	"github.com/mcoot/minefield/internal/engine"
	"github.com/mcoot/minefield/internal/model"
	"github.com/mcoot/minefield/internal/services/bot"
)

type StrategySuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
	random     *bot.RandomStrategy
	deduction  *bot.DeductionStrategy
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategySuite))
}

func (s *StrategySuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
	s.random = bot.NewRandomStrategy(s.mockRandom)
	s.deduction = bot.NewDeductionStrategy(s.random)
}

func (s *StrategySuite) newGame(width, height int, mines ...model.Position) *engine.Game {
	game, err := engine.New(engine.Config{Width: width, Height: height, Mines: len(mines)}, engine.WithLayout(mines))
	s.Require().NoError(err)
	return game
}

func (s *StrategySuite) step(game *engine.Game, x, y int) {
	game.Tile(model.Position{X: x, Y: y}).StepOn()
	game.Settle()
}

func (s *StrategySuite) TestRandom_PicksAmongHiddenTiles() {
	game := s.newGame(3, 3, model.Position{X: 0, Y: 0})

	// 9 hidden tiles listed column by column, index 4 is the centre
	s.mockRandom.QueueIntn(4)
	move, ok := s.random.ChooseMove(game.View())
	s.Require().True(ok)
	s.Equal(bot.Move{Kind: model.MoveStep, Position: model.Position{X: 1, Y: 1}}, move)
	s.Equal(9, s.mockRandom.IntnArgs[len(s.mockRandom.IntnArgs)-1])
}

func (s *StrategySuite) TestRandom_SkipsFlaggedTiles() {
	game := s.newGame(2, 1, model.Position{X: 0, Y: 0})
	game.Tile(model.Position{X: 0, Y: 0}).PutFlag()

	s.mockRandom.QueueIntn(0)
	move, ok := s.random.ChooseMove(game.View())
	s.Require().True(ok)
	s.Equal(model.Position{X: 1, Y: 0}, move.Position)
}

func (s *StrategySuite) TestRandom_NothingLeft() {
	game := s.newGame(2, 1, model.Position{X: 0, Y: 0})
	game.Tile(model.Position{X: 0, Y: 0}).PutFlag()
	s.step(game, 1, 0)

	_, ok := s.random.ChooseMove(game.View())
	s.False(ok)
}

func (s *StrategySuite) TestDeduction_FlagsProvenMine() {
	game := s.newGame(3, 3, model.Position{X: 0, Y: 0})
	s.step(game, 2, 2)

	move, ok := s.deduction.ChooseMove(game.View())
	s.Require().True(ok)
	s.Equal(bot.Move{Kind: model.MoveFlag, Position: model.Position{X: 0, Y: 0}}, move)
}

func (s *StrategySuite) TestDeduction_StepsNextToSatisfiedNumber() {
	// Mines at both ends of a 4x1 strip
	game := s.newGame(4, 1, model.Position{X: 0, Y: 0}, model.Position{X: 3, Y: 0})
	s.step(game, 1, 0)
	game.Tile(model.Position{X: 0, Y: 0}).PutFlag()

	// (1,0) shows 1 and its mine is flagged, so (2,0) is clear
	move, ok := s.deduction.ChooseMove(game.View())
	s.Require().True(ok)
	s.Equal(bot.Move{Kind: model.MoveStep, Position: model.Position{X: 2, Y: 0}}, move)
}

func (s *StrategySuite) TestDeduction_FallsBackWhenStuck() {
	game := s.newGame(3, 3, model.Position{X: 0, Y: 0})

	s.mockRandom.QueueIntn(0)
	move, ok := s.deduction.ChooseMove(game.View())
	s.Require().True(ok)
	s.Equal(bot.Move{Kind: model.MoveStep, Position: model.Position{X: 0, Y: 0}}, move)
}

func (s *StrategySuite) TestDeduction_NoFallback() {
	game := s.newGame(3, 3, model.Position{X: 0, Y: 0})

	_, ok := bot.NewDeductionStrategy(nil).ChooseMove(game.View())
	s.False(ok)
}
