package bot_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/minefield/internal/engine"
	"github.com/mcoot/minefield/internal/factory"
	"github.com/mcoot/minefield/internal/model"
	"github.com/mcoot/minefield/internal/services/bot"
)

type ServiceSuite struct {
	suite.Suite
	app *factory.TestApp
	ctx context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.ctx = context.Background()
}

func (s *ServiceSuite) TearDownTest() {
	s.Require().NoError(s.app.Close())
}

// createGame makes a 3x3 game with its mine at (0,0)
func (s *ServiceSuite) createGame(id model.GameID) {
	s.app.QueueGameIDs(id)
	_, err := s.app.Controller.CreateGame(s.ctx, engine.Config{Width: 3, Height: 3, Mines: 1})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestStrategyLookup() {
	st, err := s.app.BotService.Strategy("")
	s.Require().NoError(err)
	s.IsType(&bot.DeductionStrategy{}, st)

	st, err = s.app.BotService.Strategy(bot.StrategyRandom)
	s.Require().NoError(err)
	s.IsType(&bot.RandomStrategy{}, st)

	_, err = s.app.BotService.Strategy("psychic")
	s.ErrorIs(err, model.ErrUnknownStrategy)
}

func (s *ServiceSuite) TestHintDoesNotPlay() {
	s.createGame("game1")

	move, err := s.app.BotService.Hint(s.ctx, "game1", bot.StrategyDeduction)
	s.Require().NoError(err)
	s.Equal(model.MoveStep, move.Kind)

	view, err := s.app.Controller.GetGame(s.ctx, "game1")
	s.Require().NoError(err)
	s.Equal(9, view.TilesLeft)
}

func (s *ServiceSuite) TestHintMissingGame() {
	_, err := s.app.BotService.Hint(s.ctx, "missing", "")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ServiceSuite) TestAutoplayWins() {
	s.createGame("game1")

	actions, err := s.app.BotService.Autoplay(s.ctx, "game1", bot.StrategyDeduction, 0)
	s.Require().NoError(err)
	s.Require().Len(actions, 2)

	// The unqueued mock random guesses the last hidden tile, (2,2)
	s.Equal(bot.Move{Kind: model.MoveStep, Position: model.Position{X: 2, Y: 2}}, actions[0].Move)
	s.Equal(8, actions[0].Changed)
	s.Equal(bot.Move{Kind: model.MoveFlag, Position: model.Position{X: 0, Y: 0}}, actions[1].Move)
	s.Equal(model.GameStatusWon, actions[1].Status)

	record, err := s.app.Storage.GetGame(s.ctx, "game1")
	s.Require().NoError(err)
	s.Len(record.Moves, 2)
}

func (s *ServiceSuite) TestAutoplayStopsAtMaxMoves() {
	s.createGame("game1")

	actions, err := s.app.BotService.Autoplay(s.ctx, "game1", bot.StrategyDeduction, 1)
	s.Require().NoError(err)
	s.Len(actions, 1)
	s.Equal(model.GameStatusPlaying, actions[0].Status)
}

func (s *ServiceSuite) TestAutoplayCanLose() {
	s.createGame("game1")

	// Random guesses the first hidden tile, which is the mine
	s.app.MockRandom.QueueIntn(0)
	actions, err := s.app.BotService.Autoplay(s.ctx, "game1", bot.StrategyRandom, 0)
	s.Require().NoError(err)
	s.Require().Len(actions, 1)
	s.Equal(model.GameStatusLost, actions[0].Status)

	_, err = s.app.BotService.Autoplay(s.ctx, "game1", bot.StrategyRandom, 0)
	s.True(errors.Is(err, model.ErrGameOver))
}
