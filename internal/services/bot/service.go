package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/minefield/internal/dependencies/random"
	"github.com/mcoot/minefield/internal/model"
)

const (
	// StrategyRandom steps on random hidden tiles
	StrategyRandom = "random"
	// StrategyDeduction plays proven moves and guesses only when stuck
	StrategyDeduction = "deduction"

	// DefaultStrategy is used when no strategy is named
	DefaultStrategy = StrategyDeduction

	// MaxBotIterations is a safety limit for the Autoplay loop
	MaxBotIterations = 1000
)

// Player is the part of the session controller a bot plays through
type Player interface {
	GetGame(ctx context.Context, gameID model.GameID) (*model.GameView, error)
	StepOn(ctx context.Context, gameID model.GameID, pos model.Position) (*model.MoveResult, error)
	ToggleFlag(ctx context.Context, gameID model.GameID, pos model.Position) (*model.MoveResult, error)
}

// Action is one move a bot made during Autoplay
type Action struct {
	Move    Move             `json:"move"`
	Changed int              `json:"changed"`
	Status  model.GameStatus `json:"status"`
}

// Service suggests and plays moves on hosted games
type Service struct {
	player     Player
	strategies map[string]Strategy
	logger     *slog.Logger
}

// DefaultStrategies returns the built-in strategies keyed by name
func DefaultStrategies(rnd random.Random) map[string]Strategy {
	randomStrategy := NewRandomStrategy(rnd)
	return map[string]Strategy{
		StrategyRandom:    randomStrategy,
		StrategyDeduction: NewDeductionStrategy(randomStrategy),
	}
}

// NewService creates a new bot Service
func NewService(player Player, strategies map[string]Strategy, logger *slog.Logger) *Service {
	return &Service{
		player:     player,
		strategies: strategies,
		logger:     logger.With(slog.String("component", "bot-service")),
	}
}

// Strategy returns the named strategy, or the default one for an empty name
func (s *Service) Strategy(name string) (Strategy, error) {
	if name == "" {
		name = DefaultStrategy
	}
	st, ok := s.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, name)
	}
	return st, nil
}

// Hint suggests the next move without playing it
func (s *Service) Hint(ctx context.Context, gameID model.GameID, strategy string) (Move, error) {
	st, err := s.Strategy(strategy)
	if err != nil {
		return Move{}, err
	}

	view, err := s.player.GetGame(ctx, gameID)
	if err != nil {
		return Move{}, err
	}
	if view.Status.IsOver() {
		return Move{}, model.ErrGameOver
	}

	move, ok := st.ChooseMove(view)
	if !ok {
		return Move{}, model.ErrNoMove
	}
	return move, nil
}

// Autoplay plays up to maxMoves moves, stopping early once the game is over.
// It returns every action taken so callers can report them.
func (s *Service) Autoplay(ctx context.Context, gameID model.GameID, strategy string, maxMoves int) ([]Action, error) {
	st, err := s.Strategy(strategy)
	if err != nil {
		return nil, err
	}
	if maxMoves <= 0 || maxMoves > MaxBotIterations {
		maxMoves = MaxBotIterations
	}

	view, err := s.player.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if view.Status.IsOver() {
		return nil, model.ErrGameOver
	}

	var actions []Action
	for range maxMoves {
		if view.Status.IsOver() {
			break
		}

		move, ok := st.ChooseMove(view)
		if !ok {
			break
		}

		result, err := s.play(ctx, gameID, move)
		if err != nil {
			return actions, err
		}

		actions = append(actions, Action{
			Move:    move,
			Changed: len(result.Changed),
			Status:  result.View.Status,
		})
		view = result.View
	}

	s.logger.Info("autoplay finished",
		slog.String("game_id", string(gameID)),
		slog.Int("moves", len(actions)),
		slog.String("status", string(view.Status)),
	)

	return actions, nil
}

func (s *Service) play(ctx context.Context, gameID model.GameID, move Move) (*model.MoveResult, error) {
	switch move.Kind {
	case model.MoveStep:
		return s.player.StepOn(ctx, gameID, move.Position)
	case model.MoveFlag:
		return s.player.ToggleFlag(ctx, gameID, move.Position)
	default:
		return nil, model.ErrUnknownMove
	}
}
