package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mcoot/minefield/internal/dependencies/clock"
	"github.com/mcoot/minefield/internal/dependencies/random"
	"github.com/mcoot/minefield/internal/engine"
	"github.com/mcoot/minefield/internal/model"
	"github.com/mcoot/minefield/internal/services/auth"
	"github.com/mcoot/minefield/internal/storage"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Controller hosts minesweeper games: it owns the live engine games,
// persists every intent and publishes what changed
type Controller struct {
	storage storage.Storage
	auth    *auth.Service
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	mu     sync.RWMutex
	live   map[model.GameID]*liveGame
	events *eventBus
}

// liveGame serializes all intents against one game
type liveGame struct {
	mu      sync.Mutex
	record  *model.GameRecord
	game    *engine.Game
	removed bool
}

// Created is returned once when a game is created. Token is never stored in clear.
type Created struct {
	Game  *model.GameView `json:"game"`
	Token string          `json:"token"`
}

// NewController creates a new session Controller
func NewController(
	storage storage.Storage,
	authService *auth.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		auth:    authService,
		clock:   clock,
		random:  random,
		logger:  logger,
		live:    make(map[model.GameID]*liveGame),
		events:  newEventBus(),
	}
}

// CreateGame lays out a new board and returns it with its owner token
func (c *Controller) CreateGame(ctx context.Context, cfg engine.Config) (*Created, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}

	layout := engine.RandomLayout(cfg, c.random)
	game, err := engine.New(cfg, engine.WithLayout(layout))
	if err != nil {
		return nil, err
	}

	token, hash, err := c.auth.IssueToken()
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	record := &model.GameRecord{
		ID:         model.GameID(c.random.String(12, idAlphabet)),
		Width:      cfg.Width,
		Height:     cfg.Height,
		Mines:      cfg.Mines,
		MineLayout: layout,
		TokenHash:  hash,
		Status:     model.GameStatusPlaying,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := c.storage.SaveGame(ctx, record); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(record.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	lg := &liveGame{record: record, game: game}
	c.mu.Lock()
	c.live[record.ID] = lg
	c.mu.Unlock()

	c.logger.Info("game created",
		slog.String("game_id", string(record.ID)),
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height),
		slog.Int("mines", cfg.Mines),
	)

	view := lg.view()
	c.publish(record.ID, model.EventGameCreated, view)

	return &Created{Game: view, Token: token}, nil
}

// GetGame returns a snapshot of a game
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.GameView, error) {
	lg, err := c.acquire(ctx, gameID)
	if err != nil {
		return nil, err
	}
	defer lg.mu.Unlock()

	return lg.view(), nil
}

// ListGames returns a summary of every stored game
func (c *Controller) ListGames(ctx context.Context) ([]model.GameSummary, error) {
	records, err := c.storage.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.GameSummary, len(records))
	for i, r := range records {
		summaries[i] = r.Summary()
	}
	return summaries, nil
}

// Authorize checks that token is the owner token of the game
func (c *Controller) Authorize(ctx context.Context, gameID model.GameID, token string) error {
	lg, err := c.acquire(ctx, gameID)
	if err != nil {
		return err
	}
	hash := lg.record.TokenHash
	lg.mu.Unlock()

	if err := c.auth.Verify(hash, token); err != nil {
		return model.ErrForbidden
	}
	return nil
}

// StepOn clicks the tile at pos and runs the resulting cascade
func (c *Controller) StepOn(ctx context.Context, gameID model.GameID, pos model.Position) (*model.MoveResult, error) {
	return c.play(ctx, gameID, model.MoveStep, pos)
}

// ToggleFlag puts or removes a flag on the tile at pos
func (c *Controller) ToggleFlag(ctx context.Context, gameID model.GameID, pos model.Position) (*model.MoveResult, error) {
	return c.play(ctx, gameID, model.MoveFlag, pos)
}

func (c *Controller) play(ctx context.Context, gameID model.GameID, kind model.MoveKind, pos model.Position) (*model.MoveResult, error) {
	lg, err := c.acquire(ctx, gameID)
	if err != nil {
		return nil, err
	}
	defer lg.mu.Unlock()

	game := lg.game
	if game.Tile(pos) == nil {
		return nil, model.ErrInvalidPosition
	}
	if !game.IsPlaying() {
		return nil, model.ErrGameOver
	}

	tracker := newChangeTracker(game)
	defer tracker.close()

	move := model.Move{Kind: kind, Position: pos, At: c.clock.Now()}
	if err := apply(game, move); err != nil {
		return nil, err
	}
	c.publishWave(gameID, tracker, 0)

	waves := 0
	for game.Pending() > 0 {
		game.RunWave()
		waves++
		c.publishWave(gameID, tracker, waves)
	}
	game.YouWin()

	result := &model.MoveResult{
		Changed: tracker.changed(),
		Waves:   waves,
		View:    lg.view(),
	}

	// Intents that changed nothing are not worth replaying
	if len(result.Changed) == 0 && waves == 0 {
		return result, nil
	}

	status := game.Status()
	lg.record.Moves = append(lg.record.Moves, move)
	lg.record.Status = status
	lg.record.UpdatedAt = move.At

	if err := c.storage.SaveGame(ctx, lg.record); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		// The live game is ahead of storage now, rebuild it on next use
		c.evict(gameID, lg)
		return nil, err
	}

	c.publish(gameID, model.EventGameUpdated, model.GameUpdatedPayload{
		Status:    status,
		FlagsLeft: game.FlagsLeft(),
		TilesLeft: game.TilesLeft(),
	})

	switch status {
	case model.GameStatusWon:
		c.logger.Info("game won",
			slog.String("game_id", string(gameID)),
			slog.Int("moves", len(lg.record.Moves)),
		)
		c.publish(gameID, model.EventGameWon, result.View)
	case model.GameStatusLost:
		c.logger.Info("game lost",
			slog.String("game_id", string(gameID)),
			slog.Int("moves", len(lg.record.Moves)),
			slog.String("position", pos.String()),
		)
		c.publish(gameID, model.EventGameLost, result.View)
	}

	return result, nil
}

// ResetGame replaces the game with a freshly laid out board of the same size
func (c *Controller) ResetGame(ctx context.Context, gameID model.GameID) (*model.GameView, error) {
	lg, err := c.acquire(ctx, gameID)
	if err != nil {
		return nil, err
	}
	defer lg.mu.Unlock()

	cfg := engine.Config{Width: lg.record.Width, Height: lg.record.Height, Mines: lg.record.Mines}
	layout := engine.RandomLayout(cfg, c.random)
	game, err := engine.New(cfg, engine.WithLayout(layout))
	if err != nil {
		return nil, err
	}

	record := lg.record.Clone()
	record.MineLayout = layout
	record.Moves = nil
	record.Status = model.GameStatusPlaying
	record.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, record); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	lg.record = record
	lg.game = game

	c.logger.Info("game reset", slog.String("game_id", string(gameID)))

	view := lg.view()
	c.publish(gameID, model.EventGameReset, view)
	return view, nil
}

// AbandonGame deletes a game
func (c *Controller) AbandonGame(ctx context.Context, gameID model.GameID) error {
	lg, err := c.acquire(ctx, gameID)
	if err != nil {
		return err
	}
	defer lg.mu.Unlock()

	if err := c.storage.DeleteGame(ctx, gameID); err != nil {
		return err
	}
	c.evict(gameID, lg)

	c.logger.Info("game abandoned", slog.String("game_id", string(gameID)))

	c.publish(gameID, model.EventGameAbandoned, nil)
	return nil
}

// Subscribe registers fn for every event of one game
func (c *Controller) Subscribe(ctx context.Context, gameID model.GameID, fn func(model.Event)) (unsubscribe func(), err error) {
	lg, err := c.acquire(ctx, gameID)
	if err != nil {
		return nil, err
	}
	defer lg.mu.Unlock()

	return c.events.subscribe(gameID, fn), nil
}

// OnEvent registers fn for the events of every game
func (c *Controller) OnEvent(fn func(model.Event)) (unsubscribe func()) {
	return c.events.subscribeAll(fn)
}

// acquire returns the live game locked, loading it from storage if needed
func (c *Controller) acquire(ctx context.Context, gameID model.GameID) (*liveGame, error) {
	for {
		lg, err := c.load(ctx, gameID)
		if err != nil {
			return nil, err
		}
		lg.mu.Lock()
		if !lg.removed {
			return lg, nil
		}
		// Evicted while we waited, look it up again
		lg.mu.Unlock()
	}
}

func (c *Controller) load(ctx context.Context, gameID model.GameID) (*liveGame, error) {
	c.mu.RLock()
	lg, ok := c.live[gameID]
	c.mu.RUnlock()
	if ok {
		return lg, nil
	}

	record, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	game, err := Rebuild(record)
	if err != nil {
		c.logger.Error("failed to rebuild game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.live[gameID]; ok {
		return existing, nil
	}
	lg = &liveGame{record: record, game: game}
	c.live[gameID] = lg

	c.logger.Debug("game loaded",
		slog.String("game_id", string(gameID)),
		slog.Int("moves", len(record.Moves)),
	)
	return lg, nil
}

// evict drops lg from the cache. The caller holds lg.mu.
func (c *Controller) evict(gameID model.GameID, lg *liveGame) {
	lg.removed = true
	c.mu.Lock()
	if c.live[gameID] == lg {
		delete(c.live, gameID)
	}
	c.mu.Unlock()
}

func (c *Controller) publishWave(gameID model.GameID, tracker *changeTracker, wave int) {
	tiles := tracker.flush()
	if len(tiles) == 0 {
		return
	}
	c.publish(gameID, model.EventTilesChanged, model.TilesChangedPayload{Wave: wave, Tiles: tiles})
}

func (c *Controller) publish(gameID model.GameID, eventType model.EventType, payload any) {
	c.events.publish(model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		GameID:    gameID,
		Payload:   payload,
	})
}

func (lg *liveGame) view() *model.GameView {
	v := lg.game.View()
	v.ID = lg.record.ID
	return v
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, cfg engine.Config) (*Created, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.GameView, error)
	ListGames(ctx context.Context) ([]model.GameSummary, error)
	Authorize(ctx context.Context, gameID model.GameID, token string) error
	StepOn(ctx context.Context, gameID model.GameID, pos model.Position) (*model.MoveResult, error)
	ToggleFlag(ctx context.Context, gameID model.GameID, pos model.Position) (*model.MoveResult, error)
	ResetGame(ctx context.Context, gameID model.GameID) (*model.GameView, error)
	AbandonGame(ctx context.Context, gameID model.GameID) error
	Subscribe(ctx context.Context, gameID model.GameID, fn func(model.Event)) (func(), error)
	OnEvent(fn func(model.Event)) func()
}

var _ ControllerInterface = (*Controller)(nil)
