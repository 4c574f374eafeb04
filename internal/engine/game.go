package engine

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/mcoot/minefield/internal/dependencies/random"
	"github.com/mcoot/minefield/internal/model"
)

// Option customises how a game is built
type Option func(*options)

type options struct {
	random random.Random
	layout []model.Position
}

// WithRandom sets the randomness source used to place mines on each reset
func WithRandom(r random.Random) Option {
	return func(o *options) {
		o.random = r
	}
}

// WithLayout fixes where the mines go. Every reset uses the same layout.
func WithLayout(layout []model.Position) Option {
	return func(o *options) {
		o.layout = slices.Clone(layout)
	}
}

// Game owns the board, the flag pool and the win/lose state.
// It is not safe for concurrent use.
type Game struct {
	width  int
	height int
	mines  int
	place  func() []model.Position

	board      [][]*Tile
	tiles      []*Tile
	mineTiles  []*Tile
	unresolved mapset.Set[*Tile]
	tripped    *Tile

	flags   int
	playing bool
	lost    bool

	queue   *Queue
	updates Listeners[struct{}]
}

var _ host = (*Game)(nil)

// New builds a game from cfg and starts it
func New(cfg Config, opts ...Option) (*Game, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	g := &Game{
		width:  cfg.Width,
		height: cfg.Height,
		mines:  cfg.Mines,
		queue:  NewQueue(),
	}

	if o.layout != nil {
		if err := ValidateLayout(cfg, o.layout); err != nil {
			return nil, err
		}
		layout := o.layout
		g.place = func() []model.Position { return layout }
	} else {
		rnd := o.random
		if rnd == nil {
			rnd = random.New()
		}
		g.place = func() []model.Position { return RandomLayout(cfg, rnd) }
	}

	g.Reset()
	return g, nil
}

// Reset places the mines again, rebuilds every tile and restarts play.
// A game built WithLayout gets the same mines back; otherwise the layout is drawn afresh.
// Tiles from before the reset are detached: their intents are no-ops and
// tile listeners must subscribe again on the new tiles.
func (g *Game) Reset() {
	g.queue.Clear()
	for _, t := range g.tiles {
		t.game = detached{}
	}

	mined := mapset.New[model.Position]()
	for _, pos := range g.place() {
		mined.Put(pos)
	}

	g.board = make([][]*Tile, g.width)
	g.tiles = make([]*Tile, 0, g.width*g.height)
	g.mineTiles = make([]*Tile, 0, g.mines)
	g.unresolved = mapset.New[*Tile]()
	g.tripped = nil
	g.flags = g.mines

	for x := 0; x < g.width; x++ {
		g.board[x] = make([]*Tile, g.height)
		for y := 0; y < g.height; y++ {
			t := newTile(g, x, y, mined.Has(model.Position{X: x, Y: y}))
			g.board[x][y] = t
			g.tiles = append(g.tiles, t)
			g.unresolved.Put(t)
			if t.hasMine {
				g.mineTiles = append(g.mineTiles, t)
			}
		}
	}

	for _, t := range g.tiles {
		g.linkSiblings(t)
		t.initialize()
	}

	g.lost = false
	g.playing = true
	g.notify()
}

func (g *Game) linkSiblings(t *Tile) {
	siblings := make([]*Tile, 0, 8)
	mineSiblings := make([]*Tile, 0, 8)
	for x := t.x - 1; x <= t.x+1; x++ {
		for y := t.y - 1; y <= t.y+1; y++ {
			if (x == t.x && y == t.y) || !g.inBounds(x, y) {
				continue
			}
			s := g.board[x][y]
			siblings = append(siblings, s)
			if s.hasMine {
				mineSiblings = append(mineSiblings, s)
			}
		}
	}
	t.setSiblings(siblings, mineSiblings)
}

func (g *Game) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Game) Width() int { return g.width }

func (g *Game) Height() int { return g.height }

func (g *Game) Mines() int { return g.mines }

func (g *Game) FlagsLeft() int { return g.flags }

func (g *Game) IsPlaying() bool { return g.playing }

func (g *Game) YouLose() bool { return g.lost }

// TilesLeft is the number of tiles not yet clicked
func (g *Game) TilesLeft() int {
	return g.unresolved.Size()
}

// Board returns the grid indexed [x][y]. Callers must not modify it.
func (g *Game) Board() [][]*Tile {
	return g.board
}

// Tiles returns every tile in x-major order
func (g *Game) Tiles() []*Tile {
	return slices.Clone(g.tiles)
}

func (g *Game) MineTiles() []*Tile {
	return slices.Clone(g.mineTiles)
}

// MinePositions returns the current mine layout in x-major order
func (g *Game) MinePositions() []model.Position {
	positions := make([]model.Position, len(g.mineTiles))
	for i, t := range g.mineTiles {
		positions[i] = t.Position()
	}
	return positions
}

// Tile returns the tile at pos, or nil when pos is off the board
func (g *Game) Tile(pos model.Position) *Tile {
	if !g.inBounds(pos.X, pos.Y) {
		return nil
	}
	return g.board[pos.X][pos.Y]
}

// Tripped returns the mine that lost the game, if any
func (g *Game) Tripped() *Tile {
	return g.tripped
}

// TakeFlag removes a flag from the pool
func (g *Game) TakeFlag() error {
	if g.flags == 0 {
		return model.ErrOutOfFlags
	}
	g.flags--
	g.notify()
	return nil
}

// GiveFlag returns a flag to the pool
func (g *Game) GiveFlag() error {
	if g.flags >= g.mines {
		return model.ErrFlagPoolFull
	}
	g.flags++
	g.notify()
	return nil
}

// ClearTile marks t as resolved. Clearing a tile twice changes nothing.
func (g *Game) ClearTile(t *Tile) {
	if !g.unresolved.Has(t) {
		return
	}
	g.unresolved.Remove(t)
	g.notify()
}

// Lose reveals the whole board and ends the game
func (g *Game) Lose(t *Tile) {
	for _, tile := range g.tiles {
		tile.Reveal()
	}
	g.tripped = t
	g.lost = true
	g.playing = false
	g.notify()
}

// Won reports whether only mines are left unclicked and every flag is placed
func (g *Game) Won() bool {
	return g.TilesLeft() == g.mines && g.flags == 0
}

// YouWin is Won, but also stops play when it returns true
func (g *Game) YouWin() bool {
	if !g.Won() {
		return false
	}
	g.playing = false
	return true
}

// Status summarises the game without changing it
func (g *Game) Status() model.GameStatus {
	switch {
	case g.lost:
		return model.GameStatusLost
	case g.Won():
		return model.GameStatusWon
	default:
		return model.GameStatusPlaying
	}
}

// OnUpdate registers fn to be called whenever flags, tiles left or play state change
func (g *Game) OnUpdate(fn func()) (unsubscribe func()) {
	return g.updates.Subscribe(func(struct{}) { fn() })
}

// Pending returns the number of queued cascade steps
func (g *Game) Pending() int {
	return g.queue.Len()
}

// RunWave runs one breadth-first wave of the cascade
func (g *Game) RunWave() int {
	return g.queue.RunWave()
}

// Settle runs the cascade to completion and returns the number of waves
func (g *Game) Settle() int {
	return g.queue.Drain()
}

// View builds a snapshot of the board
func (g *Game) View() *model.GameView {
	tiles := make([][]model.TileView, g.width)
	for x, column := range g.board {
		tiles[x] = make([]model.TileView, g.height)
		for y, t := range column {
			tiles[x][y] = t.View()
		}
	}
	return &model.GameView{
		Width:     g.width,
		Height:    g.height,
		Mines:     g.mines,
		FlagsLeft: g.flags,
		TilesLeft: g.TilesLeft(),
		Status:    g.Status(),
		Tiles:     tiles,
	}
}

func (g *Game) schedule(task func()) {
	g.queue.Schedule(task)
}

func (g *Game) notify() {
	g.updates.Emit(struct{}{})
}
