package engine

import (
	"fmt"

	"github.com/mcoot/minefield/internal/model"
)

// host is the part of a game a tile is allowed to drive
type host interface {
	IsPlaying() bool
	FlagsLeft() int
	TakeFlag() error
	GiveFlag() error
	ClearTile(t *Tile)
	Lose(t *Tile)
	schedule(task func())
}

// detached is the host of a tile whose game has been reset.
// It never plays, so StepOn and PutFlag on such a tile do nothing.
type detached struct{}

func (detached) IsPlaying() bool { return false }
func (detached) FlagsLeft() int { return 0 }
func (detached) TakeFlag() error { return model.ErrOutOfFlags }
func (detached) GiveFlag() error { return model.ErrFlagPoolFull }
func (detached) ClearTile(*Tile) {}
func (detached) Lose(*Tile) {}
func (detached) schedule(func())    {}

// Tile is a single cell of the board.
// A tile is never both clicked and flagged.
type Tile struct {
	x, y    int
	hasMine bool
	clicked bool
	flagged bool
	state   model.TileState

	game         host
	siblings     []*Tile
	mineSiblings []*Tile

	changes Listeners[model.TileState]
}

func newTile(game host, x, y int, hasMine bool) *Tile {
	return &Tile{
		x:       x,
		y:       y,
		hasMine: hasMine,
		game:    game,
	}
}

func (t *Tile) X() int { return t.x }

func (t *Tile) Y() int { return t.y }

func (t *Tile) Position() model.Position {
	return model.Position{X: t.x, Y: t.y}
}

func (t *Tile) HasMine() bool { return t.hasMine }

func (t *Tile) Clicked() bool { return t.clicked }

func (t *Tile) HasFlag() bool { return t.flagged }

func (t *Tile) State() model.TileState { return t.state }

// Siblings returns the in-bounds neighbours of the tile, at most eight
func (t *Tile) Siblings() []*Tile {
	return t.siblings
}

// MineSiblings returns the neighbours carrying a mine
func (t *Tile) MineSiblings() []*Tile {
	return t.mineSiblings
}

func (t *Tile) HowManyMinesAround() int {
	return len(t.mineSiblings)
}

// OnStateChange registers fn to be called with every new state of the tile
func (t *Tile) OnStateChange(fn func(model.TileState)) (unsubscribe func()) {
	return t.changes.Subscribe(fn)
}

// StepOn clicks the tile.
// Stepping on a tile with no mines around queues a step on each neighbour
// rather than recursing; the game runs those in later waves.
func (t *Tile) StepOn() {
	if !t.game.IsPlaying() || t.clicked || t.flagged {
		return
	}

	t.clicked = true
	t.game.ClearTile(t)

	if t.hasMine {
		t.game.Lose(t)
		t.changeState(model.TileStateBoom)
		return
	}

	if t.HowManyMinesAround() > 0 {
		t.changeState(model.TileStateMinesAround)
		return
	}

	if siblings := t.siblings; len(siblings) > 0 {
		t.game.schedule(func() {
			for _, s := range siblings {
				s.StepOn()
			}
		})
	}
	t.changeState(model.TileStateNoMinesAround)
}

// PutFlag toggles the flag on an unclicked tile
func (t *Tile) PutFlag() {
	if !t.game.IsPlaying() || t.clicked {
		return
	}

	if t.flagged {
		if err := t.game.GiveFlag(); err != nil {
			panic(fmt.Errorf("unflagging tile %s: %w", t.Position(), err))
		}
		t.flagged = false
		t.changeState(model.TileStateFlagOff)
		return
	}

	if t.game.FlagsLeft() > 0 {
		if err := t.game.TakeFlag(); err != nil {
			panic(fmt.Errorf("flagging tile %s: %w", t.Position(), err))
		}
		t.flagged = true
		t.changeState(model.TileStateFlagOn)
	}
}

// Reveal shows the tile whatever its current state
func (t *Tile) Reveal() {
	t.changeState(model.TileStateReveal)
}

// View builds the client-facing snapshot of the tile.
// The mine is only disclosed once the tile is BOOM or REVEAL.
func (t *Tile) View() model.TileView {
	v := model.TileView{
		X:       t.x,
		Y:       t.y,
		State:   t.state,
		HasFlag: t.flagged,
	}
	switch t.state {
	case model.TileStateMinesAround:
		v.MinesAround = t.HowManyMinesAround()
	case model.TileStateBoom, model.TileStateReveal:
		v.HasMine = t.hasMine
		v.MinesAround = t.HowManyMinesAround()
	}
	return v
}

func (t *Tile) initialize() {
	t.clicked = false
	t.flagged = false
	t.changeState(model.TileStateUnclicked)
}

func (t *Tile) setSiblings(siblings, mineSiblings []*Tile) {
	t.siblings = siblings
	t.mineSiblings = mineSiblings
}

func (t *Tile) changeState(state model.TileState) {
	t.state = state
	t.changes.Emit(state)
}
