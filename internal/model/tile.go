package model

import "fmt"

// Position identifies a tile on the board
type Position struct {
	X int `json:"x"` // 0-indexed column
	Y int `json:"y"` // 0-indexed row
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// TileState is the display state of a single tile
type TileState string

const (
	TileStateUnclicked     TileState = "UNCLICKED"
	TileStateNoMinesAround TileState = "NOMINESAROUND"
	TileStateMinesAround   TileState = "MINESAROUND"
	TileStateFlagOn        TileState = "FLAGON"
	TileStateFlagOff       TileState = "FLAGOFF"
	TileStateBoom          TileState = "BOOM"
	TileStateReveal        TileState = "REVEAL"
)

// TileStates returns every known tile state
func TileStates() []TileState {
	return []TileState{
		TileStateUnclicked,
		TileStateNoMinesAround,
		TileStateMinesAround,
		TileStateFlagOn,
		TileStateFlagOff,
		TileStateBoom,
		TileStateReveal,
	}
}

// Valid reports whether s is one of the known tile states
func (s TileState) Valid() bool {
	switch s {
	case TileStateUnclicked, TileStateNoMinesAround, TileStateMinesAround,
		TileStateFlagOn, TileStateFlagOff, TileStateBoom, TileStateReveal:
		return true
	default:
		return false
	}
}

// TileView is what a client is allowed to see of a tile
type TileView struct {
	X           int       `json:"x"`
	Y           int       `json:"y"`
	State       TileState `json:"state"`
	MinesAround int       `json:"mines_around"`
	HasFlag     bool      `json:"has_flag"`
	HasMine     bool      `json:"has_mine"` // Only set once the tile is BOOM or REVEAL
}

func (v TileView) Position() Position {
	return Position{X: v.X, Y: v.Y}
}
