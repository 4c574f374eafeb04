package model

import (
	"slices"
	"time"
)

// GameID uniquely identifies a hosted game
type GameID string

// GameStatus is the overall outcome of a game
type GameStatus string

const (
	GameStatusPlaying GameStatus = "playing"
	GameStatusWon     GameStatus = "won"
	GameStatusLost    GameStatus = "lost"
)

// IsOver returns true once the game has been won or lost
func (s GameStatus) IsOver() bool {
	return s == GameStatusWon || s == GameStatusLost
}

// MoveKind is a user intent against a tile
type MoveKind string

const (
	MoveStep MoveKind = "step"
	MoveFlag MoveKind = "flag"
)

// Move is a single recorded intent
type Move struct {
	Kind     MoveKind  `json:"kind"`
	Position Position  `json:"position"`
	At       time.Time `json:"at"`
}

// GameRecord is the persisted form of a hosted game.
// The live board is rebuilt by laying out MineLayout and replaying Moves.
type GameRecord struct {
	ID         GameID     `json:"id"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Mines      int        `json:"mines"`
	MineLayout []Position `json:"mine_layout"`
	Moves      []Move     `json:"moves"`
	TokenHash  string     `json:"token_hash"` // bcrypt hash of the owner token
	Status     GameStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Clone returns a deep copy of the record
func (r *GameRecord) Clone() *GameRecord {
	c := *r
	c.MineLayout = slices.Clone(r.MineLayout)
	c.Moves = slices.Clone(r.Moves)
	return &c
}

// GameView is a read-only snapshot of a game as exposed to clients
type GameView struct {
	ID        GameID       `json:"id"`
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	Mines     int          `json:"mines"`
	FlagsLeft int          `json:"flags_left"`
	TilesLeft int          `json:"tiles_left"`
	Status    GameStatus   `json:"status"`
	Tiles     [][]TileView `json:"tiles"` // Tiles[x][y]
}

// Tile returns the view of the tile at pos, or nil if out of range
func (v *GameView) Tile(pos Position) *TileView {
	if pos.X < 0 || pos.X >= len(v.Tiles) || pos.Y < 0 || pos.Y >= len(v.Tiles[pos.X]) {
		return nil
	}
	return &v.Tiles[pos.X][pos.Y]
}

// MoveResult describes the effect of a single intent
type MoveResult struct {
	Changed []TileView `json:"changed"`
	Waves   int        `json:"waves"`
	View    *GameView  `json:"game"`
}

// GameSummary is the listing entry for a hosted game
type GameSummary struct {
	ID        GameID     `json:"id"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Mines     int        `json:"mines"`
	Status    GameStatus `json:"status"`
	Moves     int        `json:"moves"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Summary returns the listing entry for the record
func (r *GameRecord) Summary() GameSummary {
	return GameSummary{
		ID:        r.ID,
		Width:     r.Width,
		Height:    r.Height,
		Mines:     r.Mines,
		Status:    r.Status,
		Moves:     len(r.Moves),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
