package storage

import (
	"context"
	"slices"
	"strings"

	"github.com/mcoot/minefield/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// SaveGame inserts or replaces a game record
	SaveGame(ctx context.Context, game *model.GameRecord) error
	// GetGame returns model.ErrGameNotFound when no record exists
	GetGame(ctx context.Context, id model.GameID) (*model.GameRecord, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	// ListGames returns every stored game, oldest first
	ListGames(ctx context.Context) ([]*model.GameRecord, error)
}

// SortGames orders records by creation time, then by ID
func SortGames(games []*model.GameRecord) {
	slices.SortFunc(games, func(a, b *model.GameRecord) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(string(a.ID), string(b.ID))
	})
}
