package redis

import (
	"fmt"

	"github.com/mcoot/minefield/internal/model"
)

// Key prefix for all minefield data
const keyPrefix = "minefield"

// gameKey returns the Redis key for a GameRecord
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the Redis key for the SET of all game IDs
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}
