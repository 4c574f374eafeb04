package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameCreated   EventType = "game_created"
	EventTilesChanged  EventType = "tiles_changed"
	EventGameUpdated   EventType = "game_updated"
	EventGameWon       EventType = "game_won"
	EventGameLost      EventType = "game_lost"
	EventGameReset     EventType = "game_reset"
	EventGameAbandoned EventType = "game_abandoned"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	GameID    GameID    `json:"game_id"`
	Payload   any       `json:"payload,omitempty"` // Type-specific data
}

// TilesChangedPayload contains the tiles touched by one cascade wave
type TilesChangedPayload struct {
	Wave  int        `json:"wave"`
	Tiles []TileView `json:"tiles"`
}

// GameUpdatedPayload contains the counters a client re-reads after any change
type GameUpdatedPayload struct {
	Status    GameStatus `json:"status"`
	FlagsLeft int        `json:"flags_left"`
	TilesLeft int        `json:"tiles_left"`
}
