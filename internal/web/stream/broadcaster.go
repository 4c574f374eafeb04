package stream

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mcoot/minefield/internal/model"
	"github.com/mcoot/minefield/internal/web/components"
)

// Broadcaster turns game events into stream messages
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "stream-broadcaster")),
	}
}

// Publish sends an event to everyone watching its game
func (b *Broadcaster) Publish(event model.Event) {
	hub := b.hubManager.GetHub(event.GameID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("stream failed to encode event",
			slog.String("game_id", string(event.GameID)),
			slog.String("event", string(event.Type)),
			slog.Any("error", err))
		return
	}

	html, err := b.render(event)
	if err != nil {
		b.logger.Error("stream failed to render event",
			slog.String("game_id", string(event.GameID)),
			slog.String("event", string(event.Type)),
			slog.Any("error", err))
		return
	}

	hub.Broadcast(Message{Name: string(event.Type), JSON: data, HTML: html})
}

func (b *Broadcaster) render(event model.Event) (string, error) {
	ctx := context.Background()
	switch payload := event.Payload.(type) {
	case model.TilesChangedPayload:
		return components.Render(ctx, components.Cells(event.GameID, payload.Tiles))
	case model.GameUpdatedPayload:
		return components.Render(ctx, components.StatusBar(&model.GameView{
			ID:        event.GameID,
			Status:    payload.Status,
			FlagsLeft: payload.FlagsLeft,
			TilesLeft: payload.TilesLeft,
		}, true))
	default:
		// Other events only trigger a refresh, the name is enough
		return string(event.Type), nil
	}
}
