package session

import (
	"github.com/mcoot/minefield/internal/engine"
	"github.com/mcoot/minefield/internal/model"
)

// changeTracker records which tiles changed state during one intent
type changeTracker struct {
	unsubscribe []func()
	wave        []*engine.Tile
	inWave      map[*engine.Tile]bool
	all         []*engine.Tile
	seen        map[*engine.Tile]bool
}

func newChangeTracker(game *engine.Game) *changeTracker {
	t := &changeTracker{
		inWave: make(map[*engine.Tile]bool),
		seen:   make(map[*engine.Tile]bool),
	}
	for _, tile := range game.Tiles() {
		t.unsubscribe = append(t.unsubscribe, tile.OnStateChange(func(model.TileState) {
			t.record(tile)
		}))
	}
	return t
}

func (t *changeTracker) record(tile *engine.Tile) {
	if !t.inWave[tile] {
		t.inWave[tile] = true
		t.wave = append(t.wave, tile)
	}
	if !t.seen[tile] {
		t.seen[tile] = true
		t.all = append(t.all, tile)
	}
}

// flush returns the tiles changed since the last flush
func (t *changeTracker) flush() []model.TileView {
	views := viewsOf(t.wave)
	t.wave = nil
	clear(t.inWave)
	return views
}

// changed returns every tile changed during the intent, in first-change order
func (t *changeTracker) changed() []model.TileView {
	if len(t.all) == 0 {
		return []model.TileView{}
	}
	return viewsOf(t.all)
}

func (t *changeTracker) close() {
	for _, unsubscribe := range t.unsubscribe {
		unsubscribe()
	}
}

func viewsOf(tiles []*engine.Tile) []model.TileView {
	if len(tiles) == 0 {
		return nil
	}
	views := make([]model.TileView, len(tiles))
	for i, tile := range tiles {
		views[i] = tile.View()
	}
	return views
}
