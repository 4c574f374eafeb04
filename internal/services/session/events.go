package session

import (
	"sync"

	"github.com/mcoot/minefield/internal/model"
)

// eventBus fans controller events out to subscribers.
// Handlers run synchronously on the publishing goroutine and must not block.
type eventBus struct {
	mu     sync.RWMutex
	nextID int
	all    map[int]func(model.Event)
	byGame map[model.GameID]map[int]func(model.Event)
}

func newEventBus() *eventBus {
	return &eventBus{
		all:    make(map[int]func(model.Event)),
		byGame: make(map[model.GameID]map[int]func(model.Event)),
	}
}

func (b *eventBus) subscribeAll(fn func(model.Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.all[id] = fn

	return func() {
		b.mu.Lock()
		delete(b.all, id)
		b.mu.Unlock()
	}
}

func (b *eventBus) subscribe(gameID model.GameID, fn func(model.Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	if b.byGame[gameID] == nil {
		b.byGame[gameID] = make(map[int]func(model.Event))
	}
	b.byGame[gameID][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.byGame[gameID], id)
		if len(b.byGame[gameID]) == 0 {
			delete(b.byGame, gameID)
		}
	}
}

func (b *eventBus) publish(event model.Event) {
	b.mu.RLock()
	handlers := make([]func(model.Event), 0, len(b.all)+len(b.byGame[event.GameID]))
	for _, fn := range b.all {
		handlers = append(handlers, fn)
	}
	for _, fn := range b.byGame[event.GameID] {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(event)
	}
}
