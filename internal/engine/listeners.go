package engine

// Listeners is an ordered list of callbacks.
// Emit invokes them synchronously in registration order.
type Listeners[T any] struct {
	nextID  int
	entries []listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it again
func (l *Listeners[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, listener[T]{id: id, fn: fn})

	return func() {
		// Build a fresh slice so an Emit in progress keeps iterating its own snapshot
		kept := make([]listener[T], 0, len(l.entries))
		for _, e := range l.entries {
			if e.id != id {
				kept = append(kept, e)
			}
		}
		l.entries = kept
	}
}

// Emit calls every listener with v
func (l *Listeners[T]) Emit(v T) {
	entries := l.entries
	for _, e := range entries {
		e.fn(v)
	}
}

// Len returns the number of registered listeners
func (l *Listeners[T]) Len() int {
	return len(l.entries)
}
