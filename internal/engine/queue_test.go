package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueRunsWavesInOrder(t *testing.T) {
	q := NewQueue()
	var order []string
	q.Schedule(func() {
		order = append(order, "a")
		q.Schedule(func() { order = append(order, "c") })
	})
	q.Schedule(func() { order = append(order, "b") })

	assert.Equal(t, 2, q.RunWave())
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, q.Len())

	assert.Equal(t, 1, q.Drain())
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, q.Drain())
}

func TestQueueClearDropsTasks(t *testing.T) {
	q := NewQueue()
	ran := false
	q.Schedule(func() { ran = true })

	q.Clear()

	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 0, q.Drain())
	assert.False(t, ran)
}
