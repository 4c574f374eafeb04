package mocks

import (
	"sync"

	"github.com/mcoot/minefield/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing.
// It is safe to share between a test and the server goroutines it drives.
type MockRandom struct {
	mu sync.Mutex

	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// IntnArgs records every n passed to Intn
	IntnArgs []int

	// StringResults is a queue of ids and tokens to return from String
	StringResults []string
	stringIndex   int
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or n-1 once the queue is drained.
// With nothing queued, a Fisher-Yates shuffle is the identity permutation,
// so mines land on the first tiles in column order.
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.IntnArgs = append(r.IntnArgs, n)
	if r.intnIndex < len(r.IntnResults) {
		result := r.IntnResults[r.intnIndex]
		r.intnIndex++
		return result
	}
	if n <= 0 {
		return 0
	}
	return n - 1
}

// String returns the next queued result, or "" when none remain
func (r *MockRandom) String(_ int, _ string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stringIndex >= len(r.StringResults) {
		return ""
	}
	result := r.StringResults[r.stringIndex]
	r.stringIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.StringResults = append(r.StringResults, values...)
}

// Reset clears all queued results and recorded calls
func (r *MockRandom) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.IntnResults, r.intnIndex = nil, 0
	r.IntnArgs = nil
	r.StringResults, r.stringIndex = nil, 0
}
