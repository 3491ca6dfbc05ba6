package mocks

import (
	"fmt"

	"github.com/mcoot/scoreboard/internal/dependencies/random"
)

// MockRandom returns queued strings in order
type MockRandom struct {
	queue []string
	next  int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// String returns the next queued result. It panics when the queue is drained,
// so a test that forgets to queue a value fails at the call instead of hanging.
func (r *MockRandom) String(length int, alphabet string) string {
	if r.next >= len(r.queue) {
		panic(fmt.Sprintf("mocks: MockRandom.String(%d) called with no queued value (%d consumed)", length, r.next))
	}
	result := r.queue[r.next]
	r.next++
	return result
}

// QueueString adds values to the result queue
func (r *MockRandom) QueueString(values ...string) {
	r.queue = append(r.queue, values...)
}
