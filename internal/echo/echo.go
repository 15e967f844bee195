// Package echo implements the MIDI echo: a virtual input whose messages
// pass straight through to one output and replay on a second output after
// a fixed delay.
package echo

import (
	"sync"
	"time"
)

// DefaultDelay is the standard echo delay.
const DefaultDelay = 300 * time.Millisecond

// Config holds the echo parameters.
type Config struct {
	Delay time.Duration
}

// DefaultConfig returns the standard echo settings.
func DefaultConfig() Config {
	return Config{Delay: DefaultDelay}
}

// delayed is one queued message with its release time.
type delayed struct {
	data   []byte
	sendAt time.Time
}

// Queue holds messages until their delay has elapsed. The delay is fixed,
// so release times are monotonic and messages come out in arrival order.
type Queue struct {
	mu      sync.Mutex
	delay   time.Duration
	pending []delayed
}

// NewQueue creates a queue with the given delay.
func NewQueue(delay time.Duration) *Queue {
	return &Queue{delay: delay}
}

// Push schedules a message for replay delay after now.
func (q *Queue) Push(data []byte, now time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, delayed{
		data:   append([]byte(nil), data...),
		sendAt: now.Add(q.delay),
	})
}

// Due removes and returns the messages whose time has come, oldest first.
func (q *Queue) Due(now time.Time) [][]byte {
	q.mu.Lock()
	defer q.mu.Unlock()

	var out [][]byte
	for len(q.pending) > 0 && !q.pending[0].sendAt.After(now) {
		out = append(out, q.pending[0].data)
		q.pending = q.pending[1:]
	}
	return out
}

// Len reports how many messages are still waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
