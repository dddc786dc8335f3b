// Package typewriter paces streamed text onto a display sink, decoupling
// bursty network arrival from a steady, human-looking reveal.
package typewriter

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	defaultInterval = 30 * time.Millisecond
	waitPoll        = 10 * time.Millisecond
)

// Queue buffers incoming text and drains it to the sink a few characters at
// a time. Characters leave in FIFO order and none are dropped or reordered;
// once drained, the sink has received exactly the concatenation of all
// enqueued text. Only Abort discards content.
type Queue struct {
	sink     func(string)
	interval time.Duration

	mu       sync.Mutex
	pending  []rune
	draining bool
	stopped  bool
	stop     chan struct{}
}

// New creates a Queue that reveals text through sink. The sink is called
// from the drain goroutine, never concurrently with itself.
func New(sink func(string)) *Queue {
	return &Queue{
		sink:     sink,
		interval: defaultInterval,
		stop:     make(chan struct{}),
	}
}

// SetInterval overrides the delay between reveal ticks. The default suits a
// chat UI; tests and non-interactive consumers can shorten it.
func (q *Queue) SetInterval(d time.Duration) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if d > 0 {
		q.interval = d
	}
}

// Enqueue appends text to the pending buffer and starts a drain loop if none
// is running. Calling Enqueue while a loop is active just extends the buffer
// the loop is already draining.
func (q *Queue) Enqueue(text string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		return
	}
	q.pending = append(q.pending, []rune(text)...)
	if !q.draining && len(q.pending) > 0 {
		q.draining = true
		go q.drain()
	}
}

func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if q.stopped || len(q.pending) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		// 2-4 chars per tick, mildly randomized so the cadence does not read
		// as mechanical.
		n := 2
		if rand.IntN(10) < 3 {
			n = 4
		}
		if n > len(q.pending) {
			n = len(q.pending)
		}
		chunk := string(q.pending[:n])
		q.pending = q.pending[n:]
		interval := q.interval
		q.mu.Unlock()

		q.sink(chunk)

		select {
		case <-q.stop:
			q.mu.Lock()
			q.draining = false
			q.mu.Unlock()
			return
		case <-time.After(interval):
		}
	}
}

// Abort discards any buffered, not-yet-revealed text. The queue stays usable
// for the next response.
func (q *Queue) Abort() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = nil
}

// Wait blocks until the buffer is empty and no drain loop is active, or the
// context is cancelled.
func (q *Queue) Wait(ctx context.Context) error {
	ticker := time.NewTicker(waitPoll)
	defer ticker.Stop()
	for {
		q.mu.Lock()
		idle := len(q.pending) == 0 && !q.draining
		q.mu.Unlock()
		if idle {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Stop deterministically cancels the queue: the drain loop exits, buffered
// text is discarded, and further Enqueue calls are no-ops. Used on teardown.
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		return
	}
	q.stopped = true
	q.pending = nil
	close(q.stop)
}
