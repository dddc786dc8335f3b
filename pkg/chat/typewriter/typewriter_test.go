package typewriter

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// collector is a sink that records everything it receives.
type collector struct {
	mu sync.Mutex
	b  strings.Builder
}

func (c *collector) sink(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.b.WriteString(s)
}

func (c *collector) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.b.String()
}

func newTestQueue(t *testing.T) (*Queue, *collector) {
	t.Helper()
	c := &collector{}
	q := New(c.sink)
	q.SetInterval(time.Millisecond)
	t.Cleanup(q.Stop)
	return q, c
}

func TestDrainCompleteness(t *testing.T) {
	q, c := newTestQueue(t)

	q.Enqueue("Hello")
	q.Enqueue(" ")
	q.Enqueue("world")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := q.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got := c.String(); got != "Hello world" {
		t.Errorf("drained content = %q, want %q", got, "Hello world")
	}
}

func TestDrainPreservesOrderUnderConcurrentEnqueue(t *testing.T) {
	q, c := newTestQueue(t)

	var want strings.Builder
	for i := 0; i < 50; i++ {
		chunk := strings.Repeat(string(rune('a'+i%26)), 3)
		want.WriteString(chunk)
		q.Enqueue(chunk)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := q.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got := c.String(); got != want.String() {
		t.Errorf("drained content = %q, want %q", got, want.String())
	}
}

func TestDrainMultibyteRunes(t *testing.T) {
	q, c := newTestQueue(t)

	const text = "grüße aus köln 👋 日本語も"
	q.Enqueue(text)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := q.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got := c.String(); got != text {
		t.Errorf("drained content = %q, want %q", got, text)
	}
}

func TestAbortDiscardsPending(t *testing.T) {
	q, c := newTestQueue(t)
	q.SetInterval(50 * time.Millisecond) // keep text queued long enough to abort

	q.Enqueue(strings.Repeat("x", 200))
	q.Abort()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := q.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got := c.String(); len(got) >= 200 {
		t.Errorf("abort revealed all %d chars, expected pending text discarded", len(got))
	}

	// Queue stays usable after Abort.
	q.SetInterval(time.Millisecond)
	q.Enqueue("next")
	if err := q.Wait(ctx); err != nil {
		t.Fatalf("Wait after Abort: %v", err)
	}
	if got := c.String(); !strings.HasSuffix(got, "next") {
		t.Errorf("content after re-enqueue = %q, want suffix %q", got, "next")
	}
}

func TestStopIsTerminal(t *testing.T) {
	q, c := newTestQueue(t)
	q.Stop()
	q.Stop() // idempotent

	q.Enqueue("ignored")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := q.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got := c.String(); got != "" {
		t.Errorf("content after Stop = %q, want empty", got)
	}
}

func TestWaitHonorsContext(t *testing.T) {
	q, _ := newTestQueue(t)
	q.SetInterval(time.Hour) // never drains within the test
	q.Enqueue("stuck")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := q.Wait(ctx); err == nil {
		t.Error("Wait returned nil, want context error")
	}
}
