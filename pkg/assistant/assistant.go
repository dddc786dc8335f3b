// Package assistant defines the capability interface for the hosted
// assistant service the chat bridge relays to. The upstream holds all
// durable conversation state: threads are append-only histories keyed by an
// opaque ID, and a run replays a thread through the assistant, emitting
// incremental text.
package assistant

import "context"

// Provider represents a hosted assistant service (e.g. the OpenAI
// Assistants API).
type Provider interface {
	// Name returns the provider's identifier (e.g. "openai").
	Name() string

	// CreateThread creates a new conversation thread upstream and returns
	// its opaque identifier.
	CreateThread(ctx context.Context) (string, error)

	// AddMessage appends a user message to the given thread.
	AddMessage(ctx context.Context, threadID, text string) error

	// StreamRun starts a streaming run of the assistant against the thread's
	// current history. The returned stream yields incremental text in
	// emission order.
	StreamRun(ctx context.Context, threadID string) (RunStream, error)
}

// RunStream is the incremental output of one assistant run. Consume it with
// a Next/Current loop:
//
//	for stream.Next() {
//		text := stream.Current()
//		...
//	}
//	if err := stream.Err(); err != nil { ... }
//
// Next returns false when the run completes or fails; Err distinguishes the
// two. Close releases upstream resources and is safe to call at any point.
type RunStream interface {
	Next() bool
	Current() string
	Err() error
	Close() error
}
