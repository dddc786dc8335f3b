// Package openaiassistant implements assistant.Provider using the OpenAI
// Assistants (threads/runs) API.
package openaiassistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/packages/ssestream"

	"github.com/workwAIse/alex-web/pkg/assistant"
)

// Provider relays conversations to a single pre-configured OpenAI assistant.
type Provider struct {
	client      openai.Client
	assistantID string
}

// Verify interface compliance.
var _ assistant.Provider = (*Provider)(nil)

// New creates a Provider for the given API key and assistant ID.
func New(apiKey, assistantID string) *Provider {
	return &Provider{
		client:      openai.NewClient(option.WithAPIKey(apiKey)),
		assistantID: assistantID,
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() string { return "openai" }

// CreateThread creates an empty conversation thread.
func (p *Provider) CreateThread(ctx context.Context) (string, error) {
	thread, err := p.client.Beta.Threads.New(ctx, openai.BetaThreadNewParams{})
	if err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}
	return thread.ID, nil
}

// AddMessage appends a user message to the thread.
func (p *Provider) AddMessage(ctx context.Context, threadID, text string) error {
	_, err := p.client.Beta.Threads.Messages.New(ctx, threadID, openai.BetaThreadMessageNewParams{
		Role: openai.BetaThreadMessageNewParamsRoleUser,
		Content: openai.BetaThreadMessageNewParamsContentUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		return fmt.Errorf("add message to thread %s: %w", threadID, err)
	}
	return nil
}

// StreamRun starts a streaming run on the thread.
func (p *Provider) StreamRun(ctx context.Context, threadID string) (assistant.RunStream, error) {
	stream := p.client.Beta.Threads.Runs.NewStreaming(ctx, threadID, openai.BetaThreadRunNewParams{
		AssistantID: p.assistantID,
	})
	return &runStream{stream: stream}, nil
}

// runStream adapts the SDK's event stream to assistant.RunStream, reducing
// the assistant event soup to a sequence of text deltas. Run lifecycle
// failures become stream errors.
type runStream struct {
	stream  *ssestream.Stream[openai.AssistantStreamEventUnion]
	current string
	err     error
}

var _ assistant.RunStream = (*runStream)(nil)

func (s *runStream) Next() bool {
	if s.err != nil {
		return false
	}
	for s.stream.Next() {
		event := s.stream.Current()
		switch event.Event {
		case "thread.message.delta":
			if text := deltaText(event); text != "" {
				s.current = text
				return true
			}
		case "thread.run.failed", "thread.run.cancelled", "thread.run.expired":
			s.err = runError(event)
			return false
		}
	}
	s.err = s.stream.Err()
	return false
}

func (s *runStream) Current() string { return s.current }

func (s *runStream) Err() error { return s.err }

func (s *runStream) Close() error { return s.stream.Close() }

// deltaText concatenates the text parts of a message delta event.
func deltaText(event openai.AssistantStreamEventUnion) string {
	variant, ok := event.AsAny().(openai.AssistantStreamEventThreadMessageDelta)
	if !ok {
		return ""
	}
	delta := variant.Data
	var b strings.Builder
	for _, part := range delta.Delta.Content {
		if part.Type == "text" {
			b.WriteString(part.Text.Value)
		}
	}
	return b.String()
}

// runError extracts the upstream failure reason from a terminal run event.
func runError(event openai.AssistantStreamEventUnion) error {
	var run openai.Run
	switch v := event.AsAny().(type) {
	case openai.AssistantStreamEventThreadRunFailed:
		run = v.Data
	case openai.AssistantStreamEventThreadRunCancelled:
		run = v.Data
	case openai.AssistantStreamEventThreadRunExpired:
		run = v.Data
	}
	if run.LastError.Message != "" {
		return fmt.Errorf("assistant run %s: %s", run.Status, run.LastError.Message)
	}
	return fmt.Errorf("assistant run ended: %s", event.Event)
}
