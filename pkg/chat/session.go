// Package chat consumes the chat bridge's SSE stream and maintains a typed
// conversation transcript. Incoming text is paced through a typewriter queue
// so the reveal speed is independent of network burstiness.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/workwAIse/alex-web/pkg/chat/typewriter"
	"github.com/workwAIse/alex-web/pkg/domain"
)

// RetryMessage is shown in place of the assistant's reply when a turn fails
// for a reason the visitor can do nothing about except retry.
const RetryMessage = "Something went wrong. Please try again."

// ErrBusy is returned by Send while a previous turn is still in flight.
var ErrBusy = errors.New("a turn is already in progress")

// State tracks where a turn currently is in its lifecycle.
type State int

const (
	// StateIdle means no turn is in flight; Send may be called.
	StateIdle State = iota
	// StateSending means the HTTP request has been issued.
	StateSending
	// StateStreaming means the response body is being read.
	StateStreaming
	// StateDraining means the stream has finished and the typewriter queue
	// is flushing its remaining text.
	StateDraining
)

// Session is one browser-session-equivalent conversation: an ordered
// transcript, the upstream thread ID once known, and a playback queue pacing
// the assistant's text onto the transcript.
type Session struct {
	endpoint string
	client   *http.Client
	queue    *typewriter.Queue
	onReveal func(string)

	mu       sync.Mutex
	messages []domain.ChatMessage
	threadID string
	state    State
	// sealed marks the current assistant message as final (an error
	// replacement). A drain tick that dequeued its chunk before the abort
	// must not land after it.
	sealed bool
}

// NewSession creates a session that talks to the chat endpoint at the given
// URL. onReveal, if non-nil, observes each chunk of assistant text as the
// typewriter reveals it.
func NewSession(endpoint string, onReveal func(string)) *Session {
	s := &Session{
		endpoint: endpoint,
		client:   http.DefaultClient,
		onReveal: onReveal,
	}
	s.queue = typewriter.New(s.appendToAssistant)
	return s
}

// Close tears the session down, cancelling any active typewriter playback.
func (s *Session) Close() {
	s.queue.Stop()
}

// ThreadID returns the upstream thread identifier, or "" before the first
// turn completes its thread.id event.
func (s *Session) ThreadID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threadID
}

// State returns the current turn state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Send submits one user turn and blocks until the assistant's reply has
// fully played back (or failed). Failures that reach the visitor are
// recorded in the transcript, not returned; the returned error covers only
// local misuse (empty message, concurrent Send, cancelled context).
func (s *Session) Send(ctx context.Context, message string) error {
	if message == "" {
		return errors.New("message is empty")
	}

	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return ErrBusy
	}
	s.state = StateSending
	s.sealed = false
	s.messages = append(s.messages,
		domain.ChatMessage{Role: domain.RoleUser, Content: message},
		domain.ChatMessage{Role: domain.RoleAssistant},
	)
	threadID := s.threadID
	s.mu.Unlock()

	defer s.setState(StateIdle)
	s.queue.Abort() // fresh turn, nothing carries over

	resp, err := s.post(ctx, message, threadID)
	if err != nil {
		if ctx.Err() != nil {
			s.replaceAssistant(RetryMessage)
			return ctx.Err()
		}
		s.replaceAssistant(RetryMessage)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.replaceAssistant(httpErrorMessage(resp))
		return nil
	}

	s.setState(StateStreaming)
	if err := s.consume(resp.Body); err != nil {
		s.queue.Abort()
		s.replaceAssistant(RetryMessage)
		return nil
	}

	s.setState(StateDraining)
	if err := s.queue.Wait(ctx); err != nil {
		return err
	}
	return nil
}

func (s *Session) post(ctx context.Context, message, threadID string) (*http.Response, error) {
	body, err := json.Marshal(struct {
		Message  string `json:"message"`
		ThreadID string `json:"threadId,omitempty"`
	}{Message: message, ThreadID: threadID})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return s.client.Do(req)
}

// consume reads the SSE body incrementally, carrying partial records across
// read boundaries. Individual malformed records are skipped; only a
// transport-level read failure is an error.
func (s *Session) consume(body io.Reader) error {
	var carry string
	buf := make([]byte, 4096)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			carry += string(buf[:n])
			lines := strings.Split(carry, "\n")
			carry = lines[len(lines)-1]
			for _, line := range lines[:len(lines)-1] {
				if s.handleRecord(line) {
					return nil
				}
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read stream: %w", err)
		}
	}
}

// handleRecord processes one SSE line and reports whether the finished
// sentinel was seen.
func (s *Session) handleRecord(line string) bool {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "data: ") {
		return false
	}
	payload := strings.TrimPrefix(line, "data: ")
	if payload == domain.DoneSentinel {
		return true
	}

	var event domain.StreamEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		// Malformed or partially-delivered record; skip rather than abort.
		return false
	}

	switch event.Type {
	case domain.EventThreadID:
		if event.ThreadID != "" {
			s.mu.Lock()
			s.threadID = event.ThreadID
			s.mu.Unlock()
		}
	case domain.EventTextDelta:
		if event.Text != "" {
			s.queue.Enqueue(event.Text)
		}
	case domain.EventError:
		// The conversation already failed; bypass the pacing queue.
		s.queue.Abort()
		msg := strings.TrimSpace(event.Message)
		if msg == "" {
			msg = RetryMessage
		}
		s.replaceAssistant(msg)
	}
	return false
}

// appendToAssistant is the typewriter sink: revealed text lands on the last
// assistant message.
func (s *Session) appendToAssistant(chunk string) {
	s.mu.Lock()
	if s.sealed {
		s.mu.Unlock()
		return
	}
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role == domain.RoleAssistant {
			s.messages[i].Content += chunk
			break
		}
	}
	s.mu.Unlock()
	if s.onReveal != nil {
		s.onReveal(chunk)
	}
}

// replaceAssistant overwrites the last assistant message's content and seals
// it against late typewriter chunks.
func (s *Session) replaceAssistant(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sealed = true
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role == domain.RoleAssistant {
			s.messages[i].Content = content
			return
		}
	}
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// httpErrorMessage extracts the JSON error body of a failed chat request,
// falling back to the generic retry copy.
func httpErrorMessage(resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && strings.TrimSpace(body.Error) != "" {
		return body.Error
	}
	return RetryMessage
}
