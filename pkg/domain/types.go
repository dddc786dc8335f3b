package domain

import "time"

// ChatMessage is a single turn in a conversation transcript. Messages are
// append-only; an assistant message starts empty and grows while its
// response streams in.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Stream event types carried over the chat SSE wire.
const (
	EventThreadID  = "thread.id"
	EventTextDelta = "text.delta"
	EventError     = "error"
)

// DoneSentinel is the literal payload of the final SSE record of every chat
// response, emitted regardless of success or failure.
const DoneSentinel = "[DONE]"

// StreamEvent is one record of the chat SSE wire format. Exactly one of the
// payload fields is set, selected by Type.
type StreamEvent struct {
	Type     string `json:"type"`
	ThreadID string `json:"threadId,omitempty"`
	Text     string `json:"text,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Project is a portfolio showcase entry served by the content API.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	Tech        string    `json:"tech"`
	Details     []string  `json:"details"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Gem is a short personal-interest entry served by the content API.
type Gem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	IconColor   string    `json:"icon_color"`
	Link        string    `json:"link,omitempty"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
