package domain

// Role defines the sender of a chat message.
type Role string

const (
	// RoleUser indicates a message typed by the visitor.
	RoleUser Role = "user"
	// RoleAssistant indicates a message produced by the assistant.
	RoleAssistant Role = "assistant"
)
