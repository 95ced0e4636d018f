package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID          string    `json:"id"`
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	IsStreaming bool      `json:"isStreaming,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// NewID returns a message/session identifier that sorts by creation
// order. UUIDv7 embeds a millisecond timestamp plus a per-process
// monotonic counter, so later calls always compare greater.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func NewUserMessage(content string) Message {
	return Message{
		ID:        NewID(),
		Role:      RoleUser,
		Content:   strings.TrimSpace(content),
		Timestamp: time.Now(),
	}
}

// NewStreamingMessage creates the empty model-side placeholder that
// accumulates fragments while a response is in flight.
func NewStreamingMessage() Message {
	return Message{
		ID:          NewID(),
		Role:        RoleModel,
		Content:     "",
		IsStreaming: true,
		Timestamp:   time.Now(),
	}
}

func NewModelMessage(content string) Message {
	return Message{
		ID:        NewID(),
		Role:      RoleModel,
		Content:   content,
		Timestamp: time.Now(),
	}
}

func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

func (m Message) IsModel() bool {
	return m.Role == RoleModel
}

func (m Message) IsEmpty() bool {
	return strings.TrimSpace(m.Content) == ""
}
