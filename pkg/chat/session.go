package chat

import (
	"time"
)

// TitleLimit is the maximum number of runes kept from the first user
// message when deriving a session title.
const TitleLimit = 30

const titleEllipsis = "..."

type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	Language  string    `json:"language"`
}

// NewSession derives the title from the first user message once, at
// creation. The title never changes afterwards.
func NewSession(firstMessage, language string) Session {
	return Session{
		ID:        NewID(),
		Title:     DeriveTitle(firstMessage),
		Messages:  make([]Message, 0),
		CreatedAt: time.Now(),
		Language:  language,
	}
}

// DeriveTitle truncates rune-wise so a multibyte character is never
// split at the boundary.
func DeriveTitle(firstMessage string) string {
	runes := []rune(firstMessage)
	if len(runes) <= TitleLimit {
		return firstMessage
	}
	return string(runes[:TitleLimit]) + titleEllipsis
}

// AppendMessage returns a session with msg appended. The input session
// is never mutated; cheap pointer comparison is enough for any
// reactive layer to detect the change.
func AppendMessage(s Session, msg Message) Session {
	messages := make([]Message, len(s.Messages)+1)
	copy(messages, s.Messages)
	messages[len(s.Messages)] = msg
	s.Messages = messages
	return s
}

// UpdateStreamingContent replaces the content of the streaming message
// with the given id. A missing or already-finalized message is a
// silent no-op: the streaming consumer contract makes that unreachable
// in practice, and it must never panic.
func UpdateStreamingContent(s Session, messageID, newContent string) Session {
	idx := indexOf(s, messageID)
	if idx < 0 || !s.Messages[idx].IsStreaming {
		return s
	}
	messages := make([]Message, len(s.Messages))
	copy(messages, s.Messages)
	messages[idx].Content = newContent
	s.Messages = messages
	return s
}

// FinalizeStreaming clears the streaming flag on the named message.
func FinalizeStreaming(s Session, messageID string) Session {
	idx := indexOf(s, messageID)
	if idx < 0 {
		return s
	}
	messages := make([]Message, len(s.Messages))
	copy(messages, s.Messages)
	messages[idx].IsStreaming = false
	s.Messages = messages
	return s
}

// ReplaceStreamingWithError removes the message with the given id and
// appends errMsg in its place at the end of the sequence.
func ReplaceStreamingWithError(s Session, messageID string, errMsg Message) Session {
	messages := make([]Message, 0, len(s.Messages))
	for _, m := range s.Messages {
		if m.ID == messageID {
			continue
		}
		messages = append(messages, m)
	}
	messages = append(messages, errMsg)
	s.Messages = messages
	return s
}

func LastMessage(s Session) (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

func MessageCount(s Session) int {
	return len(s.Messages)
}

func IsEmpty(s Session) bool {
	return len(s.Messages) == 0
}

// HasStreamingMessage reports whether any message is still streaming.
// At most one ever is, and it is always the last element.
func HasStreamingMessage(s Session) bool {
	for _, m := range s.Messages {
		if m.IsStreaming {
			return true
		}
	}
	return false
}

func indexOf(s Session, messageID string) int {
	for i, m := range s.Messages {
		if m.ID == messageID {
			return i
		}
	}
	return -1
}
