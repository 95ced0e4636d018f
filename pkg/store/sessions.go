package store

import (
	"encoding/json"
	"fmt"

	"github.com/voxtraditionis/vox/pkg/chat"
	"github.com/voxtraditionis/vox/pkg/logger"
)

// SessionsKey is the single fixed key the whole session list lives
// under.
const SessionsKey = "vox_chat_sessions"

// SessionStore serializes the session list to and from a KV. It is
// read once at startup and written after every transcript mutation.
type SessionStore struct {
	kv KV
}

func NewSessionStore(kv KV) *SessionStore {
	return &SessionStore{kv: kv}
}

// Load reads the persisted session list. A missing key and corrupt
// data both yield an empty list: stale or damaged history must never
// block startup.
func (s *SessionStore) Load() []chat.Session {
	raw, ok, err := s.kv.GetString(SessionsKey)
	if err != nil {
		logger.Warn("failed to read session history: %v", err)
		return []chat.Session{}
	}
	if !ok {
		return []chat.Session{}
	}

	var sessions []chat.Session
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		logger.Warn("discarding malformed session history: %v", err)
		return []chat.Session{}
	}
	return sessions
}

// Save writes the full session list. An empty list removes the key
// entirely so "no history" and "key absent" stay the same state.
func (s *SessionStore) Save(sessions []chat.Session) error {
	if len(sessions) == 0 {
		if err := s.kv.RemoveKey(SessionsKey); err != nil {
			return fmt.Errorf("failed to clear session history: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to marshal session history: %w", err)
	}
	if err := s.kv.SetString(SessionsKey, string(data)); err != nil {
		return fmt.Errorf("failed to write session history: %w", err)
	}
	return nil
}
