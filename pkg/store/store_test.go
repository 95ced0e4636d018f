package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxtraditionis/vox/pkg/chat"
	"github.com/voxtraditionis/vox/pkg/store"
)

func kvBackends(t *testing.T) map[string]store.KV {
	t.Helper()

	fileKV, err := store.NewFileKV(t.TempDir())
	require.NoError(t, err)

	sqliteKV, err := store.NewSQLiteKV(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteKV.Close() })

	return map[string]store.KV{
		"memory": store.NewMemoryKV(),
		"file":   fileKV,
		"sqlite": sqliteKV,
	}
}

func TestKVRoundTrip(t *testing.T) {
	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.GetString("absent")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.SetString("greeting", "salve"))
			value, ok, err := kv.GetString("greeting")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "salve", value)

			require.NoError(t, kv.SetString("greeting", "ave"))
			value, _, err = kv.GetString("greeting")
			require.NoError(t, err)
			assert.Equal(t, "ave", value)

			require.NoError(t, kv.RemoveKey("greeting"))
			_, ok, err = kv.GetString("greeting")
			require.NoError(t, err)
			assert.False(t, ok)

			// Removing an absent key is not an error.
			require.NoError(t, kv.RemoveKey("greeting"))
		})
	}
}

func sampleSessions() []chat.Session {
	newer := chat.NewSession("Quid est veritas?", "en")
	newer = chat.AppendMessage(newer, chat.NewUserMessage("Quid est veritas?"))
	newer = chat.AppendMessage(newer, chat.NewModelMessage("Est vir qui adest."))

	older := chat.NewSession("What is the capital of Peru?", "en")
	older = chat.AppendMessage(older, chat.NewUserMessage("What is the capital of Peru?"))
	older = chat.AppendMessage(older, chat.NewModelMessage("Lima."))

	return []chat.Session{newer, older}
}

func TestSessionStoreRoundTrip(t *testing.T) {
	kv := store.NewMemoryKV()
	sessions := store.NewSessionStore(kv)

	require.NoError(t, sessions.Save(sampleSessions()))

	loaded := sessions.Load()
	require.Len(t, loaded, 2)
	assert.Equal(t, "Quid est veritas?", loaded[0].Title)
	assert.Len(t, loaded[0].Messages, 2)
	assert.Equal(t, "Lima.", loaded[1].Messages[1].Content)
}

func TestSaveAfterLoadIsIdempotent(t *testing.T) {
	kv := store.NewMemoryKV()
	sessions := store.NewSessionStore(kv)
	require.NoError(t, sessions.Save(sampleSessions()))

	before, ok, err := kv.GetString(store.SessionsKey)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, sessions.Save(sessions.Load()))

	after, ok, err := kv.GetString(store.SessionsKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestLoadMissingKeyReturnsEmpty(t *testing.T) {
	sessions := store.NewSessionStore(store.NewMemoryKV())

	assert.Empty(t, sessions.Load())
}

func TestLoadMalformedJSONReturnsEmpty(t *testing.T) {
	kv := store.NewMemoryKV()
	require.NoError(t, kv.SetString(store.SessionsKey, "{not json"))
	sessions := store.NewSessionStore(kv)

	// Corrupt history must not block startup.
	assert.Empty(t, sessions.Load())
}

func TestSaveEmptyRemovesKey(t *testing.T) {
	kv := store.NewMemoryKV()
	sessions := store.NewSessionStore(kv)
	require.NoError(t, sessions.Save(sampleSessions()))

	require.NoError(t, sessions.Save([]chat.Session{}))

	_, ok, err := kv.GetString(store.SessionsKey)
	require.NoError(t, err)
	assert.False(t, ok, "no history and key absent must be the same state")
}

func TestFileKVSanitizesKeys(t *testing.T) {
	kv, err := store.NewFileKV(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, kv.SetString("../escape/attempt", "contained"))
	value, ok, err := kv.GetString("../escape/attempt")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "contained", value)
}
