package controllers

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/voxtraditionis/vox/pkg/chat"
	"github.com/voxtraditionis/vox/pkg/classify"
	"github.com/voxtraditionis/vox/pkg/logger"
	"github.com/voxtraditionis/vox/pkg/prompt"
	"github.com/voxtraditionis/vox/pkg/store"
	"github.com/voxtraditionis/vox/pkg/stream"
)

var (
	// ErrEmptyMessage rejects a send whose text trims to nothing.
	ErrEmptyMessage = errors.New("message content cannot be empty")
	// ErrSendInFlight rejects a send while another one is running.
	ErrSendInFlight = errors.New("a send is already in flight")
	// ErrNoSuchSession reports an unknown session id.
	ErrNoSuchSession = errors.New("no such session")
)

// ResourceFactory builds external chat resources. The controller owns
// the current resource explicitly and swaps it on session and language
// changes; nothing reaches it through a singleton.
type ResourceFactory interface {
	HasCredential() bool
	New(ctx context.Context, language string) (stream.Source, error)
}

// SessionController orchestrates session creation, selection,
// deletion, language switches and message sends. Sessions are kept
// newest first; at most one send is in flight, enforced here with a
// guard rather than left to caller discipline.
type SessionController struct {
	mu       sync.Mutex
	sessions []chat.Session
	activeID string
	language string
	resource stream.Source
	factory  ResourceFactory
	store    *store.SessionStore
	inFlight bool
}

// NewSessionController loads persisted sessions and prepares a
// resource for the configured language. Resource creation failures are
// tolerated; the next send retries and surfaces the failure in the
// transcript.
func NewSessionController(ctx context.Context, factory ResourceFactory, sessionStore *store.SessionStore, language string) *SessionController {
	sc := &SessionController{
		sessions: sessionStore.Load(),
		language: prompt.ParseLanguage(language),
		factory:  factory,
		store:    sessionStore,
	}
	sc.recreateResource(ctx, sc.language)
	return sc
}

// EnsureActiveSession returns the active session id, creating a
// session from the first message text when none is active. New
// sessions are inserted at the front: list order is creation recency.
func (sc *SessionController) EnsureActiveSession(firstMessageText string) string {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.ensureActiveSessionLocked(firstMessageText)
}

func (sc *SessionController) ensureActiveSessionLocked(firstMessageText string) string {
	if sc.activeID != "" {
		return sc.activeID
	}

	session := chat.NewSession(strings.TrimSpace(firstMessageText), sc.language)
	sc.sessions = append([]chat.Session{session}, sc.sessions...)
	sc.activeID = session.ID
	sc.persistLocked()
	return session.ID
}

// SelectSession makes the given session active and rebinds the
// external resource to that session's stored language. Prior messages
// are not replayed into the new resource.
func (sc *SessionController) SelectSession(ctx context.Context, id string) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	idx := sc.indexLocked(id)
	if idx < 0 {
		return ErrNoSuchSession
	}

	sc.activeID = id
	sc.recreateResource(ctx, sc.sessions[idx].Language)
	return nil
}

// NewSession clears the active session; a record is only created when
// the next message is actually sent. The resource is recreated for the
// current UI language.
func (sc *SessionController) NewSession(ctx context.Context) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.activeID = ""
	sc.recreateResource(ctx, sc.language)
}

// DeleteSession removes a session. Deleting the active one leaves no
// active session, never a dangling id.
func (sc *SessionController) DeleteSession(id string) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	idx := sc.indexLocked(id)
	if idx < 0 {
		return ErrNoSuchSession
	}

	sc.sessions = append(sc.sessions[:idx], sc.sessions[idx+1:]...)
	if sc.activeID == id {
		sc.activeID = ""
	}
	sc.persistLocked()
	return nil
}

// ChangeLanguage switches the UI language, stamps it onto the active
// session and recreates the resource. The resource's conversational
// context is lost by design; the session's message history is
// untouched.
func (sc *SessionController) ChangeLanguage(ctx context.Context, newLang string) {
	newLang = prompt.ParseLanguage(newLang)

	sc.mu.Lock()
	defer sc.mu.Unlock()

	if newLang == sc.language {
		return
	}

	if idx := sc.indexLocked(sc.activeID); idx >= 0 {
		sc.sessions[idx].Language = newLang
		sc.persistLocked()
	}
	sc.language = newLang
	sc.recreateResource(ctx, newLang)
}

// Send runs one outbound message to completion or failure. Every
// failure ends as a replacement chat message, never a silent drop: the
// caller always gets back an interactive, retryable transcript.
// onFragment, if non-nil, observes each fragment as it is applied.
func (sc *SessionController) Send(ctx context.Context, text string, onFragment func(fragment string)) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	sc.mu.Lock()
	if sc.inFlight {
		sc.mu.Unlock()
		return ErrSendInFlight
	}
	sc.inFlight = true

	sessionID := sc.ensureActiveSessionLocked(text)
	sc.applyLocked(sessionID, func(s chat.Session) chat.Session {
		return chat.AppendMessage(s, chat.NewUserMessage(text))
	})

	placeholder := chat.NewStreamingMessage()
	sc.applyLocked(sessionID, func(s chat.Session) chat.Session {
		return chat.AppendMessage(s, placeholder)
	})
	sc.mu.Unlock()

	defer func() {
		sc.mu.Lock()
		sc.inFlight = false
		sc.mu.Unlock()
	}()

	// The credential is checked before every send attempt. Without
	// one, no external call is made and zero fragments apply.
	if !sc.factory.HasCredential() {
		sc.failSend(sessionID, placeholder.ID, classify.MissingKey, "")
		return nil
	}

	source := sc.ensureResource(ctx)
	if source == nil {
		sc.failSend(sessionID, placeholder.ID, classify.Unknown, "chat resource unavailable")
		return nil
	}

	acc := stream.NewAccumulator()
	for ev := range stream.Consume(ctx, source, text) {
		switch ev.Kind {
		case stream.EventFragment:
			content := acc.Add(ev.Fragment)
			sc.mu.Lock()
			sc.applyLocked(sessionID, func(s chat.Session) chat.Session {
				return chat.UpdateStreamingContent(s, placeholder.ID, content)
			})
			sc.mu.Unlock()
			if onFragment != nil {
				onFragment(ev.Fragment)
			}

		case stream.EventCompleted:
			sc.mu.Lock()
			sc.applyLocked(sessionID, func(s chat.Session) chat.Session {
				return chat.FinalizeStreaming(s, placeholder.ID)
			})
			sc.mu.Unlock()
			logger.Debug("send completed: %d fragments, %d bytes", acc.FragmentCount(), len(acc.String()))

		case stream.EventFailed:
			detail := ""
			if ev.Err != nil {
				detail = ev.Err.Error()
			}
			logger.Error("send failed: %s", detail)
			sc.failSend(sessionID, placeholder.ID, classify.Classify(ev.Err), detail)
		}
	}

	return nil
}

// Sessions returns the session list, newest first.
func (sc *SessionController) Sessions() []chat.Session {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	out := make([]chat.Session, len(sc.sessions))
	copy(out, sc.sessions)
	return out
}

// ActiveSession returns the active session, if any.
func (sc *SessionController) ActiveSession() (chat.Session, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	idx := sc.indexLocked(sc.activeID)
	if idx < 0 {
		return chat.Session{}, false
	}
	return sc.sessions[idx], true
}

// ActiveID returns the active session id, empty when none.
func (sc *SessionController) ActiveID() string {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.activeID
}

// Language returns the current UI language.
func (sc *SessionController) Language() string {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.language
}

// failSend replaces the streaming placeholder with the localized
// message for a category and persists the result.
func (sc *SessionController) failSend(sessionID, placeholderID string, cat classify.Category, detail string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	errMsg := chat.NewModelMessage(classify.UserMessage(cat, sc.language, detail))
	sc.applyLocked(sessionID, func(s chat.Session) chat.Session {
		return chat.ReplaceStreamingWithError(s, placeholderID, errMsg)
	})
}

// applyLocked rewrites one session through fn and persists. Callers
// must hold the mutex.
func (sc *SessionController) applyLocked(sessionID string, fn func(chat.Session) chat.Session) {
	idx := sc.indexLocked(sessionID)
	if idx < 0 {
		return
	}
	sc.sessions[idx] = fn(sc.sessions[idx])
	sc.persistLocked()
}

func (sc *SessionController) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, s := range sc.sessions {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the session list after a mutation. Storage
// failures are logged and otherwise ignored; persistence must never
// break an interactive session.
func (sc *SessionController) persistLocked() {
	if err := sc.store.Save(sc.sessions); err != nil {
		logger.Warn("failed to persist sessions: %v", err)
	}
}

func (sc *SessionController) ensureResource(ctx context.Context) stream.Source {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.resource == nil {
		sc.recreateResource(ctx, sc.language)
	}
	return sc.resource
}

// recreateResource discards the current handle and builds a fresh one.
// Callers must hold the mutex (or be the constructor).
func (sc *SessionController) recreateResource(ctx context.Context, language string) {
	resource, err := sc.factory.New(ctx, language)
	if err != nil {
		logger.Warn("failed to create chat resource: %v", err)
		sc.resource = nil
		return
	}
	sc.resource = resource
}
