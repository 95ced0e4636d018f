package controllers_test

import (
	"context"
	"sync"

	"github.com/voxtraditionis/vox/pkg/stream"
)

// fakeSource replays scripted fragments, optionally failing after
// failAfter fragments. It records every send so tests can assert that
// no external call happened.
type fakeSource struct {
	mu        sync.Mutex
	fragments []string
	failAfter int
	failErr   error

	sends []string

	// gate, when set, blocks after the first fragment until released.
	gate chan struct{}
}

func (f *fakeSource) SendStream(ctx context.Context, text string, handler stream.Handler) error {
	f.mu.Lock()
	f.sends = append(f.sends, text)
	f.mu.Unlock()

	for i, fragment := range f.fragments {
		if f.failErr != nil && i >= f.failAfter {
			break
		}
		if err := handler.OnChunk(fragment); err != nil {
			return err
		}
		if i == 0 && f.gate != nil {
			<-f.gate
		}
	}

	if f.failErr != nil {
		return f.failErr
	}
	return handler.OnComplete(text)
}

func (f *fakeSource) sendCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sends)
}

// fakeFactory hands out a fixed source and records the languages it
// was asked to build resources for.
type fakeFactory struct {
	mu         sync.Mutex
	credential bool
	source     stream.Source
	err        error
	languages  []string
}

func (f *fakeFactory) HasCredential() bool {
	return f.credential
}

func (f *fakeFactory) New(ctx context.Context, language string) (stream.Source, error) {
	f.mu.Lock()
	f.languages = append(f.languages, language)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return f.source, nil
}

func (f *fakeFactory) createdFor() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.languages))
	copy(out, f.languages)
	return out
}
