package stream_test

import (
	"context"

	"github.com/voxtraditionis/vox/pkg/stream"
)

// fakeSource replays scripted fragments through the handler, failing
// after failAfter fragments when failErr is set. failAfter 0 fails
// before the first fragment.
type fakeSource struct {
	fragments []string
	failAfter int
	failErr   error

	// reportViaHandler makes the fake call OnError in addition to
	// returning the error, mimicking sources that do both.
	reportViaHandler bool

	sent int
}

func (f *fakeSource) SendStream(ctx context.Context, text string, handler stream.Handler) error {
	for i, fragment := range f.fragments {
		if f.failErr != nil && i >= f.failAfter {
			break
		}
		if err := handler.OnChunk(fragment); err != nil {
			return err
		}
		f.sent++
	}

	if f.failErr != nil {
		if f.reportViaHandler {
			handler.OnError(f.failErr)
		}
		return f.failErr
	}

	return handler.OnComplete(text)
}
