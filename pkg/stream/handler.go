package stream

import "context"

// Handler receives streaming callbacks from a Source. Fragments carry
// exactly the new substring, never the cumulative text.
type Handler interface {
	// OnChunk is called once per received fragment, in arrival order.
	OnChunk(fragment string) error

	// OnComplete is called when the source signals end-of-stream with
	// no error.
	OnComplete(finalContent string) error

	// OnError is called when the source fails, including before the
	// first fragment.
	OnError(err error)
}

// HandlerFunc is a function adapter for Handler
type HandlerFunc struct {
	ChunkFunc    func(fragment string) error
	CompleteFunc func(finalContent string) error
	ErrorFunc    func(err error)
}

func (h HandlerFunc) OnChunk(fragment string) error {
	if h.ChunkFunc != nil {
		return h.ChunkFunc(fragment)
	}
	return nil
}

func (h HandlerFunc) OnComplete(finalContent string) error {
	if h.CompleteFunc != nil {
		return h.CompleteFunc(finalContent)
	}
	return nil
}

func (h HandlerFunc) OnError(err error) {
	if h.ErrorFunc != nil {
		h.ErrorFunc(err)
	}
}

var _ Handler = HandlerFunc{}

// Source is the external chat resource: a provider-side handle bound
// to a system prompt and temperature. Failures surface as a single
// returned error with a descriptive string.
type Source interface {
	SendStream(ctx context.Context, text string, handler Handler) error
}
