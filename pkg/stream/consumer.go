package stream

import (
	"context"
)

// Consume drives a Source and converts its callbacks into an ordered
// event sequence. The channel is unbuffered, so the caller applies
// each fragment before the source is allowed to produce the next one:
// sequential consumption, no reordering, no batching.
//
// The sequence always ends with exactly one terminal event, after
// which the channel is closed. There is no cancellation beyond ctx:
// once a send begins it runs to completion or failure.
func Consume(ctx context.Context, source Source, text string) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)

		handler := &eventHandler{events: events}
		err := source.SendStream(ctx, text, handler)

		if handler.terminal {
			return
		}
		if err != nil {
			events <- Event{Kind: EventFailed, Err: err}
			return
		}
		events <- Event{Kind: EventCompleted}
	}()

	return events
}

// eventHandler forwards Source callbacks onto the event channel. A
// Source drives it from a single goroutine, so no locking is needed;
// the terminal flag only guards against a source that both calls
// OnError and returns the error.
type eventHandler struct {
	events   chan<- Event
	terminal bool
}

func (h *eventHandler) OnChunk(fragment string) error {
	if h.terminal || fragment == "" {
		return nil
	}
	h.events <- Event{Kind: EventFragment, Fragment: fragment}
	return nil
}

func (h *eventHandler) OnComplete(string) error {
	if h.terminal {
		return nil
	}
	h.terminal = true
	h.events <- Event{Kind: EventCompleted}
	return nil
}

func (h *eventHandler) OnError(err error) {
	if h.terminal {
		return
	}
	h.terminal = true
	h.events <- Event{Kind: EventFailed, Err: err}
}

var _ Handler = (*eventHandler)(nil)
