package stream

// EventKind discriminates consumer events.
type EventKind int

const (
	// EventFragment carries one incremental piece of text.
	EventFragment EventKind = iota
	// EventCompleted ends a stream that finished cleanly.
	EventCompleted
	// EventFailed ends a stream that raised.
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventFragment:
		return "fragment"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is one element of the ordered sequence a Consumer produces.
// Exactly one terminal event (completed or failed) ends the sequence.
type Event struct {
	Kind     EventKind
	Fragment string
	Err      error
}
