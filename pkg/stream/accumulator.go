package stream

import "strings"

// Accumulator builds the cumulative content of one streaming message
// from its fragments. The consumer delivers only the new substring;
// accumulation is the caller's job, and this is the caller's tool.
type Accumulator struct {
	content   strings.Builder
	fragments int
}

func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Add appends a fragment and returns the cumulative content so far.
func (a *Accumulator) Add(fragment string) string {
	a.content.WriteString(fragment)
	a.fragments++
	return a.content.String()
}

func (a *Accumulator) String() string {
	return a.content.String()
}

// FragmentCount returns how many fragments were applied.
func (a *Accumulator) FragmentCount() int {
	return a.fragments
}
