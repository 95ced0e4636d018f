// Package provider wraps the hosted model API behind the stream.Source
// contract. A Resource is the provider-side conversational handle: it
// is bound to a system prompt and temperature at creation and keeps
// its own conversational context until discarded. Recreating a
// resource (session switch, language switch) deliberately drops that
// context; prior transcript messages are never replayed into the new
// handle.
package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"

	"github.com/voxtraditionis/vox/pkg/stream"
)

// Resource is one live chat handle against the hosted model.
type Resource struct {
	llm         llms.Model
	model       string
	temperature float64
	language    string

	mu      sync.Mutex
	history []llms.MessageContent
}

func newResource(llm llms.Model, model string, temperature float64, language, systemPrompt string) *Resource {
	return &Resource{
		llm:         llm,
		model:       model,
		temperature: temperature,
		language:    language,
		history: []llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		},
	}
}

// Language returns the language the resource was configured with.
func (r *Resource) Language() string {
	return r.language
}

// SendStream sends text and streams the reply through handler.
// Fragments are forwarded in arrival order; the model's reply joins
// the handle's context only after a clean completion.
func (r *Resource) SendStream(ctx context.Context, text string, handler stream.Handler) error {
	r.mu.Lock()
	messages := make([]llms.MessageContent, len(r.history)+1)
	copy(messages, r.history)
	messages[len(r.history)] = llms.TextParts(llms.ChatMessageTypeHuman, text)
	r.mu.Unlock()

	var content strings.Builder
	streamingFunc := func(ctx context.Context, chunk []byte) error {
		fragment := string(chunk)
		content.WriteString(fragment)
		return handler.OnChunk(fragment)
	}

	response, err := r.llm.GenerateContent(ctx, messages,
		llms.WithModel(r.model),
		llms.WithTemperature(r.temperature),
		llms.WithStreamingFunc(streamingFunc),
	)
	if err != nil {
		handler.OnError(err)
		return fmt.Errorf("content generation failed: %w", err)
	}

	final := content.String()
	if final == "" && len(response.Choices) > 0 {
		// Some providers skip the streaming func for short replies.
		final = response.Choices[0].Content
		if final != "" {
			if err := handler.OnChunk(final); err != nil {
				return err
			}
		}
	}

	r.mu.Lock()
	r.history = append(r.history,
		llms.TextParts(llms.ChatMessageTypeHuman, text),
		llms.TextParts(llms.ChatMessageTypeAI, final),
	)
	r.mu.Unlock()

	return handler.OnComplete(final)
}

var _ stream.Source = (*Resource)(nil)
