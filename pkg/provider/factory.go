package provider

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/voxtraditionis/vox/pkg/prompt"
)

// Factory builds chat resources for a language. The session controller
// owns one factory and swaps resources through it on session and
// language changes.
type Factory struct {
	model       string
	temperature float64
	apiKey      string
}

func NewFactory(model string, temperature float64, apiKey string) *Factory {
	return &Factory{
		model:       model,
		temperature: temperature,
		apiKey:      apiKey,
	}
}

// HasCredential reports whether a credential was supplied. The
// controller checks this before every send, not only at startup.
func (f *Factory) HasCredential() bool {
	return f.apiKey != ""
}

// New creates a fresh resource bound to the language's system prompt.
func (f *Factory) New(ctx context.Context, language string) (*Resource, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(f.apiKey),
		googleai.WithDefaultModel(f.model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider client: %w", err)
	}

	language = prompt.ParseLanguage(language)
	return newResource(llm, f.model, f.temperature, language, prompt.Build(language)), nil
}
