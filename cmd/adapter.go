package cmd

import (
	"context"

	"github.com/voxtraditionis/vox/pkg/provider"
	"github.com/voxtraditionis/vox/pkg/stream"
)

// factoryAdapter narrows *provider.Factory to the controller's
// ResourceFactory interface.
type factoryAdapter struct {
	factory *provider.Factory
}

func (a *factoryAdapter) HasCredential() bool {
	return a.factory.HasCredential()
}

func (a *factoryAdapter) New(ctx context.Context, language string) (stream.Source, error) {
	return a.factory.New(ctx, language)
}
