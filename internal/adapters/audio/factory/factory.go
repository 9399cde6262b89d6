// Package factory maps audio vendor identifiers to adapter constructors.
package factory

import (
	"context"
	"fmt"

	"lingocoach/internal/adapters/audio/google"
	"lingocoach/internal/adapters/audio/openai"
	"lingocoach/internal/domain"
	"lingocoach/internal/ports"
)

type Builder func(ctx context.Context, cfg domain.AudioProviderConfig) (ports.AudioProvider, error)

var builders = map[domain.AudioVendor]Builder{
	domain.AudioVendorOpenAI: func(_ context.Context, cfg domain.AudioProviderConfig) (ports.AudioProvider, error) {
		return openai.New(cfg.APIKey, cfg.SelectedModel, cfg.SelectedVoice), nil
	},
	domain.AudioVendorGoogle: func(ctx context.Context, cfg domain.AudioProviderConfig) (ports.AudioProvider, error) {
		return google.New(ctx, cfg.APIKey, cfg.SelectedVoice)
	},
}

// FromConfig builds the adapter for the configured vendor.
func FromConfig(ctx context.Context, cfg domain.AudioProviderConfig) (ports.AudioProvider, error) {
	b, ok := builders[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unsupported audio provider: %s", cfg.Provider)
	}
	return b(ctx, cfg)
}
