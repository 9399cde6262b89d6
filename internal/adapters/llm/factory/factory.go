// Package factory maps text vendor identifiers to adapter constructors so
// vendor dispatch lives in exactly one place.
package factory

import (
	"context"
	"fmt"

	"lingocoach/internal/adapters/llm/gemini"
	"lingocoach/internal/adapters/llm/local"
	"lingocoach/internal/adapters/llm/openai"
	"lingocoach/internal/domain"
	"lingocoach/internal/ports"
)

type Builder func(ctx context.Context, cfg domain.TextProviderConfig) (ports.TextProvider, error)

var builders = map[domain.TextVendor]Builder{
	domain.TextVendorOpenAI: func(_ context.Context, cfg domain.TextProviderConfig) (ports.TextProvider, error) {
		return openai.New(cfg.APIKey, cfg.SelectedModel), nil
	},
	domain.TextVendorGemini: func(ctx context.Context, cfg domain.TextProviderConfig) (ports.TextProvider, error) {
		return gemini.New(ctx, cfg.APIKey, cfg.SelectedModel)
	},
	domain.TextVendorLocal: func(_ context.Context, cfg domain.TextProviderConfig) (ports.TextProvider, error) {
		return local.New(cfg.LocalEndpoint, cfg.SelectedModel, cfg.LocalDialect), nil
	},
}

// FromConfig builds the adapter for the configured vendor.
func FromConfig(ctx context.Context, cfg domain.TextProviderConfig) (ports.TextProvider, error) {
	b, ok := builders[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unsupported text provider: %s", cfg.Provider)
	}
	return b(ctx, cfg)
}
