// Package validator implements the provider validation port on top of the
// vendor factories, so settings checks exercise the same adapters the
// generation path uses.
package validator

import (
	"context"

	audiofactory "lingocoach/internal/adapters/audio/factory"
	llmfactory "lingocoach/internal/adapters/llm/factory"
	"lingocoach/internal/domain"
)

type Validator struct{}

func New() *Validator { return &Validator{} }

func (v *Validator) ValidateTextKey(ctx context.Context, cfg domain.TextProviderConfig) (bool, error) {
	p, err := llmfactory.FromConfig(ctx, cfg)
	if err != nil {
		return false, err
	}
	return p.ValidateAPIKey(ctx, cfg.APIKey)
}

func (v *Validator) TextModels(ctx context.Context, cfg domain.TextProviderConfig) ([]string, error) {
	p, err := llmfactory.FromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return p.ListModels(ctx, cfg.APIKey)
}

func (v *Validator) ValidateAudioKey(ctx context.Context, cfg domain.AudioProviderConfig) (bool, error) {
	p, err := audiofactory.FromConfig(ctx, cfg)
	if err != nil {
		return false, err
	}
	return p.ValidateAPIKey(ctx, cfg.APIKey)
}

func (v *Validator) AudioModels(ctx context.Context, cfg domain.AudioProviderConfig) ([]string, error) {
	p, err := audiofactory.FromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return p.ListModels(ctx, cfg.APIKey)
}

func (v *Validator) AudioVoices(ctx context.Context, cfg domain.AudioProviderConfig) ([]string, error) {
	p, err := audiofactory.FromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return p.ListVoices(ctx, cfg.APIKey)
}
