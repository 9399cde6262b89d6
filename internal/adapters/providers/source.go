// Package providers builds vendor adapters from the currently stored
// settings. Services call it per operation, so a provider or key change
// takes effect on the next request without restarting.
package providers

import (
	"context"

	audiofactory "lingocoach/internal/adapters/audio/factory"
	llmfactory "lingocoach/internal/adapters/llm/factory"
	"lingocoach/internal/domain"
	"lingocoach/internal/ports"
)

type Source struct {
	Settings ports.SettingsRepository
}

func NewSource(settings ports.SettingsRepository) *Source {
	return &Source{Settings: settings}
}

func (s *Source) current(ctx context.Context) (domain.Settings, error) {
	st, err := s.Settings.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	if st == nil {
		return domain.DefaultSettings(), nil
	}
	return *st, nil
}

func (s *Source) Text(ctx context.Context) (ports.TextProvider, error) {
	st, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return llmfactory.FromConfig(ctx, st.TextProvider)
}

func (s *Source) Audio(ctx context.Context) (ports.AudioProvider, error) {
	st, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return audiofactory.FromConfig(ctx, st.AudioProvider)
}
