package settings

import (
	"context"
	"fmt"

	"lingocoach/internal/domain"
	"lingocoach/internal/ports"
)

type Deps struct {
	Settings  ports.SettingsRepository
	Validator ports.ProviderValidator
}

type Service struct{ d Deps }

func New(d Deps) *Service { return &Service{d: d} }

// Get returns the stored settings, falling back to defaults when nothing
// has been saved yet. The defaults are never persisted implicitly.
func (s *Service) Get(ctx context.Context) (domain.Settings, error) {
	stored, err := s.d.Settings.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	if stored == nil {
		return domain.DefaultSettings(), nil
	}
	return *stored, nil
}

func (s *Service) Save(ctx context.Context, st domain.Settings) error {
	return s.d.Settings.Save(ctx, st)
}

func (s *Service) UpdateLanguages(ctx context.Context, targetLanguage, nativeLanguage string, level domain.Level) (domain.Settings, error) {
	st, err := s.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	st.TargetLanguage = targetLanguage
	st.NativeLanguage = nativeLanguage
	st.DefaultLevel = level
	if err := s.d.Settings.Save(ctx, st); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return st, nil
}

// UpdateTextProvider validates the submitted config against the vendor,
// fetches the model list on success, and persists the result. An invalid
// key is persisted too, flagged invalid with an empty model list, so the
// stored state always reflects the last attempt.
func (s *Service) UpdateTextProvider(ctx context.Context, cfg domain.TextProviderConfig) (domain.Settings, error) {
	valid, err := s.d.Validator.ValidateTextKey(ctx, cfg)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("validate text provider: %w", err)
	}
	cfg.IsValid = valid
	cfg.AvailableModels = []string{}
	if valid {
		models, err := s.d.Validator.TextModels(ctx, cfg)
		if err != nil {
			return domain.Settings{}, fmt.Errorf("list text models: %w", err)
		}
		cfg.AvailableModels = models
		if cfg.SelectedModel == "" || !contains(models, cfg.SelectedModel) {
			if len(models) > 0 {
				cfg.SelectedModel = models[0]
			} else {
				cfg.SelectedModel = ""
			}
		}
	} else {
		cfg.SelectedModel = ""
	}

	st, err := s.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	st.TextProvider = cfg
	if err := s.d.Settings.Save(ctx, st); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return st, nil
}

// UpdateAudioProvider mirrors UpdateTextProvider and additionally fetches
// and auto-selects a voice.
func (s *Service) UpdateAudioProvider(ctx context.Context, cfg domain.AudioProviderConfig) (domain.Settings, error) {
	valid, err := s.d.Validator.ValidateAudioKey(ctx, cfg)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("validate audio provider: %w", err)
	}
	cfg.IsValid = valid
	cfg.AvailableModels = []string{}
	cfg.AvailableVoices = []string{}
	if valid {
		models, err := s.d.Validator.AudioModels(ctx, cfg)
		if err != nil {
			return domain.Settings{}, fmt.Errorf("list audio models: %w", err)
		}
		voices, err := s.d.Validator.AudioVoices(ctx, cfg)
		if err != nil {
			return domain.Settings{}, fmt.Errorf("list audio voices: %w", err)
		}
		cfg.AvailableModels = models
		cfg.AvailableVoices = voices
		if cfg.SelectedModel == "" || !contains(models, cfg.SelectedModel) {
			if len(models) > 0 {
				cfg.SelectedModel = models[0]
			} else {
				cfg.SelectedModel = ""
			}
		}
		if cfg.SelectedVoice == "" || !contains(voices, cfg.SelectedVoice) {
			if len(voices) > 0 {
				cfg.SelectedVoice = voices[0]
			} else {
				cfg.SelectedVoice = ""
			}
		}
	} else {
		cfg.SelectedModel = ""
		cfg.SelectedVoice = ""
	}

	st, err := s.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	st.AudioProvider = cfg
	if err := s.d.Settings.Save(ctx, st); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return st, nil
}

func (s *Service) SupportedLanguages() []string {
	out := make([]string, len(domain.SupportedLanguages))
	copy(out, domain.SupportedLanguages)
	return out
}

func contains(ss []string, v string) bool {
	for _, s := range ss {
		if s == v {
			return true
		}
	}
	return false
}
