package exercise

import (
	"context"
	"fmt"

	"lingocoach/internal/domain"
	"lingocoach/internal/ports"
	"lingocoach/internal/prompts"
)

type Deps struct {
	Speaking   ports.SpeakingExerciseRepository
	Listening  ports.ListeningExerciseRepository
	Lessons    ports.LessonRepository
	AudioCache ports.AudioCacheRepository
	BuildText  func(ctx context.Context) (ports.TextProvider, error)
	BuildAudio func(ctx context.Context) (ports.AudioProvider, error)
}

type Service struct{ d Deps }

func New(d Deps) *Service { return &Service{d: d} }

type CreateArgs struct {
	Level          domain.Level
	PartialText    string
	TargetLanguage string
	NativeLanguage string
	LessonID       string
}

// CreateSpeaking generates exercise text from the provider, parses it, and
// stores a new speaking exercise. With a partial text the provider completes
// it; without one it invents a fresh passage for the level.
func (s *Service) CreateSpeaking(ctx context.Context, a CreateArgs) (domain.SpeakingExercise, error) {
	text, err := s.generateText(ctx, a)
	if err != nil {
		return domain.SpeakingExercise{}, err
	}
	e := domain.NewSpeakingExercise(text.Title, a.Level, text.Content, instructions(text), a.TargetLanguage, a.NativeLanguage, a.LessonID)
	if err := s.d.Speaking.Save(ctx, e); err != nil {
		return domain.SpeakingExercise{}, fmt.Errorf("save speaking exercise: %w", err)
	}
	if err := s.linkToLesson(ctx, a.LessonID, e.ID, false); err != nil {
		return domain.SpeakingExercise{}, err
	}
	return e, nil
}

// CreateListening generates exercise text, then synthesizes its audio with
// the audio provider. Text generation and synthesis are two sequential
// provider calls; a synthesis failure fails the whole creation and nothing
// is stored.
func (s *Service) CreateListening(ctx context.Context, a CreateArgs) (domain.ListeningExercise, error) {
	text, err := s.generateText(ctx, a)
	if err != nil {
		return domain.ListeningExercise{}, err
	}

	audioProvider, err := s.d.BuildAudio(ctx)
	if err != nil {
		return domain.ListeningExercise{}, err
	}
	audio, err := audioProvider.TextToSpeech(ctx, ports.TextToSpeechRequest{
		Text:     text.Content,
		Language: a.TargetLanguage,
	})
	if err != nil {
		return domain.ListeningExercise{}, fmt.Errorf("synthesize exercise audio: %w: %v", domain.ErrProviderFailure, err)
	}

	e := domain.NewListeningExercise(text.Title, a.Level, text.Content, instructions(text), a.TargetLanguage, a.NativeLanguage, a.LessonID)
	e = e.WithAudio(audio)
	// Save before caching: a save failure must not strand a cache entry for
	// an exercise that never came to exist.
	if err := s.d.Listening.Save(ctx, e); err != nil {
		return domain.ListeningExercise{}, fmt.Errorf("save listening exercise: %w", err)
	}
	if err := s.d.AudioCache.Put(ctx, "listening_"+e.ID, audio); err != nil {
		return domain.ListeningExercise{}, err
	}
	if err := s.linkToLesson(ctx, a.LessonID, e.ID, true); err != nil {
		return domain.ListeningExercise{}, err
	}
	return e, nil
}

func (s *Service) generateText(ctx context.Context, a CreateArgs) (prompts.ExerciseText, error) {
	provider, err := s.d.BuildText(ctx)
	if err != nil {
		return prompts.ExerciseText{}, err
	}
	req := ports.TextCompletionRequest{
		PartialText:    a.PartialText,
		TargetLanguage: a.TargetLanguage,
		Level:          a.Level,
	}
	var raw string
	if a.PartialText != "" {
		raw, err = provider.CompleteText(ctx, req)
	} else {
		raw, err = provider.GenerateExerciseText(ctx, req)
	}
	if err != nil {
		return prompts.ExerciseText{}, fmt.Errorf("generate exercise text: %w: %v", domain.ErrProviderFailure, err)
	}
	return prompts.ParseExerciseText(raw), nil
}

func (s *Service) linkToLesson(ctx context.Context, lessonID, exerciseID string, listening bool) error {
	if lessonID == "" {
		return nil
	}
	l, err := s.d.Lessons.Get(ctx, lessonID)
	if err != nil || l == nil {
		return err
	}
	var updated domain.Lesson
	if listening {
		updated = l.LinkListeningExercise(exerciseID)
	} else {
		updated = l.LinkSpeakingExercise(exerciseID)
	}
	return s.d.Lessons.Save(ctx, updated)
}

func instructions(t prompts.ExerciseText) string {
	if t.Instructions != nil {
		return *t.Instructions
	}
	return ""
}

// GenerateListeningAudio returns the exercise audio, synthesizing and
// caching it under "listening_<id>" when missing. Audio for an exercise is
// produced at most once; the text never changes after creation.
func (s *Service) GenerateListeningAudio(ctx context.Context, exerciseID string) ([]byte, error) {
	e, err := s.d.Listening.Get(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}

	key := "listening_" + exerciseID
	if cached, err := s.d.AudioCache.Get(ctx, key); err != nil {
		return nil, err
	} else if cached != nil {
		return cached, nil
	}

	provider, err := s.d.BuildAudio(ctx)
	if err != nil {
		return nil, err
	}
	audio, err := provider.TextToSpeech(ctx, ports.TextToSpeechRequest{
		Text:     e.OriginalText,
		Language: e.TargetLanguage,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize exercise audio: %w: %v", domain.ErrProviderFailure, err)
	}
	if err := s.d.AudioCache.Put(ctx, key, audio); err != nil {
		return nil, err
	}
	if err := s.d.Listening.Save(ctx, e.WithAudio(audio)); err != nil {
		return nil, fmt.Errorf("save listening exercise: %w", err)
	}
	return audio, nil
}

// EvaluateSpeaking transcribes the learner's recording, asks the text
// provider to grade pronunciation against the original text, and completes
// the exercise with the parsed feedback. An unparsable grading response
// degrades to zero scores carrying the raw text as the only suggestion.
func (s *Service) EvaluateSpeaking(ctx context.Context, exerciseID string, recording []byte) (domain.SpeakingExercise, error) {
	e, err := s.d.Speaking.Get(ctx, exerciseID)
	if err != nil {
		return domain.SpeakingExercise{}, err
	}
	if e == nil {
		return domain.SpeakingExercise{}, domain.ErrNotFound
	}

	audioProvider, err := s.d.BuildAudio(ctx)
	if err != nil {
		return domain.SpeakingExercise{}, err
	}
	transcription, err := audioProvider.SpeechToText(ctx, ports.SpeechToTextRequest{
		Audio:    recording,
		Language: e.TargetLanguage,
	})
	if err != nil {
		return domain.SpeakingExercise{}, fmt.Errorf("transcribe recording: %w: %v", domain.ErrProviderFailure, err)
	}

	textProvider, err := s.d.BuildText(ctx)
	if err != nil {
		return domain.SpeakingExercise{}, err
	}
	raw, err := textProvider.EvaluatePronunciation(ctx, ports.PronunciationEvaluationRequest{
		OriginalText:    e.OriginalText,
		TranscribedText: transcription,
		TargetLanguage:  e.TargetLanguage,
	})
	if err != nil {
		return domain.SpeakingExercise{}, fmt.Errorf("evaluate pronunciation: %w: %v", domain.ErrProviderFailure, err)
	}

	updated := e.Complete(transcription, prompts.ParsePronunciationFeedback(raw), recording)
	if err := s.d.Speaking.Save(ctx, updated); err != nil {
		return domain.SpeakingExercise{}, fmt.Errorf("save speaking exercise: %w", err)
	}
	return updated, nil
}

// EvaluateListening grades the learner's transcription of the audio against
// the original text.
func (s *Service) EvaluateListening(ctx context.Context, exerciseID, userTranscription string) (domain.ListeningExercise, error) {
	e, err := s.d.Listening.Get(ctx, exerciseID)
	if err != nil {
		return domain.ListeningExercise{}, err
	}
	if e == nil {
		return domain.ListeningExercise{}, domain.ErrNotFound
	}

	provider, err := s.d.BuildText(ctx)
	if err != nil {
		return domain.ListeningExercise{}, err
	}
	raw, err := provider.EvaluateListening(ctx, ports.ListeningEvaluationRequest{
		OriginalText:      e.OriginalText,
		UserTranscription: userTranscription,
		TargetLanguage:    e.TargetLanguage,
	})
	if err != nil {
		return domain.ListeningExercise{}, fmt.Errorf("evaluate listening: %w: %v", domain.ErrProviderFailure, err)
	}

	updated := e.Complete(userTranscription, prompts.ParseListeningFeedback(raw))
	if err := s.d.Listening.Save(ctx, updated); err != nil {
		return domain.ListeningExercise{}, fmt.Errorf("save listening exercise: %w", err)
	}
	return updated, nil
}

func (s *Service) GetSpeaking(ctx context.Context, id string) (domain.SpeakingExercise, error) {
	e, err := s.d.Speaking.Get(ctx, id)
	if err != nil {
		return domain.SpeakingExercise{}, err
	}
	if e == nil {
		return domain.SpeakingExercise{}, domain.ErrNotFound
	}
	return *e, nil
}

func (s *Service) ListSpeaking(ctx context.Context) ([]domain.SpeakingExercise, error) {
	return s.d.Speaking.List(ctx)
}

func (s *Service) DeleteSpeaking(ctx context.Context, id string) error {
	return s.d.Speaking.Delete(ctx, id)
}

func (s *Service) GetListening(ctx context.Context, id string) (domain.ListeningExercise, error) {
	e, err := s.d.Listening.Get(ctx, id)
	if err != nil {
		return domain.ListeningExercise{}, err
	}
	if e == nil {
		return domain.ListeningExercise{}, domain.ErrNotFound
	}
	return *e, nil
}

func (s *Service) ListListening(ctx context.Context) ([]domain.ListeningExercise, error) {
	return s.d.Listening.List(ctx)
}

// DeleteListening removes the exercise and evicts its cached audio.
func (s *Service) DeleteListening(ctx context.Context, id string) error {
	if err := s.d.Listening.Delete(ctx, id); err != nil {
		return err
	}
	return s.d.AudioCache.Delete(ctx, "listening_"+id)
}
