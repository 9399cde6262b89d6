package lesson

import (
	"context"
	"fmt"

	"lingocoach/internal/domain"
	"lingocoach/internal/observability"
	"lingocoach/internal/ports"
	"lingocoach/internal/prompts"
)

type Deps struct {
	Lessons   ports.LessonRepository
	Chats     ports.ChatRepository
	BuildText func(ctx context.Context) (ports.TextProvider, error)
}

type Service struct{ d Deps }

func New(d Deps) *Service { return &Service{d: d} }

type CreateArgs struct {
	Title          string
	Level          domain.Level
	Context        string
	TargetLanguage string
	NativeLanguage string
	ChatID         string
}

// Create stores a new lesson shell. When a chat id is given, the lesson is
// linked back into the chat so the conversation records its derived lessons.
func (s *Service) Create(ctx context.Context, a CreateArgs) (domain.Lesson, error) {
	l := domain.NewLesson(a.Title, a.Level, a.Context, a.TargetLanguage, a.NativeLanguage, a.ChatID)
	if err := s.d.Lessons.Save(ctx, l); err != nil {
		return domain.Lesson{}, fmt.Errorf("save lesson: %w", err)
	}
	if a.ChatID != "" {
		c, err := s.d.Chats.Get(ctx, a.ChatID)
		if err != nil {
			observability.LoggerFromContext(ctx).Warn("load chat for lesson link",
				"chat_id", a.ChatID, "error", err.Error())
		}
		if c != nil {
			if err := s.d.Chats.Save(ctx, c.LinkLesson(l.ID)); err != nil {
				return domain.Lesson{}, fmt.Errorf("link lesson to chat: %w", err)
			}
		}
	}
	return l, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Lesson, error) {
	l, err := s.d.Lessons.Get(ctx, id)
	if err != nil {
		return domain.Lesson{}, err
	}
	if l == nil {
		return domain.Lesson{}, domain.ErrNotFound
	}
	return *l, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Lesson, error) {
	return s.d.Lessons.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.d.Lessons.Delete(ctx, id)
}

// GenerateContent asks the text provider for structured lesson material and
// replaces the lesson's content with the parsed result. A malformed model
// response degrades to a single grammar note holding the raw text; it never
// fails the call. When the lesson came from a chat, the conversation is sent
// along as grounding context.
func (s *Service) GenerateContent(ctx context.Context, lessonID string) (domain.Lesson, error) {
	l, err := s.d.Lessons.Get(ctx, lessonID)
	if err != nil {
		return domain.Lesson{}, err
	}
	if l == nil {
		return domain.Lesson{}, domain.ErrNotFound
	}

	var conversation []domain.Message
	if l.ChatID != "" {
		c, err := s.d.Chats.Get(ctx, l.ChatID)
		if err != nil {
			observability.LoggerFromContext(ctx).Warn("load chat for lesson context",
				"chat_id", l.ChatID, "error", err.Error())
		}
		if c != nil {
			conversation = c.Messages
		}
	}

	provider, err := s.d.BuildText(ctx)
	if err != nil {
		return domain.Lesson{}, err
	}
	raw, err := provider.GenerateLesson(ctx, ports.LessonGenerationRequest{
		Context:        l.Context,
		Level:          l.Level,
		TargetLanguage: l.TargetLanguage,
		NativeLanguage: l.NativeLanguage,
		Conversation:   conversation,
	})
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("generate lesson content: %w: %v", domain.ErrProviderFailure, err)
	}

	updated := l.WithContent(prompts.ParseLessonContent(raw))
	if err := s.d.Lessons.Save(ctx, updated); err != nil {
		return domain.Lesson{}, fmt.Errorf("save lesson: %w", err)
	}
	return updated, nil
}

// SuggestContext generates a fresh exercise-style text for the given level
// and returns its parsed form without persisting anything.
func (s *Service) SuggestContext(ctx context.Context, level domain.Level, targetLanguage string) (prompts.ExerciseText, error) {
	provider, err := s.d.BuildText(ctx)
	if err != nil {
		return prompts.ExerciseText{}, err
	}
	raw, err := provider.GenerateExerciseText(ctx, ports.TextCompletionRequest{
		TargetLanguage: targetLanguage,
		Level:          level,
	})
	if err != nil {
		return prompts.ExerciseText{}, fmt.Errorf("generate exercise text: %w: %v", domain.ErrProviderFailure, err)
	}
	return prompts.ParseExerciseText(raw), nil
}

// GenerateContext completes a partial text the learner started writing.
func (s *Service) GenerateContext(ctx context.Context, partialText string, level domain.Level, targetLanguage string) (prompts.ExerciseText, error) {
	provider, err := s.d.BuildText(ctx)
	if err != nil {
		return prompts.ExerciseText{}, err
	}
	raw, err := provider.CompleteText(ctx, ports.TextCompletionRequest{
		PartialText:    partialText,
		TargetLanguage: targetLanguage,
		Level:          level,
	})
	if err != nil {
		return prompts.ExerciseText{}, fmt.Errorf("complete text: %w: %v", domain.ErrProviderFailure, err)
	}
	return prompts.ParseExerciseText(raw), nil
}

// LinkSpeakingExercise and LinkListeningExercise attach exercise ids to a
// lesson after the exercise service has created them.
func (s *Service) LinkSpeakingExercise(ctx context.Context, lessonID, exerciseID string) (domain.Lesson, error) {
	l, err := s.d.Lessons.Get(ctx, lessonID)
	if err != nil {
		return domain.Lesson{}, err
	}
	if l == nil {
		return domain.Lesson{}, domain.ErrNotFound
	}
	updated := l.LinkSpeakingExercise(exerciseID)
	if err := s.d.Lessons.Save(ctx, updated); err != nil {
		return domain.Lesson{}, fmt.Errorf("save lesson: %w", err)
	}
	return updated, nil
}

func (s *Service) LinkListeningExercise(ctx context.Context, lessonID, exerciseID string) (domain.Lesson, error) {
	l, err := s.d.Lessons.Get(ctx, lessonID)
	if err != nil {
		return domain.Lesson{}, err
	}
	if l == nil {
		return domain.Lesson{}, domain.ErrNotFound
	}
	updated := l.LinkListeningExercise(exerciseID)
	if err := s.d.Lessons.Save(ctx, updated); err != nil {
		return domain.Lesson{}, fmt.Errorf("save lesson: %w", err)
	}
	return updated, nil
}
