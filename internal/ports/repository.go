package ports

import (
	"context"

	"lingocoach/internal/domain"
)

// Repositories return (zero, nil) when the id is absent; absence is not an
// error. Save is an idempotent whole-entity upsert by id.

type ChatRepository interface {
	Save(ctx context.Context, c domain.Chat) error
	Get(ctx context.Context, id string) (*domain.Chat, error)
	List(ctx context.Context) ([]domain.Chat, error)
	Delete(ctx context.Context, id string) error
}

type LessonRepository interface {
	Save(ctx context.Context, l domain.Lesson) error
	Get(ctx context.Context, id string) (*domain.Lesson, error)
	List(ctx context.Context) ([]domain.Lesson, error)
	Delete(ctx context.Context, id string) error
}

type SpeakingExerciseRepository interface {
	Save(ctx context.Context, e domain.SpeakingExercise) error
	Get(ctx context.Context, id string) (*domain.SpeakingExercise, error)
	List(ctx context.Context) ([]domain.SpeakingExercise, error)
	Delete(ctx context.Context, id string) error
}

type ListeningExerciseRepository interface {
	Save(ctx context.Context, e domain.ListeningExercise) error
	Get(ctx context.Context, id string) (*domain.ListeningExercise, error)
	List(ctx context.Context) ([]domain.ListeningExercise, error)
	Delete(ctx context.Context, id string) error
}

type SettingsRepository interface {
	Save(ctx context.Context, s domain.Settings) error
	Get(ctx context.Context) (*domain.Settings, error)
}

type CourseRepository interface {
	Save(ctx context.Context, c domain.Course) error
	Get(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
	Delete(ctx context.Context, id string) error
}

type ProgrammeRepository interface {
	Save(ctx context.Context, p domain.Programme) error
	Get(ctx context.Context, id string) (*domain.Programme, error)
	List(ctx context.Context) ([]domain.Programme, error)
	Delete(ctx context.Context, id string) error
}

// AudioCacheRepository keys blobs by derived strings such as
// "audio_<messageID>" or "listening_<exerciseID>". Entries are write-once,
// never refreshed.
type AudioCacheRepository interface {
	Put(ctx context.Context, key string, audio []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

type TranslationCacheRepository interface {
	Put(ctx context.Context, key, translation string) error
	Get(ctx context.Context, key string) (string, bool, error)
}
