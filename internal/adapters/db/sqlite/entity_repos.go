package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"lingocoach/internal/domain"
)

type ChatRepo struct{ docRepo }

func NewChatRepo(db *sql.DB) *ChatRepo {
	return &ChatRepo{docRepo{Repo: NewRepo(db), table: "chats"}}
}

func (r *ChatRepo) Save(ctx context.Context, c domain.Chat) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal chat: %w", err)
	}
	return r.put(ctx, c.ID, data, c.CreatedAt, c.UpdatedAt)
}

func (r *ChatRepo) Get(ctx context.Context, id string) (*domain.Chat, error) {
	data, err := r.get(ctx, id)
	if err != nil || data == nil {
		return nil, err
	}
	var c domain.Chat
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal chat %s: %w", id, err)
	}
	return &c, nil
}

func (r *ChatRepo) List(ctx context.Context) ([]domain.Chat, error) {
	rows, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Chat, 0, len(rows))
	for _, data := range rows {
		var c domain.Chat
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("unmarshal chat: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *ChatRepo) Delete(ctx context.Context, id string) error { return r.delete(ctx, id) }

type LessonRepo struct{ docRepo }

func NewLessonRepo(db *sql.DB) *LessonRepo {
	return &LessonRepo{docRepo{Repo: NewRepo(db), table: "lessons"}}
}

func (r *LessonRepo) Save(ctx context.Context, l domain.Lesson) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("marshal lesson: %w", err)
	}
	return r.put(ctx, l.ID, data, l.CreatedAt, l.UpdatedAt)
}

func (r *LessonRepo) Get(ctx context.Context, id string) (*domain.Lesson, error) {
	data, err := r.get(ctx, id)
	if err != nil || data == nil {
		return nil, err
	}
	var l domain.Lesson
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("unmarshal lesson %s: %w", id, err)
	}
	return &l, nil
}

func (r *LessonRepo) List(ctx context.Context) ([]domain.Lesson, error) {
	rows, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Lesson, 0, len(rows))
	for _, data := range rows {
		var l domain.Lesson
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("unmarshal lesson: %w", err)
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *LessonRepo) Delete(ctx context.Context, id string) error { return r.delete(ctx, id) }

type SpeakingExerciseRepo struct{ docRepo }

func NewSpeakingExerciseRepo(db *sql.DB) *SpeakingExerciseRepo {
	return &SpeakingExerciseRepo{docRepo{Repo: NewRepo(db), table: "speaking_exercises"}}
}

func (r *SpeakingExerciseRepo) Save(ctx context.Context, e domain.SpeakingExercise) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal speaking exercise: %w", err)
	}
	return r.put(ctx, e.ID, data, e.CreatedAt, e.UpdatedAt)
}

func (r *SpeakingExerciseRepo) Get(ctx context.Context, id string) (*domain.SpeakingExercise, error) {
	data, err := r.get(ctx, id)
	if err != nil || data == nil {
		return nil, err
	}
	var e domain.SpeakingExercise
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal speaking exercise %s: %w", id, err)
	}
	return &e, nil
}

func (r *SpeakingExerciseRepo) List(ctx context.Context) ([]domain.SpeakingExercise, error) {
	rows, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SpeakingExercise, 0, len(rows))
	for _, data := range rows {
		var e domain.SpeakingExercise
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("unmarshal speaking exercise: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *SpeakingExerciseRepo) Delete(ctx context.Context, id string) error { return r.delete(ctx, id) }

type ListeningExerciseRepo struct{ docRepo }

func NewListeningExerciseRepo(db *sql.DB) *ListeningExerciseRepo {
	return &ListeningExerciseRepo{docRepo{Repo: NewRepo(db), table: "listening_exercises"}}
}

func (r *ListeningExerciseRepo) Save(ctx context.Context, e domain.ListeningExercise) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal listening exercise: %w", err)
	}
	return r.put(ctx, e.ID, data, e.CreatedAt, e.UpdatedAt)
}

func (r *ListeningExerciseRepo) Get(ctx context.Context, id string) (*domain.ListeningExercise, error) {
	data, err := r.get(ctx, id)
	if err != nil || data == nil {
		return nil, err
	}
	var e domain.ListeningExercise
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal listening exercise %s: %w", id, err)
	}
	return &e, nil
}

func (r *ListeningExerciseRepo) List(ctx context.Context) ([]domain.ListeningExercise, error) {
	rows, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ListeningExercise, 0, len(rows))
	for _, data := range rows {
		var e domain.ListeningExercise
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("unmarshal listening exercise: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *ListeningExerciseRepo) Delete(ctx context.Context, id string) error { return r.delete(ctx, id) }

type CourseRepo struct{ docRepo }

func NewCourseRepo(db *sql.DB) *CourseRepo {
	return &CourseRepo{docRepo{Repo: NewRepo(db), table: "courses"}}
}

func (r *CourseRepo) Save(ctx context.Context, c domain.Course) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal course: %w", err)
	}
	return r.put(ctx, c.ID, data, c.CreatedAt, c.UpdatedAt)
}

func (r *CourseRepo) Get(ctx context.Context, id string) (*domain.Course, error) {
	data, err := r.get(ctx, id)
	if err != nil || data == nil {
		return nil, err
	}
	var c domain.Course
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal course %s: %w", id, err)
	}
	return &c, nil
}

func (r *CourseRepo) List(ctx context.Context) ([]domain.Course, error) {
	rows, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Course, 0, len(rows))
	for _, data := range rows {
		var c domain.Course
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("unmarshal course: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CourseRepo) Delete(ctx context.Context, id string) error { return r.delete(ctx, id) }

type ProgrammeRepo struct{ docRepo }

func NewProgrammeRepo(db *sql.DB) *ProgrammeRepo {
	return &ProgrammeRepo{docRepo{Repo: NewRepo(db), table: "programmes"}}
}

func (r *ProgrammeRepo) Save(ctx context.Context, p domain.Programme) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal programme: %w", err)
	}
	return r.put(ctx, p.ID, data, p.CreatedAt, p.UpdatedAt)
}

func (r *ProgrammeRepo) Get(ctx context.Context, id string) (*domain.Programme, error) {
	data, err := r.get(ctx, id)
	if err != nil || data == nil {
		return nil, err
	}
	var p domain.Programme
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal programme %s: %w", id, err)
	}
	return &p, nil
}

func (r *ProgrammeRepo) List(ctx context.Context) ([]domain.Programme, error) {
	rows, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Programme, 0, len(rows))
	for _, data := range rows {
		var p domain.Programme
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("unmarshal programme: %w", err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *ProgrammeRepo) Delete(ctx context.Context, id string) error { return r.delete(ctx, id) }
