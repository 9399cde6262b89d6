package domain

import (
	"time"

	"github.com/google/uuid"
)

// Level is the three-tier difficulty used across lessons and exercises.
type Level string

const (
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
	LevelC3 Level = "C3"
)

type VocabularyItem struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

type GrammarPoint struct {
	Title       string   `json:"title"`
	Explanation string   `json:"explanation"`
	Examples    []string `json:"examples"`
}

type ConjugationTable struct {
	Verb         string            `json:"verb"`
	Tense        string            `json:"tense"`
	Conjugations map[string]string `json:"conjugations"`
}

type LessonContent struct {
	Vocabulary   []VocabularyItem   `json:"vocabulary"`
	Grammar      []GrammarPoint     `json:"grammar"`
	Conjugations []ConjugationTable `json:"conjugations"`
}

func (c LessonContent) IsEmpty() bool {
	return len(c.Vocabulary) == 0 && len(c.Grammar) == 0 && len(c.Conjugations) == 0
}

type Lesson struct {
	ID                   string        `json:"id"`
	Title                string        `json:"title"`
	Level                Level         `json:"level"`
	Context              string        `json:"context"`
	Content              LessonContent `json:"content"`
	TargetLanguage       string        `json:"target_language"`
	NativeLanguage       string        `json:"native_language"`
	ChatID               string        `json:"chat_id,omitempty"`
	SpeakingExerciseIDs  []string      `json:"speaking_exercise_ids"`
	ListeningExerciseIDs []string      `json:"listening_exercise_ids"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

func NewLesson(title string, level Level, context, targetLanguage, nativeLanguage, chatID string) Lesson {
	now := time.Now().UTC()
	return Lesson{
		ID:             uuid.NewString(),
		Title:          title,
		Level:          level,
		Context:        context,
		TargetLanguage: targetLanguage,
		NativeLanguage: nativeLanguage,
		ChatID:         chatID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// WithContent replaces the lesson content wholesale. A regeneration call
// overwrites whatever was there before.
func (l Lesson) WithContent(content LessonContent) Lesson {
	l.Content = content
	l.UpdatedAt = time.Now().UTC()
	return l
}

func (l Lesson) LinkSpeakingExercise(exerciseID string) Lesson {
	ids := make([]string, 0, len(l.SpeakingExerciseIDs)+1)
	ids = append(ids, l.SpeakingExerciseIDs...)
	ids = append(ids, exerciseID)
	l.SpeakingExerciseIDs = ids
	l.UpdatedAt = time.Now().UTC()
	return l
}

func (l Lesson) LinkListeningExercise(exerciseID string) Lesson {
	ids := make([]string, 0, len(l.ListeningExerciseIDs)+1)
	ids = append(ids, l.ListeningExerciseIDs...)
	ids = append(ids, exerciseID)
	l.ListeningExerciseIDs = ids
	l.UpdatedAt = time.Now().UTC()
	return l
}
