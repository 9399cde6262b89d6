package domain

import (
	"time"

	"github.com/google/uuid"
)

type PronunciationError struct {
	Word       string `json:"word"`
	Expected   string `json:"expected"`
	Actual     string `json:"actual"`
	Suggestion string `json:"suggestion"`
}

type PronunciationFeedback struct {
	Accuracy     int                  `json:"accuracy"`
	Errors       []PronunciationError `json:"errors"`
	OverallScore int                  `json:"overallScore"`
	Suggestions  []string             `json:"suggestions"`
}

type ListeningError struct {
	Position int    `json:"position"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

type ComprehensionLevel string

const (
	ComprehensionExcellent        ComprehensionLevel = "excellent"
	ComprehensionGood             ComprehensionLevel = "good"
	ComprehensionFair             ComprehensionLevel = "fair"
	ComprehensionNeedsImprovement ComprehensionLevel = "needs-improvement"
)

type ListeningFeedback struct {
	Accuracy           int                `json:"accuracy"`
	Errors             []ListeningError   `json:"errors"`
	SpellingErrors     []string           `json:"spellingErrors"`
	OverallScore       int                `json:"overallScore"`
	ComprehensionLevel ComprehensionLevel `json:"comprehensionLevel"`
}

type SpeakingExercise struct {
	ID             string                 `json:"id"`
	Title          string                 `json:"title"`
	Level          Level                  `json:"level"`
	OriginalText   string                 `json:"original_text"`
	Context        string                 `json:"context"`
	TargetLanguage string                 `json:"target_language"`
	NativeLanguage string                 `json:"native_language"`
	LessonID       string                 `json:"lesson_id,omitempty"`
	Recording      []byte                 `json:"recording,omitempty"`
	Transcription  string                 `json:"transcription,omitempty"`
	Feedback       *PronunciationFeedback `json:"feedback,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	CompletedAt    *time.Time             `json:"completed_at,omitempty"`
}

type ListeningExercise struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	Level             Level              `json:"level"`
	OriginalText      string             `json:"original_text"`
	Context           string             `json:"context"`
	Audio             []byte             `json:"audio,omitempty"`
	TargetLanguage    string             `json:"target_language"`
	NativeLanguage    string             `json:"native_language"`
	LessonID          string             `json:"lesson_id,omitempty"`
	UserTranscription string             `json:"user_transcription,omitempty"`
	Feedback          *ListeningFeedback `json:"feedback,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	CompletedAt       *time.Time         `json:"completed_at,omitempty"`
}

func NewSpeakingExercise(title string, level Level, originalText, context, targetLanguage, nativeLanguage, lessonID string) SpeakingExercise {
	now := time.Now().UTC()
	return SpeakingExercise{
		ID:             uuid.NewString(),
		Title:          title,
		Level:          level,
		OriginalText:   originalText,
		Context:        context,
		TargetLanguage: targetLanguage,
		NativeLanguage: nativeLanguage,
		LessonID:       lessonID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func NewListeningExercise(title string, level Level, originalText, context, targetLanguage, nativeLanguage, lessonID string) ListeningExercise {
	now := time.Now().UTC()
	return ListeningExercise{
		ID:             uuid.NewString(),
		Title:          title,
		Level:          level,
		OriginalText:   originalText,
		Context:        context,
		TargetLanguage: targetLanguage,
		NativeLanguage: nativeLanguage,
		LessonID:       lessonID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (e SpeakingExercise) IsComplete() bool  { return e.CompletedAt != nil }
func (e ListeningExercise) IsComplete() bool { return e.CompletedAt != nil }

// Complete records the evaluation result. Feedback is only ever set here.
func (e SpeakingExercise) Complete(transcription string, feedback PronunciationFeedback, recording []byte) SpeakingExercise {
	now := time.Now().UTC()
	e.Transcription = transcription
	e.Feedback = &feedback
	e.Recording = recording
	e.CompletedAt = &now
	e.UpdatedAt = now
	return e
}

func (e ListeningExercise) Complete(userTranscription string, feedback ListeningFeedback) ListeningExercise {
	now := time.Now().UTC()
	e.UserTranscription = userTranscription
	e.Feedback = &feedback
	e.CompletedAt = &now
	e.UpdatedAt = now
	return e
}

func (e ListeningExercise) WithAudio(audio []byte) ListeningExercise {
	e.Audio = audio
	e.UpdatedAt = time.Now().UTC()
	return e
}
