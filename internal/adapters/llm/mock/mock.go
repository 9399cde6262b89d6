// Package mock provides a scripted text provider for tests and offline runs.
package mock

import (
	"context"

	"lingocoach/internal/ports"
)

// TextProvider returns canned responses. Set the fields you care about;
// zero values fall back to fixed strings.
type TextProvider struct {
	Response      string
	Translation   string
	Suggestions   []string
	LessonRaw     string
	ExerciseRaw   string
	CompletionRaw string
	PronunRaw     string
	ListeningRaw  string
	Err           error

	Calls []string
}

func NewTextProvider() *TextProvider { return &TextProvider{} }

func (m *TextProvider) record(name string) { m.Calls = append(m.Calls, name) }

func (m *TextProvider) GenerateResponse(_ context.Context, _ ports.TextGenerationRequest) (string, error) {
	m.record("GenerateResponse")
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response == "" {
		return "mock reply", nil
	}
	return m.Response, nil
}

func (m *TextProvider) Translate(_ context.Context, _ ports.TranslationRequest) (string, error) {
	m.record("Translate")
	if m.Err != nil {
		return "", m.Err
	}
	if m.Translation == "" {
		return "mock translation", nil
	}
	return m.Translation, nil
}

func (m *TextProvider) SuggestResponses(_ context.Context, _ ports.SuggestionRequest) ([]string, error) {
	m.record("SuggestResponses")
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Suggestions == nil {
		return []string{"mock suggestion"}, nil
	}
	return m.Suggestions, nil
}

func (m *TextProvider) GenerateLesson(_ context.Context, _ ports.LessonGenerationRequest) (string, error) {
	m.record("GenerateLesson")
	return m.LessonRaw, m.Err
}

func (m *TextProvider) GenerateExerciseText(_ context.Context, _ ports.TextCompletionRequest) (string, error) {
	m.record("GenerateExerciseText")
	return m.ExerciseRaw, m.Err
}

func (m *TextProvider) CompleteText(_ context.Context, _ ports.TextCompletionRequest) (string, error) {
	m.record("CompleteText")
	return m.CompletionRaw, m.Err
}

func (m *TextProvider) EvaluatePronunciation(_ context.Context, _ ports.PronunciationEvaluationRequest) (string, error) {
	m.record("EvaluatePronunciation")
	return m.PronunRaw, m.Err
}

func (m *TextProvider) EvaluateListening(_ context.Context, _ ports.ListeningEvaluationRequest) (string, error) {
	m.record("EvaluateListening")
	return m.ListeningRaw, m.Err
}

func (m *TextProvider) ValidateAPIKey(_ context.Context, _ string) (bool, error) {
	m.record("ValidateAPIKey")
	return m.Err == nil, nil
}

func (m *TextProvider) ListModels(_ context.Context, _ string) ([]string, error) {
	m.record("ListModels")
	return []string{"mock-model"}, nil
}
