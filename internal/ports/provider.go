package ports

import (
	"context"

	"lingocoach/internal/domain"
)

type ChatTurn struct {
	Role    string
	Content string
}

type TextGenerationRequest struct {
	Messages       []ChatTurn
	TargetLanguage string
	NativeLanguage string
}

type TranslationRequest struct {
	Text           string
	SourceLanguage string
	TargetLanguage string
}

type SuggestionRequest struct {
	History        []domain.Message
	TargetLanguage string
	NativeLanguage string
}

type LessonGenerationRequest struct {
	Context        string
	Level          domain.Level
	TargetLanguage string
	NativeLanguage string
	Conversation   []domain.Message
}

type TextCompletionRequest struct {
	PartialText    string
	TargetLanguage string
	Level          domain.Level
}

type PronunciationEvaluationRequest struct {
	OriginalText    string
	TranscribedText string
	TargetLanguage  string
}

type ListeningEvaluationRequest struct {
	OriginalText      string
	UserTranscription string
	TargetLanguage    string
}

// TextProvider is the port every text vendor adapter implements. Generation
// methods return the raw model output; parsing structured responses is the
// caller's business. ValidateAPIKey and ListModels exist for settings
// configuration only and never run on the generation path.
type TextProvider interface {
	GenerateResponse(ctx context.Context, req TextGenerationRequest) (string, error)
	Translate(ctx context.Context, req TranslationRequest) (string, error)
	SuggestResponses(ctx context.Context, req SuggestionRequest) ([]string, error)
	GenerateLesson(ctx context.Context, req LessonGenerationRequest) (string, error)
	GenerateExerciseText(ctx context.Context, req TextCompletionRequest) (string, error)
	CompleteText(ctx context.Context, req TextCompletionRequest) (string, error)
	EvaluatePronunciation(ctx context.Context, req PronunciationEvaluationRequest) (string, error)
	EvaluateListening(ctx context.Context, req ListeningEvaluationRequest) (string, error)
	ValidateAPIKey(ctx context.Context, apiKey string) (bool, error)
	ListModels(ctx context.Context, apiKey string) ([]string, error)
}

type TextToSpeechRequest struct {
	Text     string
	Language string
	Voice    string
}

type SpeechToTextRequest struct {
	Audio    []byte
	Language string
}

// AudioProvider is the port for TTS/STT vendors. Audio travels as opaque
// byte slices.
type AudioProvider interface {
	TextToSpeech(ctx context.Context, req TextToSpeechRequest) ([]byte, error)
	SpeechToText(ctx context.Context, req SpeechToTextRequest) (string, error)
	ValidateAPIKey(ctx context.Context, apiKey string) (bool, error)
	ListModels(ctx context.Context, apiKey string) ([]string, error)
	ListVoices(ctx context.Context, apiKey string) ([]string, error)
}

// ProviderValidator checks API keys and enumerates models/voices before a
// provider config is persisted.
type ProviderValidator interface {
	ValidateTextKey(ctx context.Context, cfg domain.TextProviderConfig) (bool, error)
	TextModels(ctx context.Context, cfg domain.TextProviderConfig) ([]string, error)
	ValidateAudioKey(ctx context.Context, cfg domain.AudioProviderConfig) (bool, error)
	AudioModels(ctx context.Context, cfg domain.AudioProviderConfig) ([]string, error)
	AudioVoices(ctx context.Context, cfg domain.AudioProviderConfig) ([]string, error)
}
