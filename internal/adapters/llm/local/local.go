// Package local binds the text provider port to a user-hosted inference
// server. Two wire dialects exist: lmstudio speaks the OpenAI-compatible
// /v1 surface, ollama has its own /api surface. Both normalize to the same
// return contract.
package local

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"lingocoach/internal/domain"
	"lingocoach/internal/ports"
	"lingocoach/internal/prompts"
)

type Client struct {
	endpoint string
	model    string
	dialect  domain.LocalDialect
	http     *resty.Client
}

func New(endpoint, model string, dialect domain.LocalDialect) *Client {
	if endpoint == "" {
		endpoint = "http://localhost:11434"
	}
	if dialect == "" {
		dialect = domain.DialectLMStudio
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		dialect:  dialect,
		http:     resty.New().SetTimeout(120 * time.Second),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (c *Client) complete(ctx context.Context, messages []chatMessage) (string, error) {
	switch c.dialect {
	case domain.DialectOllama:
		return c.completeOllama(ctx, messages)
	default:
		return c.completeOpenAI(ctx, messages)
	}
}

func (c *Client) completeOllama(ctx context.Context, messages []chatMessage) (string, error) {
	body := map[string]any{
		"model":    c.model,
		"messages": messages,
		"stream":   false,
	}
	var resp struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	r, err := c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).SetResult(&resp).
		Post(c.endpoint + "/api/chat")
	if err != nil {
		return "", err
	}
	if r.IsError() {
		return "", fmt.Errorf("local provider error: %s", r.Status())
	}
	return resp.Message.Content, nil
}

func (c *Client) completeOpenAI(ctx context.Context, messages []chatMessage) (string, error) {
	body := map[string]any{
		"model":       c.model,
		"messages":    messages,
		"temperature": 0.7,
	}
	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	r, err := c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).SetResult(&resp).
		Post(c.endpoint + "/v1/chat/completions")
	if err != nil {
		return "", err
	}
	if r.IsError() {
		return "", fmt.Errorf("local provider error: %s", r.Status())
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("local provider: no response generated")
	}
	return resp.Choices[0].Message.Content, nil
}

func systemUser(system, user string) []chatMessage {
	return []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

func (c *Client) GenerateResponse(ctx context.Context, req ports.TextGenerationRequest) (string, error) {
	messages := make([]chatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, chatMessage{Role: m.Role, Content: m.Content})
	}
	return c.complete(ctx, messages)
}

func (c *Client) Translate(ctx context.Context, req ports.TranslationRequest) (string, error) {
	return c.complete(ctx, systemUser(
		prompts.TranslationSystemPrompt(req.SourceLanguage, req.TargetLanguage),
		prompts.TranslationUserPrompt(req.Text),
	))
}

func (c *Client) SuggestResponses(ctx context.Context, req ports.SuggestionRequest) ([]string, error) {
	response, err := c.complete(ctx, systemUser(
		prompts.SuggestionSystemPrompt(req.TargetLanguage, req.NativeLanguage),
		prompts.SuggestionUserPrompt(req.History),
	))
	if err != nil {
		return nil, err
	}
	return prompts.ParseSuggestions(response), nil
}

func (c *Client) GenerateLesson(ctx context.Context, req ports.LessonGenerationRequest) (string, error) {
	return c.complete(ctx, systemUser(
		prompts.LessonSystemPrompt(req.Level, req.TargetLanguage, req.NativeLanguage),
		prompts.LessonUserPrompt(req.Context, req.Conversation),
	))
}

func (c *Client) GenerateExerciseText(ctx context.Context, req ports.TextCompletionRequest) (string, error) {
	return c.complete(ctx, systemUser(
		prompts.ExerciseTextSystemPrompt(req.TargetLanguage, req.Level),
		prompts.ExerciseTextUserPrompt(req.PartialText, req.Level, req.TargetLanguage),
	))
}

func (c *Client) CompleteText(ctx context.Context, req ports.TextCompletionRequest) (string, error) {
	return c.complete(ctx, systemUser(
		prompts.CompletionSystemPrompt(req.TargetLanguage, req.Level),
		prompts.CompletionUserPrompt(req.PartialText),
	))
}

func (c *Client) EvaluatePronunciation(ctx context.Context, req ports.PronunciationEvaluationRequest) (string, error) {
	return c.complete(ctx, systemUser(
		prompts.PronunciationSystemPrompt(req.TargetLanguage),
		prompts.PronunciationUserPrompt(req.OriginalText, req.TranscribedText),
	))
}

func (c *Client) EvaluateListening(ctx context.Context, req ports.ListeningEvaluationRequest) (string, error) {
	return c.complete(ctx, systemUser(
		prompts.ListeningSystemPrompt(req.TargetLanguage),
		prompts.ListeningUserPrompt(req.OriginalText, req.UserTranscription),
	))
}

func (c *Client) modelsURL() string {
	if c.dialect == domain.DialectOllama {
		return c.endpoint + "/api/tags"
	}
	return c.endpoint + "/v1/models"
}

// ValidateAPIKey checks endpoint reachability; local servers have no key.
func (c *Client) ValidateAPIKey(ctx context.Context, _ string) (bool, error) {
	r, err := c.http.R().SetContext(ctx).Get(c.modelsURL())
	if err != nil {
		return false, nil
	}
	return !r.IsError(), nil
}

func (c *Client) ListModels(ctx context.Context, _ string) ([]string, error) {
	if c.dialect == domain.DialectOllama {
		var resp struct {
			Models []struct {
				Name string `json:"name"`
			} `json:"models"`
		}
		r, err := c.http.R().SetContext(ctx).SetResult(&resp).Get(c.modelsURL())
		if err != nil || r.IsError() {
			return []string{}, nil
		}
		out := make([]string, 0, len(resp.Models))
		for _, m := range resp.Models {
			out = append(out, m.Name)
		}
		return out, nil
	}
	var resp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	r, err := c.http.R().SetContext(ctx).SetResult(&resp).Get(c.modelsURL())
	if err != nil || r.IsError() {
		return []string{}, nil
	}
	out := make([]string, 0, len(resp.Data))
	for _, m := range resp.Data {
		out = append(out, m.ID)
	}
	return out, nil
}
