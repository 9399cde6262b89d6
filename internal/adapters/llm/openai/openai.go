// Package openai binds the text provider port to the OpenAI chat completions
// API.
package openai

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"lingocoach/internal/ports"
	"lingocoach/internal/prompts"
)

const defaultBaseURL = "https://api.openai.com/v1"

type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *resty.Client
}

func New(apiKey, model string) *Client {
	if model == "" {
		model = "gpt-4o"
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http:    resty.New().SetTimeout(60 * time.Second),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (c *Client) complete(ctx context.Context, messages []chatMessage) (string, error) {
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
	var apiErr struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	r, err := c.http.R().SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).SetResult(&resp).SetError(&apiErr).
		Post(c.baseURL + "/chat/completions")
	if err != nil {
		return "", err
	}
	if r.IsError() {
		if apiErr.Error.Message != "" {
			return "", fmt.Errorf("openai api error: %s", apiErr.Error.Message)
		}
		return "", fmt.Errorf("openai api error: %s", r.Status())
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no response generated")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("openai: invalid response format")
	}
	return content, nil
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

func (c *Client) ValidateAPIKey(ctx context.Context, apiKey string) (bool, error) {
	r, err := c.http.R().SetContext(ctx).
		SetHeader("Authorization", "Bearer "+apiKey).
		Get(c.baseURL + "/models")
	if err != nil {
		return false, nil
	}
	return !r.IsError(), nil
}

func (c *Client) ListModels(ctx context.Context, apiKey string) ([]string, error) {
	var resp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	r, err := c.http.R().SetContext(ctx).
		SetHeader("Authorization", "Bearer "+apiKey).
		SetResult(&resp).
		Get(c.baseURL + "/models")
	if err != nil || r.IsError() {
		return []string{}, nil
	}
	out := make([]string, 0, len(resp.Data))
	for _, m := range resp.Data {
		if strings.Contains(m.ID, "gpt") {
			out = append(out, m.ID)
		}
	}
	sort.Strings(out)
	return out, nil
}
