// Package gemini binds the text provider port to the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"google.golang.org/genai"

	"lingocoach/internal/ports"
	"lingocoach/internal/prompts"
)

const restBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type Client struct {
	apiKey string
	model  string
	client *genai.Client
	http   *resty.Client
}

func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		client: client,
		http:   resty.New().SetTimeout(30 * time.Second),
	}, nil
}

func (c *Client) generate(ctx context.Context, system string, contents []*genai.Content) (string, error) {
	temp := float32(0.7)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: 2048,
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	res, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini api error: %w", err)
	}
	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	return c.generate(ctx, system, []*genai.Content{genai.NewContentFromText(user, genai.RoleUser)})
}

func (c *Client) GenerateResponse(ctx context.Context, req ports.TextGenerationRequest) (string, error) {
	var system string
	var contents []*genai.Content
	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			system = m.Content
		case "assistant":
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	return c.generate(ctx, system, contents)
}

func (c *Client) Translate(ctx context.Context, req ports.TranslationRequest) (string, error) {
	return c.complete(ctx,
		prompts.TranslationSystemPrompt(req.SourceLanguage, req.TargetLanguage),
		prompts.TranslationUserPrompt(req.Text),
	)
}

func (c *Client) SuggestResponses(ctx context.Context, req ports.SuggestionRequest) ([]string, error) {
	response, err := c.complete(ctx,
		prompts.SuggestionSystemPrompt(req.TargetLanguage, req.NativeLanguage),
		prompts.SuggestionUserPrompt(req.History),
	)
	if err != nil {
		return nil, err
	}
	return prompts.ParseSuggestions(response), nil
}

func (c *Client) GenerateLesson(ctx context.Context, req ports.LessonGenerationRequest) (string, error) {
	return c.complete(ctx,
		prompts.LessonSystemPrompt(req.Level, req.TargetLanguage, req.NativeLanguage),
		prompts.LessonUserPrompt(req.Context, req.Conversation),
	)
}

func (c *Client) GenerateExerciseText(ctx context.Context, req ports.TextCompletionRequest) (string, error) {
	return c.complete(ctx,
		prompts.ExerciseTextSystemPrompt(req.TargetLanguage, req.Level),
		prompts.ExerciseTextUserPrompt(req.PartialText, req.Level, req.TargetLanguage),
	)
}

func (c *Client) CompleteText(ctx context.Context, req ports.TextCompletionRequest) (string, error) {
	return c.complete(ctx,
		prompts.CompletionSystemPrompt(req.TargetLanguage, req.Level),
		prompts.CompletionUserPrompt(req.PartialText),
	)
}

func (c *Client) EvaluatePronunciation(ctx context.Context, req ports.PronunciationEvaluationRequest) (string, error) {
	return c.complete(ctx,
		prompts.PronunciationSystemPrompt(req.TargetLanguage),
		prompts.PronunciationUserPrompt(req.OriginalText, req.TranscribedText),
	)
}

func (c *Client) EvaluateListening(ctx context.Context, req ports.ListeningEvaluationRequest) (string, error) {
	return c.complete(ctx,
		prompts.ListeningSystemPrompt(req.TargetLanguage),
		prompts.ListeningUserPrompt(req.OriginalText, req.UserTranscription),
	)
}

func (c *Client) ValidateAPIKey(ctx context.Context, apiKey string) (bool, error) {
	r, err := c.http.R().SetContext(ctx).
		SetQueryParam("key", apiKey).
		Get(restBaseURL + "/models")
	if err != nil {
		return false, nil
	}
	return !r.IsError(), nil
}

func (c *Client) ListModels(ctx context.Context, apiKey string) ([]string, error) {
	var resp struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	r, err := c.http.R().SetContext(ctx).
		SetQueryParam("key", apiKey).
		SetResult(&resp).
		Get(restBaseURL + "/models")
	if err != nil || r.IsError() {
		return []string{}, nil
	}
	out := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		name := strings.TrimPrefix(m.Name, "models/")
		if strings.Contains(name, "gemini") {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}
