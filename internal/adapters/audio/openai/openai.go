// Package openai binds the audio provider port to the OpenAI speech APIs
// (tts-1 synthesis, whisper transcription).
package openai

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"lingocoach/internal/ports"
)

const defaultBaseURL = "https://api.openai.com/v1"

type Client struct {
	apiKey  string
	model   string
	voice   string
	baseURL string
	http    *resty.Client
}

func New(apiKey, model, voice string) *Client {
	if model == "" {
		model = "tts-1"
	}
	if voice == "" {
		voice = "alloy"
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		voice:   voice,
		baseURL: defaultBaseURL,
		http:    resty.New().SetTimeout(60 * time.Second),
	}
}

func (c *Client) TextToSpeech(ctx context.Context, req ports.TextToSpeechRequest) ([]byte, error) {
	voice := req.Voice
	if voice == "" {
		voice = c.voice
	}
	body := map[string]any{
		"model":           c.model,
		"input":           req.Text,
		"voice":           voice,
		"response_format": "mp3",
	}
	r, err := c.http.R().SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(c.baseURL + "/audio/speech")
	if err != nil {
		return nil, err
	}
	if r.IsError() {
		return nil, fmt.Errorf("openai tts error: %s", r.Status())
	}
	return r.Body(), nil
}

func (c *Client) SpeechToText(ctx context.Context, req ports.SpeechToTextRequest) (string, error) {
	var resp struct {
		Text string `json:"text"`
	}
	r, err := c.http.R().SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetFileReader("file", "audio.webm", bytes.NewReader(req.Audio)).
		SetFormData(map[string]string{
			"model":    "whisper-1",
			"language": languageCode(req.Language),
		}).
		SetResult(&resp).
		Post(c.baseURL + "/audio/transcriptions")
	if err != nil {
		return "", err
	}
	if r.IsError() {
		return "", fmt.Errorf("openai stt error: %s", r.Status())
	}
	return resp.Text, nil
}

func languageCode(language string) string {
	codes := map[string]string{
		"English": "en", "Français": "fr", "Español": "es", "Deutsch": "de",
		"Italiano": "it", "Português": "pt", "日本語": "ja", "中文": "zh",
		"한국어": "ko", "العربية": "ar", "Русский": "ru", "Nederlands": "nl",
		"Polski": "pl", "Türkçe": "tr", "Svenska": "sv",
	}
	if code, ok := codes[language]; ok {
		return code
	}
	return "en"
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

func (c *Client) ListModels(ctx context.Context, _ string) ([]string, error) {
	return []string{"tts-1", "tts-1-hd"}, nil
}

func (c *Client) ListVoices(ctx context.Context, _ string) ([]string, error) {
	return []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"}, nil
}
