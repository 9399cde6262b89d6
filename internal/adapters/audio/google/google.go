// Package google binds the audio provider port to Google Cloud Text-to-Speech
// (official SDK, API-key auth) and the Speech-to-Text REST endpoint.
package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"github.com/go-resty/resty/v2"
	"google.golang.org/api/option"
	texttospeechpb "google.golang.org/genproto/googleapis/cloud/texttospeech/v1"

	"lingocoach/internal/ports"
)

const (
	ttsBaseURL    = "https://texttospeech.googleapis.com/v1"
	speechBaseURL = "https://speech.googleapis.com/v1"
)

type Client struct {
	apiKey string
	voice  string
	tts    *texttospeech.Client
	http   *resty.Client
}

func New(ctx context.Context, apiKey, voice string) (*Client, error) {
	if voice == "" {
		voice = "en-US-Standard-A"
	}
	tts, err := texttospeech.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating google tts client: %w", err)
	}
	return &Client{
		apiKey: apiKey,
		voice:  voice,
		tts:    tts,
		http:   resty.New().SetTimeout(60 * time.Second),
	}, nil
}

func (c *Client) Close() error { return c.tts.Close() }

func (c *Client) TextToSpeech(ctx context.Context, req ports.TextToSpeechRequest) ([]byte, error) {
	voice := req.Voice
	if voice == "" {
		voice = c.voice
	}
	resp, err := c.tts.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: req.Text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageCode(req.Language),
			Name:         voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("google tts error: %w", err)
	}
	return resp.AudioContent, nil
}

func (c *Client) SpeechToText(ctx context.Context, req ports.SpeechToTextRequest) (string, error) {
	body := map[string]any{
		"config": map[string]any{
			"encoding":        "WEBM_OPUS",
			"sampleRateHertz": 48000,
			"languageCode":    languageCode(req.Language),
		},
		"audio": map[string]any{
			"content": base64.StdEncoding.EncodeToString(req.Audio),
		},
	}
	var resp struct {
		Results []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"results"`
	}
	r, err := c.http.R().SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).SetResult(&resp).
		Post(speechBaseURL + "/speech:recognize")
	if err != nil {
		return "", err
	}
	if r.IsError() {
		return "", fmt.Errorf("google stt error: %s", r.Status())
	}
	if len(resp.Results) == 0 || len(resp.Results[0].Alternatives) == 0 {
		return "", nil
	}
	return resp.Results[0].Alternatives[0].Transcript, nil
}

func languageCode(language string) string {
	codes := map[string]string{
		"English": "en-US", "Français": "fr-FR", "Español": "es-ES", "Deutsch": "de-DE",
		"Italiano": "it-IT", "Português": "pt-BR", "日本語": "ja-JP", "中文": "zh-CN",
		"한국어": "ko-KR", "العربية": "ar-XA", "Русский": "ru-RU", "Nederlands": "nl-NL",
		"Polski": "pl-PL", "Türkçe": "tr-TR", "Svenska": "sv-SE",
	}
	if code, ok := codes[language]; ok {
		return code
	}
	return "en-US"
}

func (c *Client) ValidateAPIKey(ctx context.Context, apiKey string) (bool, error) {
	r, err := c.http.R().SetContext(ctx).
		SetQueryParam("key", apiKey).
		Get(ttsBaseURL + "/voices")
	if err != nil {
		return false, nil
	}
	return !r.IsError(), nil
}

func (c *Client) ListModels(ctx context.Context, _ string) ([]string, error) {
	return []string{"Standard", "WaveNet", "Neural2"}, nil
}

func (c *Client) ListVoices(ctx context.Context, apiKey string) ([]string, error) {
	var resp struct {
		Voices []struct {
			Name string `json:"name"`
		} `json:"voices"`
	}
	r, err := c.http.R().SetContext(ctx).
		SetQueryParam("key", apiKey).
		SetResult(&resp).
		Get(ttsBaseURL + "/voices")
	if err != nil || r.IsError() {
		return []string{}, nil
	}
	out := make([]string, 0, 20)
	for _, v := range resp.Voices {
		out = append(out, v.Name)
		if len(out) == 20 {
			break
		}
	}
	return out, nil
}
