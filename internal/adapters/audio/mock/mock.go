// Package mock provides a scripted audio provider for tests and offline runs.
package mock

import (
	"context"

	"lingocoach/internal/ports"
)

type AudioProvider struct {
	Audio         []byte
	Transcription string
	Err           error

	TTSCalls int
	STTCalls int
}

func NewAudioProvider() *AudioProvider { return &AudioProvider{} }

func (m *AudioProvider) TextToSpeech(_ context.Context, _ ports.TextToSpeechRequest) ([]byte, error) {
	m.TTSCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Audio == nil {
		return []byte("mock-audio"), nil
	}
	return m.Audio, nil
}

func (m *AudioProvider) SpeechToText(_ context.Context, _ ports.SpeechToTextRequest) (string, error) {
	m.STTCalls++
	if m.Err != nil {
		return "", m.Err
	}
	if m.Transcription == "" {
		return "mock transcription", nil
	}
	return m.Transcription, nil
}

func (m *AudioProvider) ValidateAPIKey(_ context.Context, _ string) (bool, error) {
	return m.Err == nil, nil
}

func (m *AudioProvider) ListModels(_ context.Context, _ string) ([]string, error) {
	return []string{"mock-tts"}, nil
}

func (m *AudioProvider) ListVoices(_ context.Context, _ string) ([]string, error) {
	return []string{"mock-voice"}, nil
}
