package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	audiomock "lingocoach/internal/adapters/audio/mock"
	llmmock "lingocoach/internal/adapters/llm/mock"
	"lingocoach/internal/adapters/storage/memory"
	"lingocoach/internal/api/app"
	"lingocoach/internal/domain"
	"lingocoach/internal/ports"
	"lingocoach/internal/usecase/catalog"
	"lingocoach/internal/usecase/chat"
	"lingocoach/internal/usecase/exercise"
	"lingocoach/internal/usecase/lesson"
	"lingocoach/internal/usecase/settings"
)

type fakeValidator struct{}

func (fakeValidator) ValidateTextKey(context.Context, domain.TextProviderConfig) (bool, error) {
	return true, nil
}
func (fakeValidator) TextModels(context.Context, domain.TextProviderConfig) ([]string, error) {
	return []string{"gpt-4o"}, nil
}
func (fakeValidator) ValidateAudioKey(context.Context, domain.AudioProviderConfig) (bool, error) {
	return true, nil
}
func (fakeValidator) AudioModels(context.Context, domain.AudioProviderConfig) ([]string, error) {
	return []string{"tts-1"}, nil
}
func (fakeValidator) AudioVoices(context.Context, domain.AudioProviderConfig) ([]string, error) {
	return []string{"alloy"}, nil
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	text := llmmock.NewTextProvider()
	text.Response = "Bonjour!"
	audio := audiomock.NewAudioProvider()
	buildText := func(context.Context) (ports.TextProvider, error) { return text, nil }
	buildAudio := func(context.Context) (ports.AudioProvider, error) { return audio, nil }

	chats := memory.NewChatStore()
	lessons := memory.NewLessonStore()

	srv := &app.Server{
		Chat: chat.New(chat.Deps{
			Chats:        chats,
			AudioCache:   memory.NewAudioCache(),
			Translations: memory.NewTranslationCache(),
			BuildText:    buildText,
			BuildAudio:   buildAudio,
		}),
		Lesson: lesson.New(lesson.Deps{
			Lessons:   lessons,
			Chats:     chats,
			BuildText: buildText,
		}),
		Exercise: exercise.New(exercise.Deps{
			Speaking:   memory.NewSpeakingExerciseStore(),
			Listening:  memory.NewListeningExerciseStore(),
			Lessons:    lessons,
			AudioCache: memory.NewAudioCache(),
			BuildText:  buildText,
			BuildAudio: buildAudio,
		}),
		Settings: settings.New(settings.Deps{
			Settings:  memory.NewSettingsStore(),
			Validator: fakeValidator{},
		}),
		Catalog: catalog.New(catalog.Deps{
			Courses:    memory.NewCourseStore(),
			Programmes: memory.NewProgrammeStore(),
		}),
	}
	return srv.Router()
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestCreateChatAndSendMessage(t *testing.T) {
	srv := newTestServer(t)

	body := []byte(`{"target_language":"English","native_language":"Français","title":"Test"}`)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/chats", bytes.NewReader(body)))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d, body=%s", w.Code, w.Body.String())
	}
	var created domain.Chat
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode chat: %v", err)
	}

	w = httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/chats/"+created.ID+"/messages",
		bytes.NewReader([]byte(`{"content":"Hello"}`))))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Chat  domain.Chat    `json:"chat"`
		Reply domain.Message `json:"reply"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Reply.Content != "Bonjour!" {
		t.Fatalf("reply = %q", resp.Reply.Content)
	}
	if len(resp.Chat.Messages) != 2 {
		t.Fatalf("chat has %d messages, want 2", len(resp.Chat.Messages))
	}
}

func TestGetUnknownChatIs404(t *testing.T) {
	srv := newTestServer(t)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chats/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestInvalidBodyIs400(t *testing.T) {
	srv := newTestServer(t)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/chats", bytes.NewReader([]byte("{not json"))))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPublishArchivedCourseIs400(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/courses",
		bytes.NewReader([]byte(`{"title":"C","level":"C1"}`))))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var c domain.Course
	if err := json.Unmarshal(w.Body.Bytes(), &c); err != nil {
		t.Fatal(err)
	}

	w = httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/courses/"+c.ID+"/archive", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("archive: expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/courses/"+c.ID+"/publish", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("publish after archive: expected 400, got %d", w.Code)
	}
}

func TestSettingsDefaults(t *testing.T) {
	srv := newTestServer(t)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var st domain.Settings
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	if st.TargetLanguage != "English" {
		t.Fatalf("default target = %q", st.TargetLanguage)
	}
}
