// Package app exposes the application services over an HTTP JSON API.
package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"lingocoach/internal/domain"
	"lingocoach/internal/observability"
	"lingocoach/internal/usecase/catalog"
	"lingocoach/internal/usecase/chat"
	"lingocoach/internal/usecase/exercise"
	"lingocoach/internal/usecase/lesson"
	"lingocoach/internal/usecase/settings"
)

type Server struct {
	Chat     *chat.Service
	Lesson   *lesson.Service
	Exercise *exercise.Service
	Settings *settings.Service
	Catalog  *catalog.Service
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestID, logging)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/chats", s.createChat).Methods(http.MethodPost)
	r.HandleFunc("/api/chats", s.listChats).Methods(http.MethodGet)
	r.HandleFunc("/api/chats/{id}", s.getChat).Methods(http.MethodGet)
	r.HandleFunc("/api/chats/{id}", s.deleteChat).Methods(http.MethodDelete)
	r.HandleFunc("/api/chats/{id}/title", s.renameChat).Methods(http.MethodPut)
	r.HandleFunc("/api/chats/{id}/messages", s.sendMessage).Methods(http.MethodPost)
	r.HandleFunc("/api/chats/{id}/messages/{messageID}/audio", s.messageAudio).Methods(http.MethodPost)
	r.HandleFunc("/api/chats/{id}/messages/{messageID}/translation", s.translateMessage).Methods(http.MethodPost)
	r.HandleFunc("/api/chats/{id}/suggestions", s.suggestResponses).Methods(http.MethodGet)

	r.HandleFunc("/api/lessons", s.createLesson).Methods(http.MethodPost)
	r.HandleFunc("/api/lessons", s.listLessons).Methods(http.MethodGet)
	r.HandleFunc("/api/lessons/{id}", s.getLesson).Methods(http.MethodGet)
	r.HandleFunc("/api/lessons/{id}", s.deleteLesson).Methods(http.MethodDelete)
	r.HandleFunc("/api/lessons/{id}/content", s.generateLessonContent).Methods(http.MethodPost)
	r.HandleFunc("/api/lessons/context/suggest", s.suggestContext).Methods(http.MethodPost)
	r.HandleFunc("/api/lessons/context/complete", s.completeContext).Methods(http.MethodPost)

	r.HandleFunc("/api/exercises/speaking", s.createSpeaking).Methods(http.MethodPost)
	r.HandleFunc("/api/exercises/speaking", s.listSpeaking).Methods(http.MethodGet)
	r.HandleFunc("/api/exercises/speaking/{id}", s.getSpeaking).Methods(http.MethodGet)
	r.HandleFunc("/api/exercises/speaking/{id}", s.deleteSpeaking).Methods(http.MethodDelete)
	r.HandleFunc("/api/exercises/speaking/{id}/evaluation", s.evaluateSpeaking).Methods(http.MethodPost)
	r.HandleFunc("/api/exercises/listening", s.createListening).Methods(http.MethodPost)
	r.HandleFunc("/api/exercises/listening", s.listListening).Methods(http.MethodGet)
	r.HandleFunc("/api/exercises/listening/{id}", s.getListening).Methods(http.MethodGet)
	r.HandleFunc("/api/exercises/listening/{id}", s.deleteListening).Methods(http.MethodDelete)
	r.HandleFunc("/api/exercises/listening/{id}/audio", s.listeningAudio).Methods(http.MethodGet)
	r.HandleFunc("/api/exercises/listening/{id}/evaluation", s.evaluateListening).Methods(http.MethodPost)

	r.HandleFunc("/api/settings", s.getSettings).Methods(http.MethodGet)
	r.HandleFunc("/api/settings", s.saveSettings).Methods(http.MethodPut)
	r.HandleFunc("/api/settings/languages", s.updateLanguages).Methods(http.MethodPut)
	r.HandleFunc("/api/settings/languages/supported", s.supportedLanguages).Methods(http.MethodGet)
	r.HandleFunc("/api/settings/text-provider", s.updateTextProvider).Methods(http.MethodPut)
	r.HandleFunc("/api/settings/audio-provider", s.updateAudioProvider).Methods(http.MethodPut)

	s.catalogRoutes(r)
	return r
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(observability.WithRequestID(r.Context(), id)))
	})
}

func logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		observability.LoggerFromContext(r.Context()).Info("request",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start).String())
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrMessageNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrProviderFailure):
		status = http.StatusBadGateway
	}
	if status >= 500 {
		observability.LoggerFromContext(r.Context()).Error("request failed",
			"method", r.Method, "path", r.URL.Path, "error", err.Error())
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}
