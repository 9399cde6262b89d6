package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"lingocoach/internal/domain"
	"lingocoach/internal/usecase/lesson"
)

type createLessonRequest struct {
	Title          string       `json:"title"`
	Level          domain.Level `json:"level"`
	Context        string       `json:"context"`
	TargetLanguage string       `json:"target_language"`
	NativeLanguage string       `json:"native_language"`
	ChatID         string       `json:"chat_id"`
}

func (s *Server) createLesson(w http.ResponseWriter, r *http.Request) {
	var req createLessonRequest
	if !decode(w, r, &req) {
		return
	}
	l, err := s.Lesson.Create(r.Context(), lesson.CreateArgs{
		Title:          req.Title,
		Level:          req.Level,
		Context:        req.Context,
		TargetLanguage: req.TargetLanguage,
		NativeLanguage: req.NativeLanguage,
		ChatID:         req.ChatID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) listLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := s.Lesson.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lessons)
}

func (s *Server) getLesson(w http.ResponseWriter, r *http.Request) {
	l, err := s.Lesson.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) deleteLesson(w http.ResponseWriter, r *http.Request) {
	if err := s.Lesson.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) generateLessonContent(w http.ResponseWriter, r *http.Request) {
	l, err := s.Lesson.GenerateContent(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

type contextRequest struct {
	PartialText    string       `json:"partial_text"`
	Level          domain.Level `json:"level"`
	TargetLanguage string       `json:"target_language"`
}

func (s *Server) suggestContext(w http.ResponseWriter, r *http.Request) {
	var req contextRequest
	if !decode(w, r, &req) {
		return
	}
	text, err := s.Lesson.SuggestContext(r.Context(), req.Level, req.TargetLanguage)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, text)
}

func (s *Server) completeContext(w http.ResponseWriter, r *http.Request) {
	var req contextRequest
	if !decode(w, r, &req) {
		return
	}
	text, err := s.Lesson.GenerateContext(r.Context(), req.PartialText, req.Level, req.TargetLanguage)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, text)
}
