package app

import (
	"encoding/base64"
	"net/http"

	"github.com/gorilla/mux"

	"lingocoach/internal/domain"
	"lingocoach/internal/usecase/exercise"
)

type createExerciseRequest struct {
	Level          domain.Level `json:"level"`
	PartialText    string       `json:"partial_text"`
	TargetLanguage string       `json:"target_language"`
	NativeLanguage string       `json:"native_language"`
	LessonID       string       `json:"lesson_id"`
}

func (r createExerciseRequest) args() exercise.CreateArgs {
	return exercise.CreateArgs{
		Level:          r.Level,
		PartialText:    r.PartialText,
		TargetLanguage: r.TargetLanguage,
		NativeLanguage: r.NativeLanguage,
		LessonID:       r.LessonID,
	}
}

func (s *Server) createSpeaking(w http.ResponseWriter, r *http.Request) {
	var req createExerciseRequest
	if !decode(w, r, &req) {
		return
	}
	e, err := s.Exercise.CreateSpeaking(r.Context(), req.args())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) createListening(w http.ResponseWriter, r *http.Request) {
	var req createExerciseRequest
	if !decode(w, r, &req) {
		return
	}
	e, err := s.Exercise.CreateListening(r.Context(), req.args())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) listSpeaking(w http.ResponseWriter, r *http.Request) {
	es, err := s.Exercise.ListSpeaking(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, es)
}

func (s *Server) getSpeaking(w http.ResponseWriter, r *http.Request) {
	e, err := s.Exercise.GetSpeaking(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) deleteSpeaking(w http.ResponseWriter, r *http.Request) {
	if err := s.Exercise.DeleteSpeaking(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listListening(w http.ResponseWriter, r *http.Request) {
	es, err := s.Exercise.ListListening(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, es)
}

func (s *Server) getListening(w http.ResponseWriter, r *http.Request) {
	e, err := s.Exercise.GetListening(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) deleteListening(w http.ResponseWriter, r *http.Request) {
	if err := s.Exercise.DeleteListening(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listeningAudio(w http.ResponseWriter, r *http.Request) {
	audio, err := s.Exercise.GenerateListeningAudio(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"audio": base64.StdEncoding.EncodeToString(audio)})
}

func (s *Server) evaluateSpeaking(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Recording string `json:"recording"` // base64 audio
	}
	if !decode(w, r, &req) {
		return
	}
	recording, err := base64.StdEncoding.DecodeString(req.Recording)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid recording encoding"})
		return
	}
	e, err := s.Exercise.EvaluateSpeaking(r.Context(), mux.Vars(r)["id"], recording)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) evaluateListening(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transcription string `json:"transcription"`
	}
	if !decode(w, r, &req) {
		return
	}
	e, err := s.Exercise.EvaluateListening(r.Context(), mux.Vars(r)["id"], req.Transcription)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}
