package app

import (
	"net/http"

	"lingocoach/internal/domain"
)

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	st, err := s.Settings.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) saveSettings(w http.ResponseWriter, r *http.Request) {
	var st domain.Settings
	if !decode(w, r, &st) {
		return
	}
	if err := s.Settings.Save(r.Context(), st); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) updateLanguages(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TargetLanguage string       `json:"target_language"`
		NativeLanguage string       `json:"native_language"`
		Level          domain.Level `json:"level"`
	}
	if !decode(w, r, &req) {
		return
	}
	st, err := s.Settings.UpdateLanguages(r.Context(), req.TargetLanguage, req.NativeLanguage, req.Level)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) supportedLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"languages": s.Settings.SupportedLanguages()})
}

func (s *Server) updateTextProvider(w http.ResponseWriter, r *http.Request) {
	var cfg domain.TextProviderConfig
	if !decode(w, r, &cfg) {
		return
	}
	st, err := s.Settings.UpdateTextProvider(r.Context(), cfg)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) updateAudioProvider(w http.ResponseWriter, r *http.Request) {
	var cfg domain.AudioProviderConfig
	if !decode(w, r, &cfg) {
		return
	}
	st, err := s.Settings.UpdateAudioProvider(r.Context(), cfg)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
