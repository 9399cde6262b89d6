package app

import (
	"encoding/base64"
	"net/http"

	"github.com/gorilla/mux"
)

type createChatRequest struct {
	TargetLanguage string `json:"target_language"`
	NativeLanguage string `json:"native_language"`
	Title          string `json:"title"`
}

func (s *Server) createChat(w http.ResponseWriter, r *http.Request) {
	var req createChatRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := s.Chat.Create(r.Context(), req.TargetLanguage, req.NativeLanguage, req.Title)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) listChats(w http.ResponseWriter, r *http.Request) {
	chats, err := s.Chat.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

func (s *Server) getChat(w http.ResponseWriter, r *http.Request) {
	c, err := s.Chat.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteChat(w http.ResponseWriter, r *http.Request) {
	if err := s.Chat.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) renameChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if !decode(w, r, &req) {
		return
	}
	c, err := s.Chat.Rename(r.Context(), mux.Vars(r)["id"], req.Title)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if !decode(w, r, &req) {
		return
	}
	chat, reply, err := s.Chat.SendMessage(r.Context(), mux.Vars(r)["id"], req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"chat": chat, "reply": reply})
}

func (s *Server) messageAudio(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	audio, err := s.Chat.GenerateMessageAudio(r.Context(), vars["id"], vars["messageID"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"audio": base64.StdEncoding.EncodeToString(audio)})
}

func (s *Server) translateMessage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	translation, err := s.Chat.TranslateMessage(r.Context(), vars["id"], vars["messageID"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"translation": translation})
}

func (s *Server) suggestResponses(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.Chat.SuggestResponses(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"suggestions": suggestions})
}
