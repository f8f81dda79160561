package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	chaterrors "launchpad/contexts/community-experience/chat-relay-service/domain/errors"
	chathttp "launchpad/contexts/community-experience/chat-relay-service/transport/http"
)

func writeChatError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, chathttp.ErrorResponse{Code: code, Message: message})
}

func writeChatDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chaterrors.ErrInvalidRequest):
		writeChatError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, chaterrors.ErrSessionUnavailable):
		writeChatError(w, http.StatusNotFound, "session_unavailable", err.Error())
	case errors.Is(err, chaterrors.ErrModelUnavailable):
		writeChatError(w, http.StatusFailedDependency, "model_unavailable", err.Error())
	default:
		writeChatError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleChatRelay(w http.ResponseWriter, r *http.Request) {
	var req chathttp.RelayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeChatError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.chat.Handler.RelayHandler(r.Context(), r.PathValue("project_id"), req)
	if err != nil {
		writeChatDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	resp, err := s.chat.Handler.HistoryHandler(r.Context(), r.PathValue("session_id"))
	if err != nil {
		writeChatDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
