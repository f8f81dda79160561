package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	progressionerrors "launchpad/contexts/community-growth/progression-service/domain/errors"
	progressionhttp "launchpad/contexts/community-growth/progression-service/transport/http"
)

func writeProgressionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, progressionhttp.ErrorResponse{Code: code, Message: message})
}

func writeProgressionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, progressionerrors.ErrInvalidRequest):
		writeProgressionError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, progressionerrors.ErrProjectNotFound):
		writeProgressionError(w, http.StatusNotFound, "project_not_found", err.Error())
	case errors.Is(err, progressionerrors.ErrCommunityLinked):
		writeProgressionError(w, http.StatusConflict, "community_linked", err.Error())
	case errors.Is(err, progressionerrors.ErrDirectoryUnreachable):
		writeProgressionError(w, http.StatusFailedDependency, "directory_unreachable", err.Error())
	case errors.Is(err, progressionerrors.ErrStoreUnavailable):
		writeProgressionError(w, http.StatusServiceUnavailable, "store_unavailable", err.Error())
	default:
		writeProgressionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleProgressionWebhook(w http.ResponseWriter, r *http.Request) {
	var req progressionhttp.WebhookActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProgressionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if strings.TrimSpace(req.ProjectID) == "" {
		writeProgressionError(w, http.StatusBadRequest, "invalid_request", "project_id is required")
		return
	}

	resp, err := s.progression.Handler.IngestWebhookHandler(r.Context(), req)
	if err != nil {
		writeProgressionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProgressionCheck(w http.ResponseWriter, r *http.Request) {
	resp, err := s.progression.Handler.CheckHandler(r.Context(), r.PathValue("project_id"))
	if err != nil {
		writeProgressionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProgressionMetrics(w http.ResponseWriter, r *http.Request) {
	resp, err := s.progression.Handler.GetMetricsHandler(r.Context(), r.PathValue("project_id"))
	if err != nil {
		writeProgressionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegisterCommunity(w http.ResponseWriter, r *http.Request) {
	var req progressionhttp.RegisterCommunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProgressionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.progression.Handler.RegisterCommunityHandler(r.Context(), r.PathValue("project_id"), req)
	if err != nil {
		writeProgressionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
