package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	projecterrors "launchpad/contexts/identity-access/project-service/domain/errors"
	projecthttp "launchpad/contexts/identity-access/project-service/transport/http"
)

func writeProjectError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, projecthttp.ErrorResponse{Code: code, Message: message})
}

func writeProjectDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, projecterrors.ErrInvalidRequest):
		writeProjectError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, projecterrors.ErrNotFound):
		writeProjectError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeProjectError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req projecthttp.AuthenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProjectError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.projects.Handler.AuthenticateHandler(r.Context(), req)
	if err != nil {
		writeProjectDomainError(w, err)
		return
	}
	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	resp, err := s.projects.Handler.GetProjectHandler(r.Context(), r.PathValue("project_id"))
	if err != nil {
		writeProjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	wallet := strings.TrimSpace(r.URL.Query().Get("wallet"))
	if wallet == "" {
		writeProjectError(w, http.StatusBadRequest, "invalid_request", "wallet query parameter is required")
		return
	}

	resp, err := s.projects.Handler.ListProjectsHandler(r.Context(), wallet)
	if err != nil {
		writeProjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
