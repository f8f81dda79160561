package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	mintingerrors "launchpad/contexts/asset-issuance/minting-service/domain/errors"
	mintinghttp "launchpad/contexts/asset-issuance/minting-service/transport/http"
)

func writeMintingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, mintinghttp.ErrorResponse{Code: code, Message: message})
}

func writeMintingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, mintingerrors.ErrInvalidRequest):
		writeMintingError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, mintingerrors.ErrUnknownAssetKind):
		writeMintingError(w, http.StatusUnprocessableEntity, "unknown_asset_kind", err.Error())
	case errors.Is(err, mintingerrors.ErrMintUnavailable):
		writeMintingError(w, http.StatusFailedDependency, "mint_unavailable", err.Error())
	default:
		writeMintingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleIssueAsset(w http.ResponseWriter, r *http.Request) {
	var req mintinghttp.IssueAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMintingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.minting.Handler.IssueAssetHandler(r.Context(), r.PathValue("project_id"), req)
	if err != nil {
		writeMintingDomainError(w, err)
		return
	}
	status := http.StatusCreated
	if resp.Replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	resp, err := s.minting.Handler.ListAssetsHandler(r.Context(), r.PathValue("project_id"))
	if err != nil {
		writeMintingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
