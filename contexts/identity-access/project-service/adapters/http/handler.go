package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"launchpad/contexts/identity-access/project-service/application"
	"launchpad/contexts/identity-access/project-service/ports"
	httptransport "launchpad/contexts/identity-access/project-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) AuthenticateHandler(
	ctx context.Context,
	req httptransport.AuthenticateRequest,
) (httptransport.AuthenticateResponse, error) {
	result, err := h.Service.Authenticate(ctx, req.WalletAddress, req.ProjectName)
	if err != nil {
		return httptransport.AuthenticateResponse{}, err
	}
	return httptransport.AuthenticateResponse{
		Status:  "success",
		Created: result.Created,
		Data:    projectDTO(result.Project),
	}, nil
}

func (h Handler) GetProjectHandler(ctx context.Context, projectID string) (httptransport.ProjectResponse, error) {
	project, err := h.Service.GetProject(ctx, projectID)
	if err != nil {
		return httptransport.ProjectResponse{}, err
	}
	return httptransport.ProjectResponse{
		Status: "success",
		Data:   projectDTO(project),
	}, nil
}

func (h Handler) ListProjectsHandler(ctx context.Context, ownerWallet string) (httptransport.ProjectListResponse, error) {
	projects, err := h.Service.ListByOwner(ctx, ownerWallet)
	if err != nil {
		return httptransport.ProjectListResponse{}, err
	}
	resp := httptransport.ProjectListResponse{
		Status: "success",
		Data:   make([]httptransport.ProjectDTO, 0, len(projects)),
	}
	for _, project := range projects {
		resp.Data = append(resp.Data, projectDTO(project))
	}
	return resp, nil
}

func projectDTO(project ports.Project) httptransport.ProjectDTO {
	return httptransport.ProjectDTO{
		ProjectID:   project.ProjectID,
		OwnerWallet: project.OwnerWallet,
		Name:        project.Name,
		CreatedAt:   project.CreatedAt.UTC().Format(time.RFC3339),
	}
}
