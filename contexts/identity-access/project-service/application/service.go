package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "launchpad/contexts/identity-access/project-service/domain/errors"
	"launchpad/contexts/identity-access/project-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

type AuthenticateResult struct {
	Project ports.Project
	Created bool
}

// Authenticate registers the project on first sign-in with a wallet; repeat
// sign-ins return the existing record.
func (s Service) Authenticate(ctx context.Context, ownerWallet string, name string) (AuthenticateResult, error) {
	ownerWallet = strings.TrimSpace(ownerWallet)
	name = strings.TrimSpace(name)
	if ownerWallet == "" {
		return AuthenticateResult{}, domainerrors.ErrInvalidRequest
	}
	if name == "" {
		name = "Untitled Project"
	}

	projectID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return AuthenticateResult{}, err
	}
	project, created, err := s.Repo.GetOrCreateByWallet(ctx, ports.Project{
		ProjectID:   strings.TrimSpace(projectID),
		OwnerWallet: ownerWallet,
		Name:        name,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return AuthenticateResult{}, err
	}

	if created {
		resolveLogger(s.Logger).Info("project created",
			"event", "project_created",
			"module", "identity-access/project-service",
			"layer", "application",
			"project_id", project.ProjectID,
		)
	}
	return AuthenticateResult{Project: project, Created: created}, nil
}

func (s Service) GetProject(ctx context.Context, projectID string) (ports.Project, error) {
	if strings.TrimSpace(projectID) == "" {
		return ports.Project{}, domainerrors.ErrInvalidRequest
	}
	return s.Repo.Get(ctx, strings.TrimSpace(projectID))
}

func (s Service) ListByOwner(ctx context.Context, ownerWallet string) ([]ports.Project, error) {
	if strings.TrimSpace(ownerWallet) == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	return s.Repo.ListByOwner(ctx, strings.TrimSpace(ownerWallet))
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
