package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Project is the onboarding subject. Level lives with the progression
// service; this record is identity only.
type Project struct {
	ProjectID   string
	OwnerWallet string
	Name        string
	CreatedAt   time.Time
}

type Repository interface {
	GetOrCreateByWallet(ctx context.Context, project Project) (Project, bool, error)
	Get(ctx context.Context, projectID string) (Project, error)
	ListByOwner(ctx context.Context, ownerWallet string) ([]Project, error)
}
