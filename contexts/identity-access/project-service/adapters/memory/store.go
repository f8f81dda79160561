package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "launchpad/contexts/identity-access/project-service/domain/errors"
	"launchpad/contexts/identity-access/project-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	projects map[string]ports.Project
	byWallet map[string]string
}

func NewStore() *Store {
	return &Store{
		projects: make(map[string]ports.Project),
		byWallet: make(map[string]string),
	}
}

func (s *Store) GetOrCreateByWallet(_ context.Context, project ports.Project) (ports.Project, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet := strings.ToLower(strings.TrimSpace(project.OwnerWallet))
	if existingID, ok := s.byWallet[wallet]; ok {
		return s.projects[existingID], false, nil
	}
	s.projects[project.ProjectID] = project
	s.byWallet[wallet] = project.ProjectID
	return project, true, nil
}

func (s *Store) Get(_ context.Context, projectID string) (ports.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, ok := s.projects[strings.TrimSpace(projectID)]
	if !ok {
		return ports.Project{}, domainerrors.ErrNotFound
	}
	return project, nil
}

func (s *Store) ListByOwner(_ context.Context, ownerWallet string) ([]ports.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wallet := strings.ToLower(strings.TrimSpace(ownerWallet))
	items := make([]ports.Project, 0, 1)
	for _, project := range s.projects {
		if strings.ToLower(project.OwnerWallet) == wallet {
			items = append(items, project)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
