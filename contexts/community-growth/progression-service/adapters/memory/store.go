package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"launchpad/contexts/community-growth/progression-service/domain/classify"
	domainerrors "launchpad/contexts/community-growth/progression-service/domain/errors"
	"launchpad/contexts/community-growth/progression-service/ports"
)

// paperQualityContribution feeds the quality running average whenever a paper
// is applied, regardless of its classifier confidence.
const paperQualityContribution = 90

// Store keeps per-project metrics in process. Mutation semantics mirror the
// postgres adapter: ApplyActivity is idempotent per activity id and level
// writes go through a compare-and-set.
type Store struct {
	mu sync.RWMutex

	metrics  map[string]ports.CommunityMetrics
	applied  map[string]map[string]struct{}
	notified map[string]map[int]struct{}
}

func NewStore() *Store {
	return &Store{
		metrics:  make(map[string]ports.CommunityMetrics),
		applied:  make(map[string]map[string]struct{}),
		notified: make(map[string]map[int]struct{}),
	}
}

func (s *Store) GetOrCreate(_ context.Context, projectID string) (ports.CommunityMetrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(strings.TrimSpace(projectID)), nil
}

func (s *Store) ApplyActivity(
	_ context.Context,
	projectID string,
	activityID string,
	result classify.Result,
) (ports.CommunityMetrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projectID = strings.TrimSpace(projectID)
	activityID = strings.TrimSpace(activityID)
	item := s.getOrCreateLocked(projectID)
	if activityID == "" {
		return item, domainerrors.ErrInvalidRequest
	}

	if _, ok := s.applied[projectID]; !ok {
		s.applied[projectID] = make(map[string]struct{})
	}
	if _, done := s.applied[projectID][activityID]; done {
		return item, nil
	}
	s.applied[projectID][activityID] = struct{}{}

	contribution := 0
	switch result.Category {
	case classify.CategoryOrdinary:
		item.MessagesCount++
		contribution = result.QualityContribution
	case classify.CategoryPaper:
		item.PapersShared++
		contribution = paperQualityContribution
	}
	item.QualityScore = nextQualityScore(item.QualityScore, contribution)
	item.UpdatedAt = time.Now().UTC()

	s.metrics[projectID] = item
	return item, nil
}

func (s *Store) RefreshMemberCount(_ context.Context, projectID string, liveCount int) (ports.CommunityMetrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projectID = strings.TrimSpace(projectID)
	item := s.getOrCreateLocked(projectID)
	if liveCount > item.MemberCount {
		item.MemberCount = liveCount
		item.UpdatedAt = time.Now().UTC()
		s.metrics[projectID] = item
	}
	return item, nil
}

func (s *Store) CompareAndSetLevel(_ context.Context, projectID string, expectedLevel int, newLevel int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projectID = strings.TrimSpace(projectID)
	item, ok := s.metrics[projectID]
	if !ok || item.Level != expectedLevel {
		return false, nil
	}
	item.Level = newLevel
	item.UpdatedAt = time.Now().UTC()
	s.metrics[projectID] = item
	return true, nil
}

func (s *Store) MarkNotified(_ context.Context, projectID string, level int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projectID = strings.TrimSpace(projectID)
	if _, ok := s.notified[projectID]; !ok {
		s.notified[projectID] = make(map[int]struct{})
	}
	if _, done := s.notified[projectID][level]; done {
		return false, nil
	}
	s.notified[projectID][level] = struct{}{}
	return true, nil
}

func (s *Store) LinkCommunity(
	_ context.Context,
	projectID string,
	community ports.Community,
	now time.Time,
) (ports.CommunityMetrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projectID = strings.TrimSpace(projectID)
	item := s.getOrCreateLocked(projectID)
	if item.BotLinked {
		return item, domainerrors.ErrCommunityLinked
	}
	item.BotLinked = true
	item.CommunityID = community.ID
	item.CommunityName = community.Name
	item.UpdatedAt = now.UTC()
	s.metrics[projectID] = item
	return item, nil
}

func (s *Store) ListProjectIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.metrics))
	for id := range s.metrics {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) getOrCreateLocked(projectID string) ports.CommunityMetrics {
	item, ok := s.metrics[projectID]
	if !ok {
		item = ports.CommunityMetrics{
			ProjectID: projectID,
			Level:     1,
			UpdatedAt: time.Now().UTC(),
		}
		s.metrics[projectID] = item
	}
	return item
}

func nextQualityScore(current int, contribution int) int {
	next := int(math.Round(float64(current)*0.9 + float64(contribution)*0.1))
	if next < 0 {
		return 0
	}
	if next > 100 {
		return 100
	}
	return next
}
