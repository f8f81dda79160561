package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"launchpad/contexts/asset-issuance/minting-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu     sync.RWMutex
	assets map[string]map[string]ports.AssetRecord
}

func NewStore() *Store {
	return &Store{assets: make(map[string]map[string]ports.AssetRecord)}
}

func (s *Store) RecordMint(_ context.Context, record ports.AssetRecord) (ports.AssetRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projectID := strings.TrimSpace(record.ProjectID)
	if _, ok := s.assets[projectID]; !ok {
		s.assets[projectID] = make(map[string]ports.AssetRecord)
	}
	if existing, ok := s.assets[projectID][record.AssetKind]; ok {
		return existing, false, nil
	}
	s.assets[projectID][record.AssetKind] = record
	return record, true, nil
}

func (s *Store) ListAssets(_ context.Context, projectID string) ([]ports.AssetRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.assets[strings.TrimSpace(projectID)]
	items := make([]ports.AssetRecord, 0, len(records))
	for _, record := range records {
		items = append(items, record)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].MintedAt.Before(items[j].MintedAt)
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// FakeMinter returns deterministic transaction ids; the default chain client
// for tests and local runs.
type FakeMinter struct {
	mu    sync.Mutex
	calls int

	Fail bool
}

func (m *FakeMinter) Mint(_ context.Context, recipientAddr string, assetKind string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return "", fmt.Errorf("mint rejected for %s", recipientAddr)
	}
	m.calls++
	return fmt.Sprintf("tx-%s-%04d", assetKind, m.calls), nil
}

func (m *FakeMinter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
