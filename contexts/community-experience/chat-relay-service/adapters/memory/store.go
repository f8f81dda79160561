package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"launchpad/contexts/community-experience/chat-relay-service/ports"
)

type Store struct {
	mu       sync.RWMutex
	sessions map[string][]ports.ChatTurn
}

func NewStore() *Store {
	return &Store{sessions: make(map[string][]ports.ChatTurn)}
}

func (s *Store) AppendTurn(_ context.Context, sessionID string, turn ports.ChatTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessionID = strings.TrimSpace(sessionID)
	s.sessions[sessionID] = append(s.sessions[sessionID], turn)
	return nil
}

func (s *Store) ListTurns(_ context.Context, sessionID string, limit int) ([]ports.ChatTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.sessions[strings.TrimSpace(sessionID)]
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return append([]ports.ChatTurn(nil), turns...), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// ScriptedCompleter returns canned replies; used by tests and local runs
// without model credentials.
type ScriptedCompleter struct {
	mu      sync.Mutex
	Replies []string
	calls   int

	LastRequest ports.CompletionRequest
}

func (c *ScriptedCompleter) Complete(_ context.Context, req ports.CompletionRequest) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastRequest = req
	if len(c.Replies) == 0 {
		return "Keep growing your community to reach the next level.", nil
	}
	reply := c.Replies[c.calls%len(c.Replies)]
	c.calls++
	return reply, nil
}
