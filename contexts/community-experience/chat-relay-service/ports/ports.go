package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is one exchange in a relay session.
type ChatTurn struct {
	Role      string
	Content   string
	CreatedAt time.Time
}

// CompletionRequest is what the black-box chat model receives: an assembled
// system prompt, bounded history and the new user message.
type CompletionRequest struct {
	SystemPrompt string
	History      []ChatTurn
	UserMessage  string
}

// ChatCompleter is the model boundary. Implementations must not panic; an
// unreachable model surfaces as an error the service maps to a typed failure.
type ChatCompleter interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// SessionStore keeps per-session history.
type SessionStore interface {
	AppendTurn(ctx context.Context, sessionID string, turn ChatTurn) error
	ListTurns(ctx context.Context, sessionID string, limit int) ([]ChatTurn, error)
}

// ProjectFacts feed the system prompt so the assistant can talk about the
// project's actual progression state.
type ProjectFacts struct {
	ProjectID       string
	ProjectName     string
	Level           int
	NextRequirement string
	MemberCount     int
	PapersShared    int
}

type ProjectFactsSource interface {
	Facts(ctx context.Context, projectID string) (ProjectFacts, error)
}
