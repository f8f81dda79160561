package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "launchpad/contexts/community-experience/chat-relay-service/domain/errors"
	"launchpad/contexts/community-experience/chat-relay-service/ports"
)

const defaultHistoryLimit = 20

type Service struct {
	Completer    ports.ChatCompleter
	Sessions     ports.SessionStore
	Facts        ports.ProjectFactsSource
	Clock        ports.Clock
	HistoryLimit int
	Logger       *slog.Logger
}

type RelayInput struct {
	ProjectID string
	SessionID string
	Message   string
}

type RelayResult struct {
	Reply     string
	SessionID string
}

// Relay assembles the prompt, forwards the exchange to the chat model and
// records both turns. Model failures surface as ErrModelUnavailable; nothing
// here ever mutates progression state.
func (s Service) Relay(ctx context.Context, input RelayInput) (RelayResult, error) {
	projectID := strings.TrimSpace(input.ProjectID)
	sessionID := strings.TrimSpace(input.SessionID)
	message := strings.TrimSpace(input.Message)
	if projectID == "" || sessionID == "" || message == "" {
		return RelayResult{}, domainerrors.ErrInvalidRequest
	}

	facts := ports.ProjectFacts{ProjectID: projectID}
	if s.Facts != nil {
		resolved, err := s.Facts.Facts(ctx, projectID)
		if err != nil {
			// Missing facts degrade the prompt, they do not block the chat.
			resolveLogger(s.Logger).Warn("project facts lookup failed",
				"event", "chat_relay_facts_failed",
				"module", "community-experience/chat-relay-service",
				"layer", "application",
				"project_id", projectID,
				"error", err.Error(),
			)
		} else {
			facts = resolved
		}
	}

	history, err := s.Sessions.ListTurns(ctx, sessionID, s.historyLimit())
	if err != nil {
		return RelayResult{}, domainerrors.ErrSessionUnavailable
	}

	reply, err := s.Completer.Complete(ctx, ports.CompletionRequest{
		SystemPrompt: buildSystemPrompt(facts),
		History:      history,
		UserMessage:  message,
	})
	if err != nil {
		resolveLogger(s.Logger).Warn("chat completion failed",
			"event", "chat_relay_completion_failed",
			"module", "community-experience/chat-relay-service",
			"layer", "application",
			"project_id", projectID,
			"session_id", sessionID,
			"error", err.Error(),
		)
		return RelayResult{}, domainerrors.ErrModelUnavailable
	}

	now := s.now()
	if err := s.Sessions.AppendTurn(ctx, sessionID, ports.ChatTurn{
		Role: ports.RoleUser, Content: message, CreatedAt: now,
	}); err != nil {
		return RelayResult{}, domainerrors.ErrSessionUnavailable
	}
	if err := s.Sessions.AppendTurn(ctx, sessionID, ports.ChatTurn{
		Role: ports.RoleAssistant, Content: reply, CreatedAt: now,
	}); err != nil {
		return RelayResult{}, domainerrors.ErrSessionUnavailable
	}

	return RelayResult{Reply: reply, SessionID: sessionID}, nil
}

func (s Service) History(ctx context.Context, sessionID string) ([]ports.ChatTurn, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	return s.Sessions.ListTurns(ctx, strings.TrimSpace(sessionID), s.historyLimit())
}

func (s Service) historyLimit() int {
	if s.HistoryLimit <= 0 {
		return defaultHistoryLimit
	}
	return s.HistoryLimit
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
