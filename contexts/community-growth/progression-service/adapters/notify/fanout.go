package notify

import (
	"context"
	"fmt"
	"log/slog"

	"launchpad/contexts/community-growth/progression-service/ports"
)

// ChatSender posts the level-up announcement into the project's community.
type ChatSender interface {
	SendChannelMessage(ctx context.Context, projectID string, message string) error
}

// EmailSender delivers the level-up mail to the project owner.
type EmailSender interface {
	SendEmail(ctx context.Context, projectID string, subject string, body string) error
}

// Fanout delivers one notification to both channels. Delivery is
// fire-and-forget: individual channel failures are logged and swallowed so a
// flaky mail relay can never block or fail a level transition.
type Fanout struct {
	Chat   ChatSender
	Email  EmailSender
	Logger *slog.Logger
}

func (f Fanout) Send(ctx context.Context, notification ports.Notification) error {
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if f.Chat != nil {
		if err := f.Chat.SendChannelMessage(ctx, notification.ProjectID, notification.Message); err != nil {
			logger.Warn("chat announcement failed",
				"event", "progression_notify_chat_failed",
				"module", "community-growth/progression-service",
				"layer", "adapter",
				"project_id", notification.ProjectID,
				"error", err.Error(),
			)
		}
	}
	if f.Email != nil {
		subject := fmt.Sprintf("Your project reached level %d", notification.Level)
		if err := f.Email.SendEmail(ctx, notification.ProjectID, subject, notification.Message); err != nil {
			logger.Warn("email notification failed",
				"event", "progression_notify_email_failed",
				"module", "community-growth/progression-service",
				"layer", "adapter",
				"project_id", notification.ProjectID,
				"error", err.Error(),
			)
		}
	}
	return nil
}

// LogChatSender and LogEmailSender are the default stand-ins until real
// platform credentials are wired in bootstrap.
type LogChatSender struct {
	Logger *slog.Logger
}

func (l LogChatSender) SendChannelMessage(_ context.Context, projectID string, message string) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("chat announcement",
		"event", "progression_notify_chat_sent",
		"module", "community-growth/progression-service",
		"layer", "adapter",
		"project_id", projectID,
		"message", message,
	)
	return nil
}

type LogEmailSender struct {
	Logger *slog.Logger
}

func (l LogEmailSender) SendEmail(_ context.Context, projectID string, subject string, _ string) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("email notification",
		"event", "progression_notify_email_sent",
		"module", "community-growth/progression-service",
		"layer", "adapter",
		"project_id", projectID,
		"subject", subject,
	)
	return nil
}
