package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"launchpad/contexts/community-growth/progression-service/application"
	"launchpad/contexts/community-growth/progression-service/domain/classify"
	"launchpad/contexts/community-growth/progression-service/ports"
)

// ActivityConsumer feeds live chat events from the bus into the coordinator.
// Delivery may duplicate what the webhook or reconciler already observed for
// the same message id; the repository's idempotent ApplyActivity absorbs that.
type ActivityConsumer struct {
	Subscriber    ports.EventSubscriber
	Coordinator   application.Service
	ConsumerGroup string
	Logger        *slog.Logger
}

type activityEventPayload struct {
	ProjectID   string `json:"project_id"`
	MessageID   string `json:"message_id"`
	AuthorID    string `json:"author_id"`
	ChannelID   string `json:"channel_id"`
	Content     string `json:"content"`
	MemberCount *int   `json:"member_count,omitempty"`
	Attachments []struct {
		Name        string `json:"name"`
		ContentType string `json:"content_type"`
		SizeBytes   int64  `json:"size_bytes"`
	} `json:"attachments,omitempty"`
}

func (c ActivityConsumer) Start(ctx context.Context) error {
	group := c.ConsumerGroup
	if group == "" {
		group = "progression-activity-cg"
	}
	return c.Subscriber.Subscribe(ctx, ports.TopicCommunityActivity, group, c.handle)
}

func (c ActivityConsumer) handle(ctx context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)

	payload, err := decodeActivityPayload(event.Payload)
	if err != nil {
		// A malformed event is dropped, not retried: replaying it can never
		// succeed and must not wedge the consumer.
		logger.Error("activity event payload invalid",
			"event", "progression_activity_decode_failed",
			"module", "community-growth/progression-service",
			"layer", "worker",
			"event_id", event.EventID,
			"error", err.Error(),
		)
		return nil
	}
	if strings.TrimSpace(payload.ProjectID) == "" || strings.TrimSpace(payload.MessageID) == "" {
		logger.Warn("activity event missing identifiers, dropped",
			"event", "progression_activity_dropped",
			"module", "community-growth/progression-service",
			"layer", "worker",
			"event_id", event.EventID,
		)
		return nil
	}

	activity := classify.ActivityUnit{
		MessageID: payload.MessageID,
		AuthorID:  payload.AuthorID,
		ChannelID: payload.ChannelID,
		Text:      payload.Content,
	}
	for _, attachment := range payload.Attachments {
		activity.Attachments = append(activity.Attachments, classify.Attachment{
			Name:        attachment.Name,
			ContentType: attachment.ContentType,
			SizeBytes:   attachment.SizeBytes,
		})
	}

	_, err = c.Coordinator.OnTrigger(ctx, ports.TriggerInput{
		ProjectID:       payload.ProjectID,
		Source:          ports.TriggerChatEvent,
		Activity:        &activity,
		LiveMemberCount: payload.MemberCount,
	})
	if err != nil {
		logger.Warn("activity trigger failed",
			"event", "progression_activity_trigger_failed",
			"module", "community-growth/progression-service",
			"layer", "worker",
			"event_id", event.EventID,
			"project_id", payload.ProjectID,
			"error", err.Error(),
		)
	}
	return err
}

// decodeActivityPayload accepts both in-process struct payloads and
// JSON-decoded maps from a wire transport.
func decodeActivityPayload(raw any) (activityEventPayload, error) {
	var payload activityEventPayload
	if typed, ok := raw.(activityEventPayload); ok {
		return typed, nil
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return payload, err
	}
	if err := json.Unmarshal(buf, &payload); err != nil {
		return payload, err
	}
	return payload, nil
}
