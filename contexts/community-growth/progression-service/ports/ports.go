package ports

import (
	"context"
	"time"

	"launchpad/contexts/community-growth/progression-service/domain/classify"
	"launchpad/internal/shared/events"
)

// TopicCommunityActivity carries live chat activity events into the
// coordinator's consumer.
const TopicCommunityActivity = "community.activity"

type Clock interface {
	Now() time.Time
}

// CommunityMetrics is the per-project counter record, 1:1 with a project and
// created lazily the first time its community is registered. Counters never
// decrease; Level is mutated only through CompareAndSetLevel.
type CommunityMetrics struct {
	ProjectID     string
	Level         int
	MemberCount   int
	MessagesCount int
	PapersShared  int
	QualityScore  int
	BotLinked     bool
	Verified      bool
	CommunityID   string
	CommunityName string
	UpdatedAt     time.Time
}

// Community is what the directory resolves an invite to.
type Community struct {
	ID                     string
	Name                   string
	Icon                   string
	ApproximateMemberCount int
}

// MetricsRepository owns per-project counters and the level field over the
// persistent store. ApplyActivity must be idempotent on activityID: a second
// call with the same id is a no-op returning current state. CompareAndSetLevel
// is the exactly-once primitive that linearizes transitions per project.
type MetricsRepository interface {
	GetOrCreate(ctx context.Context, projectID string) (CommunityMetrics, error)
	ApplyActivity(ctx context.Context, projectID string, activityID string, result classify.Result) (CommunityMetrics, error)
	RefreshMemberCount(ctx context.Context, projectID string, liveCount int) (CommunityMetrics, error)
	CompareAndSetLevel(ctx context.Context, projectID string, expectedLevel int, newLevel int) (bool, error)
	MarkNotified(ctx context.Context, projectID string, level int) (bool, error)
	LinkCommunity(ctx context.Context, projectID string, community Community, now time.Time) (CommunityMetrics, error)
	ListProjectIDs(ctx context.Context) ([]string, error)
}

// Notification describes one level-up announcement. Delivery is
// fire-and-forget: senders log and swallow failures.
type Notification struct {
	ProjectID string
	Level     int
	Message   string
}

type Notifier interface {
	Send(ctx context.Context, notification Notification) error
}

// AssetFlags are the externally owned completion facts for the first gate.
type AssetFlags struct {
	IdeaAssetMinted   bool
	VisionAssetMinted bool
}

type AssetFlagsSource interface {
	Flags(ctx context.Context, projectID string) (AssetFlags, error)
}

// CommunityDirectory resolves a chat-server invite and reads live member
// counts. An unreachable platform is reported through the ok flag, not as an
// error that aborts the caller.
type CommunityDirectory interface {
	ResolveInvite(ctx context.Context, invite string) (Community, bool, error)
	MemberCount(ctx context.Context, communityID string) (int, bool, error)
}

// EventEnvelope reuses the shared cross-service event shape.
type EventEnvelope = events.Envelope

// EventPublisher and EventSubscriber are the bus-facing ports. The in-process
// platform bus satisfies both; an external broker adapter can replace it
// without touching this service.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler func(context.Context, EventEnvelope) error) error
}

// TriggerSource labels which of the concurrent trigger paths invoked the
// coordinator; informational only.
type TriggerSource string

const (
	TriggerChatEvent TriggerSource = "chat_event"
	TriggerReconcile TriggerSource = "reconcile"
	TriggerWebhook   TriggerSource = "webhook"
	TriggerManual    TriggerSource = "manual"
)

// TriggerInput is the single coordinator entry point payload. Activity and
// LiveMemberCount are both optional.
type TriggerInput struct {
	ProjectID       string
	Source          TriggerSource
	Activity        *classify.ActivityUnit
	LiveMemberCount *int
}

// TriggerOutcome reports what, if anything, changed.
type TriggerOutcome struct {
	Advanced       bool
	FromLevel      int
	ToLevel        int
	Classification *classify.Result
	Metrics        CommunityMetrics
}
