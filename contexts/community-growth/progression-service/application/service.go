package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"launchpad/contexts/community-growth/progression-service/domain/classify"
	domainerrors "launchpad/contexts/community-growth/progression-service/domain/errors"
	"launchpad/contexts/community-growth/progression-service/domain/gates"
	"launchpad/contexts/community-growth/progression-service/ports"
)

// Service is the progression coordinator. Every trigger path (live chat
// events, the reconciliation sweep, the inbound webhook and manual checks)
// funnels through OnTrigger, which tolerates arbitrary concurrent invocation
// for the same project: counter updates are idempotent per activity id and
// level transitions are linearized by the repository CAS, never by an
// in-process lock.
type Service struct {
	Repo       ports.MetricsRepository
	Flags      ports.AssetFlagsSource
	Directory  ports.CommunityDirectory
	Notifier   ports.Notifier
	Clock      ports.Clock
	Thresholds gates.Thresholds
	Logger     *slog.Logger
}

// OnTrigger runs one classify/apply/evaluate/transition cycle. A losing CAS
// means another trigger already advanced the level concurrently and is
// reported as success without action. At most one level is gained per call.
func (s Service) OnTrigger(ctx context.Context, input ports.TriggerInput) (ports.TriggerOutcome, error) {
	projectID := strings.TrimSpace(input.ProjectID)
	if projectID == "" {
		return ports.TriggerOutcome{}, domainerrors.ErrInvalidRequest
	}

	metrics, err := s.Repo.GetOrCreate(ctx, projectID)
	if err != nil {
		return ports.TriggerOutcome{}, fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
	}

	outcome := ports.TriggerOutcome{
		FromLevel: metrics.Level,
		ToLevel:   metrics.Level,
	}

	if input.Activity != nil {
		activityID := strings.TrimSpace(input.Activity.MessageID)
		if activityID == "" {
			return ports.TriggerOutcome{}, domainerrors.ErrInvalidRequest
		}
		result := classify.Classify(*input.Activity)
		outcome.Classification = &result

		metrics, err = s.Repo.ApplyActivity(ctx, projectID, activityID, result)
		if err != nil {
			return ports.TriggerOutcome{}, fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
		}
	}

	if input.LiveMemberCount != nil {
		metrics, err = s.Repo.RefreshMemberCount(ctx, projectID, *input.LiveMemberCount)
		if err != nil {
			return ports.TriggerOutcome{}, fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
		}
	}
	outcome.Metrics = metrics

	flags := s.externalFlags(ctx, projectID, metrics)
	counters := gates.Counters{
		MemberCount:   metrics.MemberCount,
		MessagesCount: metrics.MessagesCount,
		PapersShared:  metrics.PapersShared,
	}
	if !s.Thresholds.CanAdvance(metrics.Level, counters, flags) {
		return outcome, nil
	}

	nextLevel := metrics.Level + 1
	won, err := s.Repo.CompareAndSetLevel(ctx, projectID, metrics.Level, nextLevel)
	if err != nil {
		return ports.TriggerOutcome{}, fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
	}
	if !won {
		// Someone else advanced this level between our read and our write.
		ResolveLogger(s.Logger).Debug("level transition lost cas race",
			"event", "progression_cas_lost",
			"module", "community-growth/progression-service",
			"layer", "application",
			"project_id", projectID,
			"expected_level", metrics.Level,
			"source", string(input.Source),
		)
		return outcome, nil
	}

	outcome.Advanced = true
	outcome.ToLevel = nextLevel
	outcome.Metrics.Level = nextLevel

	s.notifyOnce(ctx, projectID, nextLevel, input.Source)
	return outcome, nil
}

// RegisterCommunity links a chat server to a project from an invite,
// creating the metrics record on first use and seeding the member count.
// The bot link is set once; re-registering the same project is rejected.
func (s Service) RegisterCommunity(ctx context.Context, projectID string, invite string) (ports.CommunityMetrics, error) {
	projectID = strings.TrimSpace(projectID)
	invite = strings.TrimSpace(invite)
	if projectID == "" || invite == "" {
		return ports.CommunityMetrics{}, domainerrors.ErrInvalidRequest
	}

	community, ok, err := s.Directory.ResolveInvite(ctx, invite)
	if err != nil || !ok {
		if err != nil {
			ResolveLogger(s.Logger).Warn("community directory lookup failed",
				"event", "progression_directory_lookup_failed",
				"module", "community-growth/progression-service",
				"layer", "application",
				"project_id", projectID,
				"error", err.Error(),
			)
		}
		return ports.CommunityMetrics{}, domainerrors.ErrDirectoryUnreachable
	}

	if _, err := s.Repo.GetOrCreate(ctx, projectID); err != nil {
		return ports.CommunityMetrics{}, fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
	}

	metrics, err := s.Repo.LinkCommunity(ctx, projectID, community, s.now())
	if err != nil {
		return ports.CommunityMetrics{}, err
	}

	if community.ApproximateMemberCount > 0 {
		metrics, err = s.Repo.RefreshMemberCount(ctx, projectID, community.ApproximateMemberCount)
		if err != nil {
			return ports.CommunityMetrics{}, fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
		}
	}

	ResolveLogger(s.Logger).Info("community linked",
		"event", "progression_community_linked",
		"module", "community-growth/progression-service",
		"layer", "application",
		"project_id", projectID,
		"community_id", community.ID,
		"member_count", metrics.MemberCount,
	)
	return metrics, nil
}

// GetMetrics returns the current counters and level for a project.
func (s Service) GetMetrics(ctx context.Context, projectID string) (ports.CommunityMetrics, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return ports.CommunityMetrics{}, domainerrors.ErrInvalidRequest
	}
	return s.Repo.GetOrCreate(ctx, projectID)
}

// NextRequirement describes what the project must satisfy to advance.
func (s Service) NextRequirement(level int) string {
	return s.Thresholds.Describe(level + 1)
}

// externalFlags gathers the collaborator-owned booleans. A failed lookup is
// no new information: the gate sees conservative false values, which can
// delay an advancement but never produce an unearned one.
func (s Service) externalFlags(ctx context.Context, projectID string, metrics ports.CommunityMetrics) gates.ExternalFlags {
	flags := gates.ExternalFlags{BotLinked: metrics.BotLinked}
	if s.Flags == nil {
		return flags
	}
	assets, err := s.Flags.Flags(ctx, projectID)
	if err != nil {
		ResolveLogger(s.Logger).Warn("asset flag lookup failed, treating as unminted",
			"event", "progression_flag_lookup_failed",
			"module", "community-growth/progression-service",
			"layer", "application",
			"project_id", projectID,
			"error", err.Error(),
		)
		return flags
	}
	flags.IdeaAssetMinted = assets.IdeaAssetMinted
	flags.VisionAssetMinted = assets.VisionAssetMinted
	return flags
}

// notifyOnce emits the single level-up notification behind the MarkNotified
// guard. Notification failures never unwind a completed transition.
func (s Service) notifyOnce(ctx context.Context, projectID string, level int, source ports.TriggerSource) {
	logger := ResolveLogger(s.Logger)

	first, err := s.Repo.MarkNotified(ctx, projectID, level)
	if err != nil {
		logger.Error("notification guard write failed",
			"event", "progression_notify_guard_failed",
			"module", "community-growth/progression-service",
			"layer", "application",
			"project_id", projectID,
			"level", level,
			"error", err.Error(),
		)
		return
	}
	if !first {
		return
	}

	message := fmt.Sprintf("Congratulations, your project reached level %d! Next up: %s.",
		level, s.Thresholds.Describe(level+1))
	if s.Notifier != nil {
		if err := s.Notifier.Send(ctx, ports.Notification{
			ProjectID: projectID,
			Level:     level,
			Message:   message,
		}); err != nil {
			logger.Warn("level-up notification delivery failed",
				"event", "progression_notify_failed",
				"module", "community-growth/progression-service",
				"layer", "application",
				"project_id", projectID,
				"level", level,
				"error", err.Error(),
			)
		}
	}

	logger.Info("project advanced",
		"event", "progression_level_advanced",
		"module", "community-growth/progression-service",
		"layer", "application",
		"project_id", projectID,
		"to_level", level,
		"source", string(source),
	)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
