package workers

import (
	"context"
	"log/slog"

	"launchpad/contexts/community-growth/progression-service/application"
	"launchpad/contexts/community-growth/progression-service/ports"
)

// Reconciler is the periodic safety net behind the real-time triggers: it
// refreshes live member counts and re-evaluates every project's gate using
// then-current data. Because every per-project step is idempotent it is safe
// to abort mid-list and resume on the next tick.
type Reconciler struct {
	Coordinator application.Service
	Repo        ports.MetricsRepository
	Directory   ports.CommunityDirectory
	Logger      *slog.Logger
}

func (r Reconciler) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)

	projectIDs, err := r.Repo.ListProjectIDs(ctx)
	if err != nil {
		logger.Error("reconcile project list failed",
			"event", "progression_reconcile_list_failed",
			"module", "community-growth/progression-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	advanced := 0
	for _, projectID := range projectIDs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		input := ports.TriggerInput{
			ProjectID: projectID,
			Source:    ports.TriggerReconcile,
		}
		if live, ok := r.liveMemberCount(ctx, projectID); ok {
			input.LiveMemberCount = &live
		}

		outcome, err := r.Coordinator.OnTrigger(ctx, input)
		if err != nil {
			// Store hiccups on one project must not starve the rest; the
			// next tick retries with then-current data.
			logger.Warn("reconcile trigger failed",
				"event", "progression_reconcile_trigger_failed",
				"module", "community-growth/progression-service",
				"layer", "worker",
				"project_id", projectID,
				"error", err.Error(),
			)
			continue
		}
		if outcome.Advanced {
			advanced++
		}
	}

	if advanced > 0 {
		logger.Info("reconcile sweep completed",
			"event", "progression_reconcile_completed",
			"module", "community-growth/progression-service",
			"layer", "worker",
			"projects", len(projectIDs),
			"advanced", advanced,
		)
	}
	return nil
}

func (r Reconciler) liveMemberCount(ctx context.Context, projectID string) (int, bool) {
	if r.Directory == nil {
		return 0, false
	}
	metrics, err := r.Repo.GetOrCreate(ctx, projectID)
	if err != nil || metrics.CommunityID == "" {
		return 0, false
	}
	count, ok, err := r.Directory.MemberCount(ctx, metrics.CommunityID)
	if err != nil || !ok {
		return 0, false
	}
	return count, true
}
