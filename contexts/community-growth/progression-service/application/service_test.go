package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"launchpad/contexts/community-growth/progression-service/domain/classify"
	domainerrors "launchpad/contexts/community-growth/progression-service/domain/errors"
	"launchpad/contexts/community-growth/progression-service/domain/gates"
	"launchpad/contexts/community-growth/progression-service/ports"
)

type testRepo struct {
	metrics     ports.CommunityMetrics
	applied     map[string]struct{}
	notified    map[int]struct{}
	casWins     bool
	casAttempts int
}

func newTestRepo(metrics ports.CommunityMetrics) *testRepo {
	return &testRepo{
		metrics:  metrics,
		applied:  make(map[string]struct{}),
		notified: make(map[int]struct{}),
		casWins:  true,
	}
}

func (r *testRepo) GetOrCreate(_ context.Context, projectID string) (ports.CommunityMetrics, error) {
	if r.metrics.ProjectID == "" {
		r.metrics = ports.CommunityMetrics{ProjectID: projectID, Level: 1}
	}
	return r.metrics, nil
}

func (r *testRepo) ApplyActivity(
	_ context.Context,
	_ string,
	activityID string,
	result classify.Result,
) (ports.CommunityMetrics, error) {
	if _, done := r.applied[activityID]; done {
		return r.metrics, nil
	}
	r.applied[activityID] = struct{}{}
	switch result.Category {
	case classify.CategoryOrdinary:
		r.metrics.MessagesCount++
	case classify.CategoryPaper:
		r.metrics.PapersShared++
	}
	return r.metrics, nil
}

func (r *testRepo) RefreshMemberCount(_ context.Context, _ string, liveCount int) (ports.CommunityMetrics, error) {
	if liveCount > r.metrics.MemberCount {
		r.metrics.MemberCount = liveCount
	}
	return r.metrics, nil
}

func (r *testRepo) CompareAndSetLevel(_ context.Context, _ string, expectedLevel int, newLevel int) (bool, error) {
	r.casAttempts++
	if !r.casWins || r.metrics.Level != expectedLevel {
		return false, nil
	}
	r.metrics.Level = newLevel
	return true, nil
}

func (r *testRepo) MarkNotified(_ context.Context, _ string, level int) (bool, error) {
	if _, done := r.notified[level]; done {
		return false, nil
	}
	r.notified[level] = struct{}{}
	return true, nil
}

func (r *testRepo) LinkCommunity(
	_ context.Context,
	_ string,
	community ports.Community,
	_ time.Time,
) (ports.CommunityMetrics, error) {
	if r.metrics.BotLinked {
		return r.metrics, domainerrors.ErrCommunityLinked
	}
	r.metrics.BotLinked = true
	r.metrics.CommunityID = community.ID
	r.metrics.CommunityName = community.Name
	return r.metrics, nil
}

func (r *testRepo) ListProjectIDs(_ context.Context) ([]string, error) {
	return []string{r.metrics.ProjectID}, nil
}

type testFlags struct {
	flags ports.AssetFlags
	err   error
}

func (f testFlags) Flags(_ context.Context, _ string) (ports.AssetFlags, error) {
	return f.flags, f.err
}

type testDirectory struct {
	community ports.Community
	resolved  bool
	count     int
	hasCount  bool
}

func (d testDirectory) ResolveInvite(_ context.Context, _ string) (ports.Community, bool, error) {
	return d.community, d.resolved, nil
}

func (d testDirectory) MemberCount(_ context.Context, _ string) (int, bool, error) {
	return d.count, d.hasCount, nil
}

type testNotifier struct {
	sent []ports.Notification
	err  error
}

func (n *testNotifier) Send(_ context.Context, notification ports.Notification) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, notification)
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newTestService(repo *testRepo, flags ports.AssetFlagsSource, notifier ports.Notifier) Service {
	return Service{
		Repo:       repo,
		Flags:      flags,
		Notifier:   notifier,
		Clock:      fixedClock{now: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)},
		Thresholds: gates.DefaultThresholds(),
	}
}

func TestOnTriggerRejectsMissingProject(t *testing.T) {
	service := newTestService(newTestRepo(ports.CommunityMetrics{}), testFlags{}, &testNotifier{})

	_, err := service.OnTrigger(context.Background(), ports.TriggerInput{Source: ports.TriggerManual})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestOnTriggerCountsOrdinaryActivity(t *testing.T) {
	repo := newTestRepo(ports.CommunityMetrics{ProjectID: "proj-1", Level: 1})
	service := newTestService(repo, testFlags{}, &testNotifier{})

	outcome, err := service.OnTrigger(context.Background(), ports.TriggerInput{
		ProjectID: "proj-1",
		Source:    ports.TriggerChatEvent,
		Activity: &classify.ActivityUnit{
			MessageID: "msg-1",
			Text:      "kicking off the first community benchmark run today",
		},
	})
	if err != nil {
		t.Fatalf("trigger failed: %v", err)
	}
	if outcome.Classification == nil || outcome.Classification.Category != classify.CategoryOrdinary {
		t.Fatalf("expected ordinary classification, got %+v", outcome.Classification)
	}
	if outcome.Metrics.MessagesCount != 1 {
		t.Fatalf("expected one counted message, got %d", outcome.Metrics.MessagesCount)
	}
	if outcome.Advanced {
		t.Fatalf("level 1 without assets must not advance")
	}
}

func TestOnTriggerDuplicateActivityCountsOnce(t *testing.T) {
	repo := newTestRepo(ports.CommunityMetrics{ProjectID: "proj-1", Level: 1})
	service := newTestService(repo, testFlags{}, &testNotifier{})

	input := ports.TriggerInput{
		ProjectID: "proj-1",
		Source:    ports.TriggerChatEvent,
		Activity: &classify.ActivityUnit{
			MessageID: "msg-42",
			Text:      "sharing the new benchmark numbers with everyone here",
		},
	}
	for i := 0; i < 2; i++ {
		if _, err := service.OnTrigger(context.Background(), input); err != nil {
			t.Fatalf("delivery %d failed: %v", i+1, err)
		}
	}
	if repo.metrics.MessagesCount != 1 {
		t.Fatalf("redelivered activity must count once, got %d", repo.metrics.MessagesCount)
	}
}

func TestOnTriggerAdvancesAndNotifiesOnce(t *testing.T) {
	repo := newTestRepo(ports.CommunityMetrics{ProjectID: "proj-1", Level: 2, BotLinked: true, MemberCount: 3})
	notifier := &testNotifier{}
	service := newTestService(repo, testFlags{}, notifier)

	liveCount := 4
	outcome, err := service.OnTrigger(context.Background(), ports.TriggerInput{
		ProjectID:       "proj-1",
		Source:          ports.TriggerReconcile,
		LiveMemberCount: &liveCount,
	})
	if err != nil {
		t.Fatalf("trigger failed: %v", err)
	}
	if !outcome.Advanced || outcome.FromLevel != 2 || outcome.ToLevel != 3 {
		t.Fatalf("expected 2 to 3 advancement, got %+v", outcome)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.sent))
	}
	if notifier.sent[0].Level != 3 {
		t.Fatalf("expected level 3 notification, got %d", notifier.sent[0].Level)
	}

	// A second trigger at the new level finds the gate unsatisfied and the
	// notification guard closed.
	outcome, err = service.OnTrigger(context.Background(), ports.TriggerInput{
		ProjectID: "proj-1",
		Source:    ports.TriggerManual,
	})
	if err != nil {
		t.Fatalf("second trigger failed: %v", err)
	}
	if outcome.Advanced {
		t.Fatalf("level 3 gate must not pass with these counters")
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected no further notifications, got %d", len(notifier.sent))
	}
}

func TestOnTriggerOneLevelPerCall(t *testing.T) {
	repo := newTestRepo(ports.CommunityMetrics{
		ProjectID:     "proj-1",
		Level:         2,
		BotLinked:     true,
		MemberCount:   50,
		PapersShared:  40,
		MessagesCount: 500,
	})
	service := newTestService(repo, testFlags{}, &testNotifier{})

	outcome, err := service.OnTrigger(context.Background(), ports.TriggerInput{
		ProjectID: "proj-1",
		Source:    ports.TriggerManual,
	})
	if err != nil {
		t.Fatalf("trigger failed: %v", err)
	}
	if outcome.ToLevel != 3 {
		t.Fatalf("one call may gain one level, got %d", outcome.ToLevel)
	}
	if repo.casAttempts != 1 {
		t.Fatalf("expected a single transition attempt, got %d", repo.casAttempts)
	}
}

func TestOnTriggerCASLossIsSuccessWithoutAction(t *testing.T) {
	repo := newTestRepo(ports.CommunityMetrics{ProjectID: "proj-1", Level: 2, BotLinked: true, MemberCount: 9})
	repo.casWins = false
	notifier := &testNotifier{}
	service := newTestService(repo, testFlags{}, notifier)

	outcome, err := service.OnTrigger(context.Background(), ports.TriggerInput{
		ProjectID: "proj-1",
		Source:    ports.TriggerManual,
	})
	if err != nil {
		t.Fatalf("losing the race must not be an error: %v", err)
	}
	if outcome.Advanced {
		t.Fatalf("losing the race must not report an advancement")
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("the loser must not notify, got %d notifications", len(notifier.sent))
	}
}

func TestOnTriggerFlagLookupFailureDelaysAdvance(t *testing.T) {
	repo := newTestRepo(ports.CommunityMetrics{ProjectID: "proj-1", Level: 1})
	service := newTestService(repo, testFlags{err: errors.New("minting service down")}, &testNotifier{})

	outcome, err := service.OnTrigger(context.Background(), ports.TriggerInput{
		ProjectID: "proj-1",
		Source:    ports.TriggerManual,
	})
	if err != nil {
		t.Fatalf("flag lookup failure must not fail the trigger: %v", err)
	}
	if outcome.Advanced {
		t.Fatalf("unknown flags must be treated as unminted")
	}
}

func TestOnTriggerNotifierFailureDoesNotUnwind(t *testing.T) {
	repo := newTestRepo(ports.CommunityMetrics{ProjectID: "proj-1", Level: 2, BotLinked: true, MemberCount: 6})
	notifier := &testNotifier{err: errors.New("webhook 500")}
	service := newTestService(repo, testFlags{}, notifier)

	outcome, err := service.OnTrigger(context.Background(), ports.TriggerInput{
		ProjectID: "proj-1",
		Source:    ports.TriggerManual,
	})
	if err != nil {
		t.Fatalf("notification failure must not fail the trigger: %v", err)
	}
	if !outcome.Advanced {
		t.Fatalf("transition must stand even when notification delivery fails")
	}
	if repo.metrics.Level != 3 {
		t.Fatalf("expected persisted level 3, got %d", repo.metrics.Level)
	}
}

func TestRegisterCommunitySeedsMemberCount(t *testing.T) {
	repo := newTestRepo(ports.CommunityMetrics{ProjectID: "proj-1", Level: 1})
	service := newTestService(repo, testFlags{}, &testNotifier{})
	service.Directory = testDirectory{
		community: ports.Community{ID: "guild-9", Name: "Protein Folding Club", ApproximateMemberCount: 7},
		resolved:  true,
	}

	metrics, err := service.RegisterCommunity(context.Background(), "proj-1", "https://chat.example/invite/abc")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if !metrics.BotLinked || metrics.CommunityID != "guild-9" {
		t.Fatalf("expected linked community, got %+v", metrics)
	}
	if metrics.MemberCount != 7 {
		t.Fatalf("expected seeded member count 7, got %d", metrics.MemberCount)
	}
}

func TestRegisterCommunityUnresolvedInvite(t *testing.T) {
	repo := newTestRepo(ports.CommunityMetrics{ProjectID: "proj-1", Level: 1})
	service := newTestService(repo, testFlags{}, &testNotifier{})
	service.Directory = testDirectory{}

	_, err := service.RegisterCommunity(context.Background(), "proj-1", "https://chat.example/invite/expired")
	if !errors.Is(err, domainerrors.ErrDirectoryUnreachable) {
		t.Fatalf("expected directory unreachable, got %v", err)
	}
}

func TestRegisterCommunityRejectsRelink(t *testing.T) {
	repo := newTestRepo(ports.CommunityMetrics{ProjectID: "proj-1", Level: 2, BotLinked: true})
	service := newTestService(repo, testFlags{}, &testNotifier{})
	service.Directory = testDirectory{
		community: ports.Community{ID: "guild-2", ApproximateMemberCount: 3},
		resolved:  true,
	}

	_, err := service.RegisterCommunity(context.Background(), "proj-1", "https://chat.example/invite/other")
	if !errors.Is(err, domainerrors.ErrCommunityLinked) {
		t.Fatalf("expected community linked error, got %v", err)
	}
}
