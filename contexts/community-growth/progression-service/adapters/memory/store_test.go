package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"launchpad/contexts/community-growth/progression-service/domain/classify"
	domainerrors "launchpad/contexts/community-growth/progression-service/domain/errors"
	"launchpad/contexts/community-growth/progression-service/ports"
)

func TestStoreGetOrCreateStartsAtLevelOne(t *testing.T) {
	store := NewStore()

	metrics, err := store.GetOrCreate(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("get or create failed: %v", err)
	}
	if metrics.Level != 1 {
		t.Fatalf("expected level 1, got %d", metrics.Level)
	}
	if metrics.MessagesCount != 0 || metrics.PapersShared != 0 {
		t.Fatalf("expected zeroed counters, got %+v", metrics)
	}
}

func TestStoreApplyActivityIdempotent(t *testing.T) {
	store := NewStore()
	result := classify.Result{Category: classify.CategoryOrdinary, QualityContribution: 3}

	for i := 0; i < 3; i++ {
		if _, err := store.ApplyActivity(context.Background(), "proj-1", "msg-42", result); err != nil {
			t.Fatalf("apply %d failed: %v", i+1, err)
		}
	}

	metrics, _ := store.GetOrCreate(context.Background(), "proj-1")
	if metrics.MessagesCount != 1 {
		t.Fatalf("expected one message, got %d", metrics.MessagesCount)
	}
}

func TestStoreApplyActivityRejectsEmptyID(t *testing.T) {
	store := NewStore()
	_, err := store.ApplyActivity(context.Background(), "proj-1", "  ", classify.Result{Category: classify.CategoryOrdinary})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestStorePaperUpdatesQualityAverage(t *testing.T) {
	store := NewStore()

	metrics, err := store.ApplyActivity(context.Background(), "proj-1", "msg-1",
		classify.Result{Category: classify.CategoryPaper, Confidence: 100})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if metrics.PapersShared != 1 {
		t.Fatalf("expected one paper, got %d", metrics.PapersShared)
	}
	if metrics.MessagesCount != 0 {
		t.Fatalf("a paper must not also count as a message")
	}
	// round(0*0.9 + 90*0.1) = 9
	if metrics.QualityScore != 9 {
		t.Fatalf("expected quality 9, got %d", metrics.QualityScore)
	}

	metrics, _ = store.ApplyActivity(context.Background(), "proj-1", "msg-2",
		classify.Result{Category: classify.CategoryPaper, Confidence: 90})
	// round(9*0.9 + 90*0.1) = round(17.1) = 17
	if metrics.QualityScore != 17 {
		t.Fatalf("expected quality 17, got %d", metrics.QualityScore)
	}
}

func TestStoreLowValueLeavesCountersUntouched(t *testing.T) {
	store := NewStore()

	metrics, err := store.ApplyActivity(context.Background(), "proj-1", "msg-1",
		classify.Result{Category: classify.CategoryLowValue, Confidence: 100})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if metrics.MessagesCount != 0 || metrics.PapersShared != 0 {
		t.Fatalf("low value activity must not move counters, got %+v", metrics)
	}
	// round(0*0.9 + 0*0.1) = 0
	if metrics.QualityScore != 0 {
		t.Fatalf("expected quality 0, got %d", metrics.QualityScore)
	}
}

func TestStoreRefreshMemberCountNeverShrinks(t *testing.T) {
	store := NewStore()

	metrics, _ := store.RefreshMemberCount(context.Background(), "proj-1", 12)
	if metrics.MemberCount != 12 {
		t.Fatalf("expected 12 members, got %d", metrics.MemberCount)
	}

	metrics, _ = store.RefreshMemberCount(context.Background(), "proj-1", 8)
	if metrics.MemberCount != 12 {
		t.Fatalf("a lower live count must not shrink the stored maximum, got %d", metrics.MemberCount)
	}
}

func TestStoreCompareAndSetLevel(t *testing.T) {
	store := NewStore()
	_, _ = store.GetOrCreate(context.Background(), "proj-1")

	won, err := store.CompareAndSetLevel(context.Background(), "proj-1", 1, 2)
	if err != nil || !won {
		t.Fatalf("expected winning cas, got won=%v err=%v", won, err)
	}

	won, err = store.CompareAndSetLevel(context.Background(), "proj-1", 1, 2)
	if err != nil || won {
		t.Fatalf("stale expected level must lose, got won=%v err=%v", won, err)
	}

	metrics, _ := store.GetOrCreate(context.Background(), "proj-1")
	if metrics.Level != 2 {
		t.Fatalf("expected level 2, got %d", metrics.Level)
	}
}

func TestStoreMarkNotifiedOncePerLevel(t *testing.T) {
	store := NewStore()

	first, err := store.MarkNotified(context.Background(), "proj-1", 2)
	if err != nil || !first {
		t.Fatalf("expected first mark to claim the guard, got first=%v err=%v", first, err)
	}
	second, err := store.MarkNotified(context.Background(), "proj-1", 2)
	if err != nil || second {
		t.Fatalf("expected second mark to find the guard closed, got first=%v err=%v", second, err)
	}
	other, err := store.MarkNotified(context.Background(), "proj-1", 3)
	if err != nil || !other {
		t.Fatalf("a different level must have its own guard, got first=%v err=%v", other, err)
	}
}

func TestStoreLinkCommunityOnce(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	community := ports.Community{ID: "guild-1", Name: "Lab"}

	metrics, err := store.LinkCommunity(context.Background(), "proj-1", community, now)
	if err != nil {
		t.Fatalf("link failed: %v", err)
	}
	if !metrics.BotLinked || metrics.CommunityID != "guild-1" {
		t.Fatalf("expected linked metrics, got %+v", metrics)
	}

	_, err = store.LinkCommunity(context.Background(), "proj-1", ports.Community{ID: "guild-2"}, now)
	if !errors.Is(err, domainerrors.ErrCommunityLinked) {
		t.Fatalf("expected community linked error, got %v", err)
	}
}

func TestStoreListProjectIDsSorted(t *testing.T) {
	store := NewStore()
	for _, id := range []string{"proj-c", "proj-a", "proj-b"} {
		_, _ = store.GetOrCreate(context.Background(), id)
	}

	ids, err := store.ListProjectIDs(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ids) != 3 || ids[0] != "proj-a" || ids[2] != "proj-c" {
		t.Fatalf("expected sorted ids, got %v", ids)
	}
}
