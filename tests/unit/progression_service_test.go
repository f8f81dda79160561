package unit

import (
	"context"
	"errors"
	"testing"

	progressionservice "launchpad/contexts/community-growth/progression-service"
	domainerrors "launchpad/contexts/community-growth/progression-service/domain/errors"
	"launchpad/contexts/community-growth/progression-service/ports"
	httptransport "launchpad/contexts/community-growth/progression-service/transport/http"
)

func TestProgressionWebhookCountsPaper(t *testing.T) {
	module := progressionservice.NewInMemoryModule(nil)

	resp, err := module.Handler.IngestWebhookHandler(context.Background(), httptransport.WebhookActivityRequest{
		ProjectID: "proj-1",
		MessageID: "msg-1",
		Content:   "tonight's pick https://arxiv.org/abs/2504.11091",
	})
	if err != nil {
		t.Fatalf("webhook failed: %v", err)
	}
	if resp.Data.Category != "paper" {
		t.Fatalf("expected paper classification, got %s", resp.Data.Category)
	}
	if resp.Data.Metrics.PapersShared != 1 {
		t.Fatalf("expected one paper, got %d", resp.Data.Metrics.PapersShared)
	}
	if resp.Data.Metrics.MessagesCount != 0 {
		t.Fatalf("a paper must not also count as a message")
	}
}

func TestProgressionWebhookRedeliveryCountsOnce(t *testing.T) {
	module := progressionservice.NewInMemoryModule(nil)

	req := httptransport.WebhookActivityRequest{
		ProjectID: "proj-1",
		MessageID: "msg-42",
		Content:   "writing up our community roadmap for the next quarter",
	}
	for i := 0; i < 2; i++ {
		if _, err := module.Handler.IngestWebhookHandler(context.Background(), req); err != nil {
			t.Fatalf("delivery %d failed: %v", i+1, err)
		}
	}

	metrics, err := module.Handler.GetMetricsHandler(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("metrics failed: %v", err)
	}
	if metrics.Data.Metrics.MessagesCount != 1 {
		t.Fatalf("expected one counted message, got %d", metrics.Data.Metrics.MessagesCount)
	}
}

func TestProgressionLevelOneAdvancesOnAssetFlags(t *testing.T) {
	module := progressionservice.NewInMemoryModule(nil)
	module.Flags.SetFlags("proj-1", ports.AssetFlags{IdeaAssetMinted: true, VisionAssetMinted: true})

	resp, err := module.Handler.CheckHandler(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !resp.Data.Advanced || resp.Data.ToLevel != 2 {
		t.Fatalf("expected advancement to level 2, got %+v", resp.Data)
	}
	if len(module.Notifier.Sent()) != 1 {
		t.Fatalf("expected one notification, got %d", len(module.Notifier.Sent()))
	}
}

func TestProgressionFullJourneyToTerminalLevel(t *testing.T) {
	module := progressionservice.NewInMemoryModule(nil)
	ctx := context.Background()

	module.Flags.SetFlags("proj-1", ports.AssetFlags{IdeaAssetMinted: true, VisionAssetMinted: true})
	if resp, err := module.Handler.CheckHandler(ctx, "proj-1"); err != nil || resp.Data.ToLevel != 2 {
		t.Fatalf("expected level 2, got %+v err=%v", resp.Data, err)
	}

	module.Directory.SeedInvite("invite-1", ports.Community{
		ID: "guild-1", Name: "Lab", ApproximateMemberCount: 4,
	})
	if _, err := module.Handler.RegisterCommunityHandler(ctx, "proj-1", httptransport.RegisterCommunityRequest{
		InviteURL: "invite-1",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp, err := module.Handler.CheckHandler(ctx, "proj-1"); err != nil || resp.Data.ToLevel != 3 {
		t.Fatalf("expected level 3, got %+v err=%v", resp.Data, err)
	}

	// Grow the counters past the final gate.
	members := 10
	for i := 0; i < 100; i++ {
		req := httptransport.WebhookActivityRequest{
			ProjectID: "proj-1",
			MessageID: "msg-" + string(rune('a'+i%26)) + string(rune('0'+i/26)),
			Content:   "substantial discussion about the current experiment results",
		}
		if _, err := module.Handler.IngestWebhookHandler(ctx, req); err != nil {
			t.Fatalf("message %d failed: %v", i, err)
		}
	}
	for i := 0; i < 25; i++ {
		req := httptransport.WebhookActivityRequest{
			ProjectID:   "proj-1",
			MessageID:   "paper-" + string(rune('a'+i)),
			Content:     "new result",
			Attachments: []httptransport.AttachmentDTO{{Name: "study.pdf"}},
		}
		if _, err := module.Handler.IngestWebhookHandler(ctx, req); err != nil {
			t.Fatalf("paper %d failed: %v", i, err)
		}
	}
	req := httptransport.WebhookActivityRequest{
		ProjectID:   "proj-1",
		MessageID:   "msg-final",
		Content:     "we hit the growth target",
		MemberCount: &members,
	}
	resp, err := module.Handler.IngestWebhookHandler(ctx, req)
	if err != nil {
		t.Fatalf("final webhook failed: %v", err)
	}
	if resp.Data.ToLevel != 4 {
		t.Fatalf("expected terminal level 4, got %+v", resp.Data)
	}

	// Terminal: nothing advances past level 4 automatically.
	check, err := module.Handler.CheckHandler(ctx, "proj-1")
	if err != nil {
		t.Fatalf("post-terminal check failed: %v", err)
	}
	if check.Data.Advanced {
		t.Fatalf("terminal level must not advance, got %+v", check.Data)
	}
	if len(module.Notifier.Sent()) != 3 {
		t.Fatalf("expected one notification per transition, got %d", len(module.Notifier.Sent()))
	}
}

func TestProgressionRegisterCommunityBadInvite(t *testing.T) {
	module := progressionservice.NewInMemoryModule(nil)

	_, err := module.Handler.RegisterCommunityHandler(context.Background(), "proj-1", httptransport.RegisterCommunityRequest{
		InviteURL: "invite-unknown",
	})
	if !errors.Is(err, domainerrors.ErrDirectoryUnreachable) {
		t.Fatalf("expected directory unreachable, got %v", err)
	}
}

func TestProgressionMetricsIncludesNextRequirement(t *testing.T) {
	module := progressionservice.NewInMemoryModule(nil)

	resp, err := module.Handler.GetMetricsHandler(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("metrics failed: %v", err)
	}
	if resp.Data.Metrics.Level != 1 {
		t.Fatalf("expected level 1, got %d", resp.Data.Metrics.Level)
	}
	if resp.Data.NextRequirement != "mint both the idea and vision assets" {
		t.Fatalf("unexpected next requirement: %q", resp.Data.NextRequirement)
	}
}
