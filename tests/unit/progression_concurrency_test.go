package unit

import (
	"context"
	"fmt"
	"sync"
	"testing"

	progressionservice "launchpad/contexts/community-growth/progression-service"
	"launchpad/contexts/community-growth/progression-service/domain/classify"
	"launchpad/contexts/community-growth/progression-service/ports"
)

// All trigger paths may fire at once for the same project. Exactly one of
// them must win the level transition and exactly one notification may go out.
func TestProgressionConcurrentTriggersAdvanceOnce(t *testing.T) {
	module := progressionservice.NewInMemoryModule(nil)
	module.Flags.SetFlags("proj-1", ports.AssetFlags{IdeaAssetMinted: true, VisionAssetMinted: true})

	const triggers = 32
	var wg sync.WaitGroup
	advanced := make(chan ports.TriggerOutcome, triggers)
	errs := make(chan error, triggers)

	for i := 0; i < triggers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			source := ports.TriggerManual
			if i%2 == 0 {
				source = ports.TriggerReconcile
			}
			outcome, err := module.Service.OnTrigger(context.Background(), ports.TriggerInput{
				ProjectID: "proj-1",
				Source:    source,
			})
			if err != nil {
				errs <- err
				return
			}
			if outcome.Advanced {
				advanced <- outcome
			}
		}(i)
	}
	wg.Wait()
	close(advanced)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent trigger failed: %v", err)
	}

	winners := 0
	for outcome := range advanced {
		winners++
		if outcome.FromLevel != 1 || outcome.ToLevel != 2 {
			t.Fatalf("unexpected transition %d to %d", outcome.FromLevel, outcome.ToLevel)
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one winning trigger, got %d", winners)
	}

	if sent := module.Notifier.Sent(); len(sent) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(sent))
	}

	metrics, err := module.Service.GetMetrics(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("metrics failed: %v", err)
	}
	if metrics.Level != 2 {
		t.Fatalf("one trigger cycle may gain one level, got %d", metrics.Level)
	}
}

// Concurrent redelivery of the same activity across the webhook and chat
// event paths must count it once.
func TestProgressionConcurrentDuplicateActivity(t *testing.T) {
	module := progressionservice.NewInMemoryModule(nil)

	const deliveries = 16
	var wg sync.WaitGroup
	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			source := ports.TriggerWebhook
			if i%2 == 0 {
				source = ports.TriggerChatEvent
			}
			_, _ = module.Service.OnTrigger(context.Background(), ports.TriggerInput{
				ProjectID: "proj-1",
				Source:    source,
				Activity: &classify.ActivityUnit{
					MessageID: "msg-dup",
					Text:      "detailed methodology discussion for the ongoing study",
				},
			})
		}(i)
	}
	wg.Wait()

	metrics, err := module.Service.GetMetrics(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("metrics failed: %v", err)
	}
	if metrics.MessagesCount != 1 {
		t.Fatalf("expected one counted message, got %d", metrics.MessagesCount)
	}
}

// Distinct projects progress independently under parallel load.
func TestProgressionConcurrentProjectsIsolated(t *testing.T) {
	module := progressionservice.NewInMemoryModule(nil)

	const projects = 8
	var wg sync.WaitGroup
	for p := 0; p < projects; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			projectID := fmt.Sprintf("proj-%d", p)
			for i := 0; i < 5; i++ {
				_, _ = module.Service.OnTrigger(context.Background(), ports.TriggerInput{
					ProjectID: projectID,
					Source:    ports.TriggerChatEvent,
					Activity: &classify.ActivityUnit{
						MessageID: fmt.Sprintf("msg-%d-%d", p, i),
						Text:      "running the weekly community experiment retrospective",
					},
				})
			}
		}(p)
	}
	wg.Wait()

	for p := 0; p < projects; p++ {
		metrics, err := module.Service.GetMetrics(context.Background(), fmt.Sprintf("proj-%d", p))
		if err != nil {
			t.Fatalf("metrics failed: %v", err)
		}
		if metrics.MessagesCount != 5 {
			t.Fatalf("project %d expected 5 messages, got %d", p, metrics.MessagesCount)
		}
	}
}
