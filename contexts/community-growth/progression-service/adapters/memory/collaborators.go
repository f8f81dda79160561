package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"launchpad/contexts/community-growth/progression-service/ports"
)

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// Notifier records sent notifications; used by tests and local runs.
type Notifier struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Send(_ context.Context, notification ports.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
	return nil
}

func (n *Notifier) Sent() []ports.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.Notification(nil), n.sent...)
}

// Directory resolves invites and serves live member counts from seeded maps.
type Directory struct {
	mu          sync.RWMutex
	communities map[string]ports.Community
	counts      map[string]int
}

func NewDirectory() *Directory {
	return &Directory{
		communities: make(map[string]ports.Community),
		counts:      make(map[string]int),
	}
}

func (d *Directory) SeedInvite(invite string, community ports.Community) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.communities[strings.TrimSpace(invite)] = community
	d.counts[community.ID] = community.ApproximateMemberCount
}

func (d *Directory) SetMemberCount(communityID string, count int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.counts[strings.TrimSpace(communityID)] = count
}

func (d *Directory) ResolveInvite(_ context.Context, invite string) (ports.Community, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	community, ok := d.communities[strings.TrimSpace(invite)]
	return community, ok, nil
}

func (d *Directory) MemberCount(_ context.Context, communityID string) (int, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	count, ok := d.counts[strings.TrimSpace(communityID)]
	return count, ok, nil
}

// FlagsSource serves asset completion flags from a seeded map.
type FlagsSource struct {
	mu    sync.RWMutex
	flags map[string]ports.AssetFlags
}

func NewFlagsSource() *FlagsSource {
	return &FlagsSource{flags: make(map[string]ports.AssetFlags)}
}

func (f *FlagsSource) SetFlags(projectID string, flags ports.AssetFlags) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flags[strings.TrimSpace(projectID)] = flags
}

func (f *FlagsSource) Flags(_ context.Context, projectID string) (ports.AssetFlags, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.flags[strings.TrimSpace(projectID)], nil
}
