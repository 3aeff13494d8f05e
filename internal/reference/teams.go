package reference

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"nftforge/internal/domain"
)

// MemoryTeamStore keeps team prompts in process. Tests and offline CLI runs
// use it in place of a database.
type MemoryTeamStore struct {
	mu      sync.RWMutex
	prompts map[string]string
}

func NewMemoryTeamStore(seed map[string]string) *MemoryTeamStore {
	prompts := make(map[string]string, len(seed))
	for k, v := range seed {
		prompts[k] = v
	}
	return &MemoryTeamStore{prompts: prompts}
}

func (m *MemoryTeamStore) LoadTeamBasePrompt(ctx context.Context, teamName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.prompts[teamName]
	if !ok {
		return "", domain.ReferenceMissf("No reference found for team %s", teamName)
	}
	return p, nil
}

func (m *MemoryTeamStore) PutTeamBasePrompt(ctx context.Context, teamName, basePrompt string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts[teamName] = basePrompt
	return nil
}

// sharedLookupTimeout bounds a collapsed backend lookup.
const sharedLookupTimeout = 10 * time.Second

// CachedTeamStore memoises successful lookups for a TTL and collapses
// concurrent lookups of the same team into one backend call. Misses are not
// cached so a freshly seeded team shows up immediately.
type CachedTeamStore struct {
	next  domain.TeamReferenceStore
	cache *gocache.Cache
	group singleflight.Group
}

// NewCachedTeamStore wraps next. A non-positive ttl disables caching and
// returns next unchanged.
func NewCachedTeamStore(next domain.TeamReferenceStore, ttl time.Duration) domain.TeamReferenceStore {
	if next == nil || ttl <= 0 {
		return next
	}
	return &CachedTeamStore{next: next, cache: gocache.New(ttl, 2*ttl)}
}

func (c *CachedTeamStore) LoadTeamBasePrompt(ctx context.Context, teamName string) (string, error) {
	if v, ok := c.cache.Get(teamName); ok {
		return v.(string), nil
	}
	// The shared lookup belongs to no single caller: one client going away
	// must not fail the others waiting on the same team.
	ch := c.group.DoChan(teamName, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLookupTimeout)
		defer cancel()
		p, err := c.next.LoadTeamBasePrompt(lookupCtx, teamName)
		if err != nil {
			return "", err
		}
		c.cache.SetDefault(teamName, p)
		return p, nil
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Ping forwards to the wrapped store when it supports health checks.
func (c *CachedTeamStore) Ping(ctx context.Context) error {
	if p, ok := c.next.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Invalidate drops a cached entry, used after an upsert through the CLI.
func (c *CachedTeamStore) Invalidate(teamName string) {
	c.cache.Delete(teamName)
}

// Pinger is implemented by stores backed by a remote database.
type Pinger interface {
	Ping(ctx context.Context) error
}
