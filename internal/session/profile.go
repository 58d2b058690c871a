package session

import (
	"context"
	"sync"

	"hr-tracker/internal/models"
)

// ProfileFetcher loads the current user's profile from the server.
type ProfileFetcher interface {
	Profile(ctx context.Context) (*models.User, error)
}

// ProfileCache holds the result of the last successful profile fetch.
// A failed fetch is not cached and not retried. The lock is not held while
// fetching: a 401 on the fetch invalidates the cache through the guard.
type ProfileCache struct {
	mu      sync.Mutex
	fetcher ProfileFetcher
	user    *models.User
	gen     uint64
}

func NewProfileCache(fetcher ProfileFetcher) *ProfileCache {
	return &ProfileCache{fetcher: fetcher}
}

// Get returns the cached profile, fetching it on first use.
func (c *ProfileCache) Get(ctx context.Context) (*models.User, error) {
	c.mu.Lock()
	if c.user != nil {
		u := c.user
		c.mu.Unlock()
		return u, nil
	}
	gen := c.gen
	c.mu.Unlock()

	u, err := c.fetcher.Profile(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// an Invalidate or Prime during the fetch wins
	if c.gen == gen {
		c.user = u
	}
	return u, nil
}

// Prime stores u without a request, e.g. from a login response.
func (c *ProfileCache) Prime(u *models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = u
	c.gen++
}

// Invalidate drops the cached profile.
func (c *ProfileCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = nil
	c.gen++
}

// Cached reports whether a profile is held.
func (c *ProfileCache) Cached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user != nil
}
