// Package dnscache provides a thread-safe, TTL-based cache for DNS MX lookups
// with singleflight deduplication for concurrent requests to the same domain.
package dnscache

import (
	"context"
	"net"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Resolver is the subset of *net.Resolver the cache needs.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
}

// Cache is a thread-safe DNS MX lookup cache.
// Concurrent lookups for the same domain are deduplicated:
// only one actual DNS query is performed, and all waiters receive the result.
type Cache struct {
	mu            sync.Mutex
	entries       map[string]entry
	group         singleflight.Group
	cacheTTL      time.Duration
	lookupTimeout time.Duration
	resolver      Resolver
	now           func() time.Time
}

type entry struct {
	records []*net.MX
	err     error
	expires time.Time
}

// New creates a DNS cache with the given lookup timeout and cache TTL.
func New(lookupTimeout, cacheTTL time.Duration) *Cache {
	return NewWithResolver(lookupTimeout, cacheTTL, &net.Resolver{})
}

// NewWithResolver creates a DNS cache with a custom resolver (for testing).
func NewWithResolver(lookupTimeout, cacheTTL time.Duration, r Resolver) *Cache {
	return &Cache{
		entries:       make(map[string]entry),
		cacheTTL:      cacheTTL,
		lookupTimeout: lookupTimeout,
		resolver:      r,
		now:           time.Now,
	}
}

// LookupMX returns MX records for the domain, using the cache when possible.
// Errors are cached like answers. The lookup itself runs detached from ctx's
// cancellation so that one cancelled waiter does not fail the others; ctx
// only bounds how long this caller waits.
func (c *Cache) LookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	c.mu.Lock()
	if e, ok := c.entries[domain]; ok && c.now().Before(e.expires) {
		c.mu.Unlock()
		return copyMX(e.records), e.err
	}
	c.mu.Unlock()

	ch := c.group.DoChan(domain, func() (any, error) {
		// a flight that finished between our cache miss and now
		c.mu.Lock()
		if e, ok := c.entries[domain]; ok && c.now().Before(e.expires) {
			c.mu.Unlock()
			return e.records, e.err
		}
		c.mu.Unlock()

		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.lookupTimeout)
		defer cancel()

		records, err := c.resolver.LookupMX(lookupCtx, domain)

		c.mu.Lock()
		c.entries[domain] = entry{records: records, err: err, expires: c.now().Add(c.cacheTTL)}
		c.mu.Unlock()

		return records, err
	})

	select {
	case res := <-ch:
		records, _ := res.Val.([]*net.MX)
		return copyMX(records), res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Len returns the number of entries in the cache (for diagnostics).
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// copyMX returns a deep copy of MX records to prevent callers from
// mutating cached data (e.g., via sort.Slice).
func copyMX(records []*net.MX) []*net.MX {
	if records == nil {
		return nil
	}
	out := make([]*net.MX, len(records))
	for i, r := range records {
		cp := *r
		out[i] = &cp
	}
	return out
}
