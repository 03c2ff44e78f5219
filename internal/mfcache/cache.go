// Package mfcache memoizes the Kite mutual-fund instrument dump in memory.
// The upstream endpoint returns a large CSV (thousands of schemes), refreshed
// at most once per TTL window.
package mfcache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// TTL is how long a loaded instrument list stays valid.
const TTL = 24 * time.Hour

// DefaultSearchLimit caps search results when the caller passes limit <= 0.
const DefaultSearchLimit = 10

// FetchFunc retrieves the raw instrument CSV from the brokerage API.
type FetchFunc func(ctx context.Context) (string, error)

// Cache holds the instrument list for all users. A refresh triggered by one
// user's search benefits everyone; the list is swapped wholesale so readers
// never observe a partial load.
type Cache struct {
	mu          sync.RWMutex
	instruments []Instrument
	fetchedAt   time.Time

	now func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock injects the time source, letting tests control expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func New(opts ...Option) *Cache {
	c := &Cache{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stats describes the cache state.
type Stats struct {
	Cached    bool
	Count     int
	FetchedAt time.Time
	Expired   bool
	TTL       time.Duration
}

// Instruments returns the cached list, refreshing first when empty or past
// TTL. A failed refresh returns the fetch error and leaves any previously
// loaded list untouched.
func (c *Cache) Instruments(ctx context.Context, fetch FetchFunc) ([]Instrument, error) {
	c.mu.RLock()
	if !c.expiredLocked() {
		instruments := c.instruments
		c.mu.RUnlock()
		return instruments, nil
	}
	c.mu.RUnlock()

	raw, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	instruments := parseInstruments(raw)

	c.mu.Lock()
	c.instruments = instruments
	c.fetchedAt = c.now()
	c.mu.Unlock()

	logrus.WithField("count", len(instruments)).Info("mf instrument cache loaded")
	return instruments, nil
}

// Search returns up to limit instruments whose name, AMC, or trading symbol
// contains the query as a case-insensitive substring, in list order. A blank
// query returns nothing and never touches the network.
func (c *Cache) Search(ctx context.Context, fetch FetchFunc, query string, limit int) ([]Instrument, error) {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	instruments, err := c.Instruments(ctx, fetch)
	if err != nil {
		return nil, err
	}

	var matches []Instrument
	for _, inst := range instruments {
		if strings.Contains(strings.ToLower(inst.Name), term) ||
			strings.Contains(strings.ToLower(inst.AMC), term) ||
			strings.Contains(strings.ToLower(inst.Tradingsymbol), term) {
			matches = append(matches, inst)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches, nil
}

// Clear drops the cached list, forcing the next access to reload regardless
// of TTL.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.instruments = nil
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}

func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Cached:    c.instruments != nil,
		Count:     len(c.instruments),
		FetchedAt: c.fetchedAt,
		Expired:   c.expiredLocked(),
		TTL:       TTL,
	}
}

func (c *Cache) expiredLocked() bool {
	if c.instruments == nil || c.fetchedAt.IsZero() {
		return true
	}
	return c.now().Sub(c.fetchedAt) > TTL
}
