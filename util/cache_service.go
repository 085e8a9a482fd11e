// api/util/cache_service.go

package util

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	echo_errors "github.com/dev-mohitbeniwal/weathergate/api/errors"
	logger "github.com/dev-mohitbeniwal/weathergate/api/logging"
	"github.com/dev-mohitbeniwal/weathergate/api/model"
	pdp_model "github.com/dev-mohitbeniwal/weathergate/api/pdp/model"
)

const (
	slotKey = "weather"

	// DefaultFetchTimeout bounds a regeneration that no caller can cancel
	DefaultFetchTimeout = 30 * time.Second
)

// DataProvider produces a fresh weather payload
type DataProvider interface {
	Fetch(ctx context.Context) (*model.WeatherStats, error)
}

// ResultCache is a single-slot, time-windowed cache in front of a DataProvider.
// Concurrent stale reads share one regeneration.
type ResultCache struct {
	provider     DataProvider
	clock        Clock
	window       time.Duration
	fetchTimeout time.Duration

	mu    sync.RWMutex
	slot  *pdp_model.CachedPayload
	group singleflight.Group
}

func NewResultCache(provider DataProvider, clock Clock, window time.Duration) *ResultCache {
	if clock == nil {
		clock = SystemClock()
	}
	return &ResultCache{
		provider:     provider,
		clock:        clock,
		window:       window,
		fetchTimeout: DefaultFetchTimeout,
	}
}

// SetFetchTimeout changes the bound on a single regeneration
func (c *ResultCache) SetFetchTimeout(d time.Duration) {
	if d > 0 {
		c.fetchTimeout = d
	}
}

// Get returns the cached payload while it is younger than the freshness
// window, otherwise regenerates it. A provider failure leaves the slot as it was.
func (c *ResultCache) Get(ctx context.Context) (*model.WeatherStats, error) {
	if value, ok := c.fresh(c.clock.Now()); ok {
		return value, nil
	}

	// The regeneration outlives any one caller: each caller only stops
	// waiting when its own context is done.
	ch := c.group.DoChan(slotKey, func() (interface{}, error) {
		now := c.clock.Now()
		if value, ok := c.fresh(now); ok {
			return value, nil
		}

		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()

		value, err := c.provider.Fetch(fctx)
		if err != nil {
			logger.Error("Failed to regenerate weather payload", zap.Error(err))
			return nil, err
		}

		c.mu.Lock()
		c.slot = &pdp_model.CachedPayload{Value: value, GeneratedAt: now}
		c.mu.Unlock()

		logger.Debug("Weather payload regenerated",
			zap.String("sol", value.Sol),
			zap.Time("generatedAt", now),
			zap.Duration("window", c.window))
		return value, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			if errors.Is(res.Err, echo_errors.ErrUpstreamData) {
				return nil, res.Err
			}
			return nil, fmt.Errorf("%w: %w", echo_errors.ErrUpstreamData, res.Err)
		}
		if res.Shared {
			logger.Debug("Weather payload shared with concurrent caller")
		}
		return res.Val.(*model.WeatherStats), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", echo_errors.ErrUpstreamData, ctx.Err())
	}
}

func (c *ResultCache) fresh(now time.Time) (*model.WeatherStats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.slot.FreshAt(now, c.window) {
		return c.slot.Value, true
	}
	return nil, false
}

// Snapshot returns the current slot, or nil if nothing was generated yet.
func (c *ResultCache) Snapshot() *pdp_model.CachedPayload {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.slot == nil {
		return nil
	}
	cp := *c.slot
	return &cp
}
