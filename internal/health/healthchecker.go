// Package health provides lightweight liveness probing for dependencies.
package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Pinger is implemented by dependencies that can report connectivity.
type Pinger interface {
	HealthPing(ctx context.Context) error
}

// Checker probes a single dependency on an interval and caches the result.
// It starts unhealthy until the first successful probe.
type Checker struct {
	name    string
	pinger  Pinger
	timeout time.Duration
	log     zerolog.Logger
	healthy atomic.Bool
}

// NewChecker creates a checker for one dependency.
func NewChecker(name string, p Pinger, timeout time.Duration, log zerolog.Logger) *Checker {
	return &Checker{name: name, pinger: p, timeout: timeout, log: log}
}

// Start probes immediately and then on every interval tick until ctx is done.
func (c *Checker) Start(ctx context.Context, interval time.Duration) {
	c.probe(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.probe(ctx)
		}
	}
}

// IsHealthy returns the last cached probe result.
func (c *Checker) IsHealthy() bool { return c.healthy.Load() }

func (c *Checker) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.pinger.HealthPing(probeCtx); err != nil {
		if c.healthy.Swap(false) {
			c.log.Warn().Err(err).Str("dependency", c.name).Msg("dependency became unhealthy")
		}
		return
	}
	if !c.healthy.Swap(true) {
		c.log.Info().Str("dependency", c.name).Msg("dependency healthy")
	}
}
