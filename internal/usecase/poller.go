package usecase

import (
	"context"
	"time"

	"lashup-client/pkg/logger"

	"golang.org/x/time/rate"
)

// Poller re-runs a fetch on a fixed interval to keep public preview views
// fresh. It is a liveness mechanism, not a correctness one: last response
// wins. The limiter caps total request volume across all polled resources;
// cancellation of ctx stops the loop (no leaked timers).
type Poller struct {
	interval time.Duration
	limiter  *rate.Limiter
}

func NewPoller(interval time.Duration, perSec float64, burst int) *Poller {
	if burst < 1 {
		burst = 1
	}
	return &Poller{
		interval: interval,
		limiter:  rate.NewLimiter(rate.Limit(perSec), burst),
	}
}

// Run fetches once immediately, then on every tick until ctx is done.
// Fetch errors are already surfaced by the store; here they only log.
func (p *Poller) Run(ctx context.Context, name string, fetch func(context.Context) error) {
	tick := func() {
		if err := p.limiter.Wait(ctx); err != nil {
			return
		}
		if err := fetch(ctx); err != nil && ctx.Err() == nil {
			logger.Debug().Err(err).Str("poll", name).Msg("Poll fetch failed")
		}
	}

	tick()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Debug().Str("poll", name).Msg("Poller stopped")
			return
		case <-ticker.C:
			tick()
		}
	}
}
