package limiter

import (
	"context"
	"log"
	"time"
)

// A Pacer spaces sequential requests to an upstream that throttles or
// bans bursts. The delays are cooperative waits, not backoff with
// jitter: the caller is a single sequential pass and just needs to keep
// its request rate polite.
type Pacer struct {
	// PageDelay separates successive page fetches within one year.
	PageDelay time.Duration

	// YearDelay separates one year's pagination from the next.
	YearDelay time.Duration

	// Cooldown is how long to back off after the upstream signals rate
	// limiting, before moving on.
	Cooldown time.Duration
}

func (p Pacer) BetweenPages(ctx context.Context) error { return Sleep(ctx, p.PageDelay) }

func (p Pacer) BetweenYears(ctx context.Context) error { return Sleep(ctx, p.YearDelay) }

func (p Pacer) CoolDown(ctx context.Context) error {
	if p.Cooldown > time.Second {
		log.Printf("rate limited; cooling down for %s", p.Cooldown)
	}
	return Sleep(ctx, p.Cooldown)
}

// Sleep waits for d or until ctx is canceled, whichever comes first. It
// never busy-loops; a zero or negative d returns immediately.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
