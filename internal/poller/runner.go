// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run samples the device once at start and then on every interval, handing
// results to out. A sample the consumer has not taken yet is replaced by the
// next one, so a slow mirror always catches up to the current state.
func (p *Poller) Run(ctx context.Context, out chan<- PollResult) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	next := p.PollOnce()
	send := out

	for {
		select {
		case <-ctx.Done():
			return
		case send <- next:
			send = nil
		case <-ticker.C:
			next = p.PollOnce()
			send = out
		}
	}
}
