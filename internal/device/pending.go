// internal/device/pending.go
package device

import "sync/atomic"

// Work is the pending-work flag set.
type Work uint32

const (
	MinuteElapsed     Work = 1 << 0
	TableWritePending Work = 1 << 1
)

func (w Work) Has(f Work) bool { return w&f != 0 }

// pendingWork is set by the handlers and cleared only by the dispatch loop.
// take is a single atomic swap, so a flag raised while the loop is acting
// on the previous set is kept for the next round instead of being cleared.
type pendingWork struct {
	v atomic.Uint32
}

func (p *pendingWork) set(w Work) { p.v.Or(uint32(w)) }

func (p *pendingWork) take() Work { return Work(p.v.Swap(0)) }

func (p *pendingWork) peek() Work { return Work(p.v.Load()) }

// raise sets a flag and wakes the dispatch loop.
// The wake channel holds one token, so a raise that lands between the
// loop's flag check and its wait still wakes it.
func (d *Device) raise(w Work) {
	d.pending.set(w)
	select {
	case d.wake <- struct{}{}:
	default:
	}
}
