// internal/device/dispatch.go
package device

import (
	"context"
	"log"

	"github.com/tamzrod/timerswitch/internal/event"
)

// Run is the idle-priority dispatch loop. It parks until a handler raises
// work, acts on it, and parks again. Returns when ctx is done.
func (d *Device) Run(ctx context.Context) error {
	for {
		if d.pending.peek() == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-d.wake:
			}
		}
		d.DispatchOnce()
	}
}

// DispatchOnce takes the pending flags and acts on them:
// a schedule lookup on MinuteElapsed (only with schedule mode enabled),
// then a table write on TableWritePending.
func (d *Device) DispatchOnce() Work {
	w := d.pending.take()
	if w == 0 {
		return 0
	}

	d.irq.Lock()
	enabled := d.scheduleEnabled
	day, minute := d.day, d.minute
	staged := d.rx.staged
	d.irq.Unlock()

	if w.Has(MinuteElapsed) && enabled {
		d.applySchedule(day, minute)
	}
	if w.Has(TableWritePending) {
		d.persist(staged)
		d.releaseStaged()
	}
	return w
}

// releaseStaged lets the receiver take the next byte.
func (d *Device) releaseStaged() {
	d.irq.Lock()
	if d.stagedDone != nil {
		close(d.stagedDone)
		d.stagedDone = nil
	}
	d.irq.Unlock()
}

func (d *Device) applySchedule(day uint8, minute uint16) {
	e, _, found, err := event.Lookup(d.table, day, minute)
	if err != nil {
		d.faults.Add(1)
		log.Printf("schedule lookup failed (day=%d minute=%d): %v", day, minute, err)
		return
	}
	if !found {
		return
	}

	d.irq.Lock()
	d.setOutput(e.Level())
	d.irq.Unlock()
}

func (d *Device) persist(s StagedEntry) {
	if int(s.Index) >= event.Slots {
		d.faults.Add(1)
		log.Printf("table write dropped (index=%d): out of range", s.Index)
		return
	}
	if err := d.table.WriteEntry(int(s.Index), s.Entry); err != nil {
		d.faults.Add(1)
		log.Printf("table write failed (index=%d): %v", s.Index, err)
		return
	}
	d.persisted.Add(1)
}
