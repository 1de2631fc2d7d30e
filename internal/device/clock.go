// internal/device/clock.go
package device

import (
	"context"
	"time"

	"github.com/tamzrod/timerswitch/internal/event"
)

// Tick source geometry: a 7.3728 MHz clock, /1024 prescaler, 8-bit overflow.
const (
	clockHz   = 7372800
	prescaler = 1024
	timerSpan = 256

	// tickThreshold is the last subtick count of a minute; the counter
	// rolls over on the tick that exceeds it.
	tickThreshold = clockHz * 60 / prescaler / timerSpan

	// TicksPerMinute is the number of ticks that make up one minute.
	TicksPerMinute = tickThreshold + 1
)

// TickPeriod is the real-time period of one tick.
const TickPeriod = time.Minute / TicksPerMinute

const daysPerWeek = 7

// Tick is the periodic clock handler.
// It samples the button, then advances the clock. It never blocks on
// anything but the interrupt mask.
func (d *Device) Tick() {
	d.irq.Lock()
	defer d.irq.Unlock()

	if d.scheduleEnabled {
		pressed := d.in.Read()&(1<<ButtonBit) == 0
		if pressed && !d.prevPressed {
			d.setOutput(^d.output)
		}
		d.prevPressed = pressed
	}

	d.subtick++
	if d.subtick < TicksPerMinute {
		return
	}
	d.subtick = 0

	d.minute++
	if d.minute >= event.MinutesPerDay {
		d.minute = 0
		d.day++
		if d.day > daysPerWeek {
			d.day = 1
		}
	}

	d.raise(MinuteElapsed)
}

// RunClock drives Tick every period until ctx is done.
// A period <= 0 uses TickPeriod.
func (d *Device) RunClock(ctx context.Context, period time.Duration) {
	if period <= 0 {
		period = TickPeriod
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Tick()
		}
	}
}
