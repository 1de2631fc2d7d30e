// internal/device/device.go
package device

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/tamzrod/timerswitch/internal/event"
)

// OutputPort is the 8-bit output bank. One bit per channel.
type OutputPort interface {
	Set(mask byte)
}

// InputPort is the raw digital input port.
// The manual button sits on ButtonBit and is active-low.
type InputPort interface {
	Read() byte
}

// ButtonBit is the input port bit wired to the manual button.
const ButtonBit = 6

// Config wires the device to its collaborators.
type Config struct {
	Table  event.Table // persisted event table
	Output OutputPort
	Input  InputPort
	TX     io.Writer // reply bytes; a write blocks until the link accepts them

	StartDay    uint8  // 1..7
	StartMinute uint16 // 0..1439
}

// Device is the single owned device context.
//
// Tick and Receive run as interrupt handlers: each state change runs to
// completion with irq held, so they never interleave with each other or with
// the short sections of the dispatch loop that read shared state. Handlers
// only raise pending work; the O(32) table scan, the slow persistent write
// and get-entry slot reads happen with irq released.
type Device struct {
	irq sync.Mutex // interrupt mask

	pending pendingWork
	wake    chan struct{}

	// clock (owned by Tick; overwritten by set-day / set-time)
	day         uint8
	minute      uint16
	subtick     uint16
	prevPressed bool

	output          byte
	scheduleEnabled bool

	rx rxMachine
	// stagedDone is non-nil from a set-entry commit until the dispatch loop
	// has persisted it; closing it releases the held-off receiver.
	stagedDone chan struct{}

	table event.Table
	out   OutputPort
	in    InputPort
	tx    io.Writer

	persisted atomic.Uint32
	faults    atomic.Uint32
}

// New builds a device context. Outputs start all-off and schedule mode
// starts disabled.
func New(cfg Config) (*Device, error) {
	if cfg.Table == nil {
		return nil, errors.New("device: event table required")
	}
	if cfg.Output == nil {
		return nil, errors.New("device: output port required")
	}
	if cfg.Input == nil {
		return nil, errors.New("device: input port required")
	}
	if cfg.TX == nil {
		return nil, errors.New("device: tx writer required")
	}

	day := cfg.StartDay
	if day == 0 {
		day = 1
	}

	d := &Device{
		wake:   make(chan struct{}, 1),
		day:    day,
		minute: cfg.StartMinute,
		table:  cfg.Table,
		out:    cfg.Output,
		in:     cfg.Input,
		tx:     cfg.TX,
	}
	d.out.Set(d.output)
	return d, nil
}

// setOutput must be called with irq held. Last writer wins.
func (d *Device) setOutput(mask byte) {
	d.output = mask
	d.out.Set(mask)
}

// reply transmits bytes to the host. Replies are only sent from Receive,
// which the single byte source calls in order.
// The protocol has no error replies, so a failed transmit is only counted.
func (d *Device) reply(b ...byte) {
	if _, err := d.tx.Write(b); err != nil {
		d.faults.Add(1)
	}
}

// Snapshot is a consistent copy of the externally visible device state.
type Snapshot struct {
	Output          byte
	Day             uint8
	Minute          uint16
	ScheduleEnabled bool
	Input           byte
	Persisted       uint32 // table writes committed since start
	Faults          uint32 // failed transmits, lookups and persists
}

// Snapshot captures the current state with interrupts masked.
func (d *Device) Snapshot() Snapshot {
	d.irq.Lock()
	defer d.irq.Unlock()

	return Snapshot{
		Output:          d.output,
		Day:             d.day,
		Minute:          d.minute,
		ScheduleEnabled: d.scheduleEnabled,
		Input:           d.in.Read(),
		Persisted:       d.persisted.Load(),
		Faults:          d.faults.Load(),
	}
}
