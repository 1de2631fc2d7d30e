// internal/board/board.go
package board

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/tamzrod/timerswitch/internal/device"
)

// Outputs is a host output bank. It keeps the current mask and logs every
// change.
type Outputs struct {
	name string
	v    atomic.Uint32
	init atomic.Bool
}

func NewOutputs(name string) *Outputs {
	return &Outputs{name: name}
}

// Set implements device.OutputPort.
func (o *Outputs) Set(mask byte) {
	prev := byte(o.v.Swap(uint32(mask)))
	if o.init.Swap(true) && prev == mask {
		return
	}
	log.Printf("outputs (device=%s): 0x%02x -> 0x%02x", o.name, prev, mask)
}

// Mask returns the last mask written.
func (o *Outputs) Mask() byte { return byte(o.v.Load()) }

// Inputs is a host input port. Bits read high unless driven low; the
// button is active-low on device.ButtonBit.
type Inputs struct {
	v atomic.Uint32
}

func NewInputs(initial byte) *Inputs {
	in := &Inputs{}
	in.v.Store(uint32(initial))
	return in
}

// Read implements device.InputPort.
func (in *Inputs) Read() byte { return byte(in.v.Load()) }

// Set replaces the whole port value.
func (in *Inputs) Set(v byte) { in.v.Store(uint32(v)) }

// Press drives the button line low.
func (in *Inputs) Press() { in.clear(1 << device.ButtonBit) }

// Release lets the button line float high.
func (in *Inputs) Release() { in.setBits(1 << device.ButtonBit) }

// Pulse presses the button and releases it after hold.
// hold should span at least two ticks so the press is sampled.
func (in *Inputs) Pulse(hold time.Duration) {
	in.Press()
	time.AfterFunc(hold, in.Release)
}

func (in *Inputs) clear(bits byte) {
	for {
		cur := in.v.Load()
		if in.v.CompareAndSwap(cur, cur&^uint32(bits)) {
			return
		}
	}
}

func (in *Inputs) setBits(bits byte) { in.v.Or(uint32(bits)) }
