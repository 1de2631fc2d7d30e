// internal/device/receive.go
package device

import (
	"github.com/tamzrod/timerswitch/internal/event"
	"github.com/tamzrod/timerswitch/internal/protocol"
)

// rxState is the protocol machine state.
type rxState uint8

const (
	stateCommand rxState = iota
	stateSetDay
	stateSetMinuteHi
	stateSetMinuteLo
	stateSetEntryIndex
	stateSetEntryOnOff
	stateSetEntryMinuteHi
	stateSetEntryMinuteLo
	stateSetEntryDay
	stateGetEntry
)

var rxStateNames = [...]string{
	"Command",
	"SetDay",
	"SetMinuteHi",
	"SetMinuteLo",
	"SetEntryIndex",
	"SetEntryOnOff",
	"SetEntryMinuteHi",
	"SetEntryMinuteLo",
	"SetEntryDay",
	"GetEntry",
}

func (s rxState) String() string {
	if int(s) < len(rxStateNames) {
		return rxStateNames[s]
	}
	return "Unknown"
}

// StagedEntry is a table record assembled from the wire, waiting for the
// dispatch loop to persist it.
type StagedEntry struct {
	Index uint8
	Entry event.Entry
}

// rxMachine holds the protocol state and its accumulators.
// There is no timeout and no resync: a partial command waits forever for
// its remaining bytes.
type rxMachine struct {
	state    rxState
	minuteHi byte
	staged   StagedEntry
}

// Receive is the byte-arrival handler: exactly one state transition per byte.
//
// While a staged entry is waiting to be persisted the next byte is held off
// until the dispatch loop has written it, the same way the receive interrupt
// stays masked during the table write. The staged record therefore cannot be
// overwritten, and a get-entry always sees the committed slot.
func (d *Device) Receive(b byte) {
	d.holdOff()

	d.irq.Lock()
	index, get := d.step(b)
	d.irq.Unlock()

	if get {
		d.replyEntry(index)
	}
}

// holdOff blocks until no staged entry is outstanding.
func (d *Device) holdOff() {
	d.irq.Lock()
	done := d.stagedDone
	d.irq.Unlock()

	if done != nil {
		<-done
	}
}

// step applies b to the protocol machine. Must be called with irq held.
// It reports a get-entry index instead of reading the table itself, so the
// slot read happens with irq released.
func (d *Device) step(b byte) (index byte, getEntry bool) {
	rx := &d.rx

	switch rx.state {
	case stateCommand:
		d.command(b)

	case stateSetDay:
		d.day = b
		d.subtick = 0
		rx.state = stateCommand

	case stateSetMinuteHi:
		rx.minuteHi = b
		rx.state = stateSetMinuteLo

	case stateSetMinuteLo:
		d.minute = uint16(rx.minuteHi)<<8 | uint16(b)
		d.subtick = 0
		rx.state = stateCommand

	case stateSetEntryIndex:
		rx.staged.Index = b
		rx.state = stateSetEntryOnOff

	case stateSetEntryOnOff:
		rx.staged.Entry.OnOff = b&0x01 != 0
		rx.state = stateSetEntryMinuteHi

	case stateSetEntryMinuteHi:
		rx.staged.Entry.Minute = uint16(b) << 8
		rx.state = stateSetEntryMinuteLo

	case stateSetEntryMinuteLo:
		rx.staged.Entry.Minute |= uint16(b)
		rx.state = stateSetEntryDay

	case stateSetEntryDay:
		rx.staged.Entry.Day = b
		rx.state = stateCommand
		d.stagedDone = make(chan struct{})
		d.raise(TableWritePending)

	case stateGetEntry:
		rx.state = stateCommand
		return b, true
	}
	return 0, false
}

// replyEntry answers a get-entry straight from the table; the staged entry
// is not involved. Indices past the table read back as an inert entry.
func (d *Device) replyEntry(index byte) {
	var e event.Entry
	if int(index) < event.Slots {
		cur, err := d.table.ReadEntry(int(index))
		if err != nil {
			d.faults.Add(1)
		} else {
			e = cur
		}
	}
	reply := event.EncodeReply(e)
	d.reply(reply[:]...)
}

// command executes an opcode received in the Command state.
func (d *Device) command(op byte) {
	rx := &d.rx

	switch op {
	case protocol.OpOutputsOff:
		d.setOutput(0x00)
	case protocol.OpOutputsOn:
		d.setOutput(0xFF)
	case protocol.OpGetOutputs:
		d.reply(d.output)
	case protocol.OpSetDay:
		rx.state = stateSetDay
	case protocol.OpSetTime:
		rx.state = stateSetMinuteHi
	case protocol.OpSetEntry:
		rx.state = stateSetEntryIndex
	case protocol.OpScheduleOff:
		d.scheduleEnabled = false
	case protocol.OpScheduleOn:
		d.scheduleEnabled = true
	case protocol.OpGetTime:
		d.reply(d.day, byte(d.minute>>8), byte(d.minute))
	case protocol.OpGetEntry:
		rx.state = stateGetEntry
	case protocol.OpGetSchedule:
		if d.scheduleEnabled {
			d.reply(1)
		} else {
			d.reply(0)
		}
	case protocol.OpGetInputs:
		d.reply(d.in.Read())
	default:
		// unknown opcode: no reply, no state change
	}
}
