// internal/event/entry.go
package event

import "fmt"

// Slots is the fixed number of entries in the event table.
const Slots = 32

// SlotSize is the number of bytes one persisted entry occupies.
const SlotSize = 4

// Field widths of a persisted entry. Values wider than these are truncated
// on persist, the same way a packed record would truncate them.
const (
	dayMask    = 0x07
	minuteMask = 0x07FF
)

// MinutesPerDay is the minute counter modulus.
const MinutesPerDay = 24 * 60

// Entry is one weekly schedule record.
// Day 0 marks the slot unused; such an entry never matches.
type Entry struct {
	OnOff  bool
	Day    uint8
	Minute uint16
}

// Enabled reports whether the entry can ever match.
func (e Entry) Enabled() bool { return e.Day != 0 }

// Matches reports whether the entry fires at (day, minute).
func (e Entry) Matches(day uint8, minute uint16) bool {
	return e.Enabled() && e.Day == day && e.Minute == minute
}

// Level is the output mask the entry broadcasts to the whole bank.
func (e Entry) Level() byte {
	if e.OnOff {
		return 0xFF
	}
	return 0x00
}

// Normalize truncates every field to its persisted width.
func (e Entry) Normalize() Entry {
	return Entry{
		OnOff:  e.OnOff,
		Day:    e.Day & dayMask,
		Minute: e.Minute & minuteMask,
	}
}

func (e Entry) String() string {
	if !e.Enabled() {
		return "inactive"
	}
	state := "off"
	if e.OnOff {
		state = "on"
	}
	return fmt.Sprintf("%s %s -> %s", DayName(e.Day), FormatMinute(e.Minute), state)
}

// ---- wire encodings ----
//
// The two directions use different byte orders and both are part of the
// wire contract:
//
//   set-entry payload: on_off, minute-hi, minute-lo, day
//   get-entry reply:   on_off, day, minute-hi, minute-lo

// EncodeReply encodes e in get-entry reply order.
func EncodeReply(e Entry) [4]byte {
	return [4]byte{
		boolByte(e.OnOff),
		e.Day,
		byte(e.Minute >> 8),
		byte(e.Minute),
	}
}

// DecodeReply decodes a get-entry reply.
func DecodeReply(b [4]byte) Entry {
	return Entry{
		OnOff:  b[0] != 0,
		Day:    b[1],
		Minute: uint16(b[2])<<8 | uint16(b[3]),
	}
}

// EncodeSet encodes e in set-entry payload order (without the index byte).
func EncodeSet(e Entry) [4]byte {
	return [4]byte{
		boolByte(e.OnOff),
		byte(e.Minute >> 8),
		byte(e.Minute),
		e.Day,
	}
}

// ---- persisted slot layout ----
//
// 0    on_off (0 or 1)
// 1    day (3 bits, 0 = unused)
// 2–3  minute (11 bits, big-endian)

// Pack encodes e into its fixed-size persisted slot.
func Pack(e Entry) [SlotSize]byte {
	return EncodeReply(e.Normalize())
}

// Unpack decodes a persisted slot. Bits outside the field widths are ignored.
func Unpack(b [SlotSize]byte) Entry {
	return Entry{
		OnOff:  b[0]&0x01 != 0,
		Day:    b[1] & dayMask,
		Minute: (uint16(b[2])<<8 | uint16(b[3])) & minuteMask,
	}
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
