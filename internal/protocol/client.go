// internal/protocol/client.go
package protocol

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/tamzrod/timerswitch/internal/event"
)

// Client is the host side of the byte protocol.
// Requests are serialized: the link carries no framing, so replies are
// matched to requests purely by order.
type Client struct {
	mu sync.Mutex
	rw io.ReadWriter
}

func NewClient(rw io.ReadWriter) *Client {
	return &Client{rw: rw}
}

// SetOutputs switches the whole bank on or off.
func (c *Client) SetOutputs(on bool) error {
	op := OpOutputsOff
	if on {
		op = OpOutputsOn
	}
	return c.send(op)
}

// Outputs returns the current output mask.
func (c *Client) Outputs() (byte, error) {
	var r [1]byte
	if err := c.request(r[:], OpGetOutputs); err != nil {
		return 0, err
	}
	return r[0], nil
}

// SetTime sets day (1..7) and minute of day (0..1439).
func (c *Client) SetTime(day uint8, minute uint16) error {
	return c.send(
		OpSetDay, day,
		OpSetTime, byte(minute>>8), byte(minute),
	)
}

// Time returns the device clock.
func (c *Client) Time() (uint8, uint16, error) {
	var r [3]byte
	if err := c.request(r[:], OpGetTime); err != nil {
		return 0, 0, err
	}
	return r[0], uint16(r[1])<<8 | uint16(r[2]), nil
}

// SyncTime copies the weekday and minute of now to the device and turns
// schedule mode on.
func (c *Client) SyncTime(now time.Time) error {
	day := uint8(now.Weekday()) + 1
	minute := uint16(now.Hour()*60 + now.Minute())
	if err := c.SetTime(day, minute); err != nil {
		return err
	}
	return c.SetScheduleEnabled(true)
}

// Entry reads one table slot.
func (c *Client) Entry(index uint8) (event.Entry, error) {
	var r [4]byte
	if err := c.request(r[:], OpGetEntry, index); err != nil {
		return event.Entry{}, err
	}
	return event.DecodeReply(r), nil
}

// SetEntry writes one table slot. The device does not acknowledge writes;
// it persists the entry from its idle loop shortly after.
func (c *Client) SetEntry(index uint8, e event.Entry) error {
	p := event.EncodeSet(e)
	return c.send(OpSetEntry, index, p[0], p[1], p[2], p[3])
}

// ClearEntry makes a slot inert.
func (c *Client) ClearEntry(index uint8) error {
	return c.SetEntry(index, event.Entry{})
}

// SetScheduleEnabled turns schedule mode on or off.
func (c *Client) SetScheduleEnabled(on bool) error {
	op := OpScheduleOff
	if on {
		op = OpScheduleOn
	}
	return c.send(op)
}

// ScheduleEnabled reports whether schedule mode is on.
func (c *Client) ScheduleEnabled() (bool, error) {
	var r [1]byte
	if err := c.request(r[:], OpGetSchedule); err != nil {
		return false, err
	}
	return r[0] != 0, nil
}

// InputLine returns the raw input port byte.
func (c *Client) InputLine() (byte, error) {
	var r [1]byte
	if err := c.request(r[:], OpGetInputs); err != nil {
		return 0, err
	}
	return r[0], nil
}

// ---- internal ----

func (c *Client) send(b ...byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(b)
}

func (c *Client) request(reply []byte, b ...byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.write(b); err != nil {
		return err
	}
	if _, err := io.ReadFull(c.rw, reply); err != nil {
		return fmt.Errorf("protocol: read reply to 0x%02x: %w", b[0], err)
	}
	return nil
}

func (c *Client) write(b []byte) error {
	for len(b) > 0 {
		n, err := c.rw.Write(b)
		if err != nil {
			return fmt.Errorf("protocol: write: %w", err)
		}
		b = b[n:]
	}
	return nil
}
