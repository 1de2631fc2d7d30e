// internal/protocol/device_link_test.go
package protocol_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/tamzrod/timerswitch/internal/board"
	"github.com/tamzrod/timerswitch/internal/device"
	"github.com/tamzrod/timerswitch/internal/eeprom"
	"github.com/tamzrod/timerswitch/internal/event"
	"github.com/tamzrod/timerswitch/internal/protocol"
	"github.com/tamzrod/timerswitch/internal/serialport"
)

// startDevice runs a device behind one end of an in-memory link and
// returns a client on the other end.
func startDevice(t *testing.T) (*protocol.Client, *board.Inputs) {
	t.Helper()

	table, err := eeprom.Open(afero.NewMemMapFs(), "events.bin")
	if err != nil {
		t.Fatalf("eeprom: %v", err)
	}
	host, dev := net.Pipe()
	in := board.NewInputs(0xFF)

	d, err := device.New(device.Config{
		Table:  table,
		Output: board.NewOutputs("link-test"),
		Input:  in,
		TX:     dev,
	})
	if err != nil {
		t.Fatalf("device: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = d.Run(ctx) }()
	go func() { _ = serialport.Pump(ctx, dev, d.Receive) }()

	t.Cleanup(func() {
		cancel()
		_ = host.Close()
		_ = dev.Close()
		_ = table.Close()
	})

	_ = host.SetDeadline(time.Now().Add(5 * time.Second))
	return protocol.NewClient(host), in
}

func TestLink_ClockAndOutputs(t *testing.T) {
	c, _ := startDevice(t)

	if err := c.SetTime(6, 1000); err != nil {
		t.Fatalf("SetTime: %v", err)
	}
	day, minute, err := c.Time()
	if err != nil {
		t.Fatalf("Time: %v", err)
	}
	if day != 6 || minute != 1000 {
		t.Fatalf("clock: day=%d minute=%d", day, minute)
	}

	if err := c.SetOutputs(true); err != nil {
		t.Fatalf("SetOutputs: %v", err)
	}
	mask, err := c.Outputs()
	if err != nil || mask != 0xFF {
		t.Fatalf("Outputs: 0x%02x, %v", mask, err)
	}
}

func TestLink_ScheduleAndInputs(t *testing.T) {
	c, in := startDevice(t)

	if err := c.SetScheduleEnabled(true); err != nil {
		t.Fatalf("SetScheduleEnabled: %v", err)
	}
	on, err := c.ScheduleEnabled()
	if err != nil || !on {
		t.Fatalf("ScheduleEnabled: %v, %v", on, err)
	}

	in.Set(0x5A)
	v, err := c.InputLine()
	if err != nil || v != 0x5A {
		t.Fatalf("InputLine: 0x%02x, %v", v, err)
	}
}

func TestLink_EntryRoundTrip(t *testing.T) {
	c, _ := startDevice(t)

	want := event.Entry{OnOff: true, Day: 3, Minute: 90}
	if err := c.SetEntry(12, want); err != nil {
		t.Fatalf("SetEntry: %v", err)
	}
	got, err := c.Entry(12)
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if got != want {
		t.Fatalf("get right after set: got=%+v want=%+v", got, want)
	}

	if err := c.ClearEntry(12); err != nil {
		t.Fatalf("ClearEntry: %v", err)
	}
	got, err = c.Entry(12)
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if got.Enabled() {
		t.Fatalf("entry not cleared: got=%+v", got)
	}
}

func TestLink_BackToBackSetEntries(t *testing.T) {
	c, _ := startDevice(t)

	first := event.Entry{OnOff: true, Day: 2, Minute: 10}
	second := event.Entry{OnOff: false, Day: 6, Minute: 1200}

	if err := c.SetEntry(5, first); err != nil {
		t.Fatalf("SetEntry(5): %v", err)
	}
	if err := c.SetEntry(9, second); err != nil {
		t.Fatalf("SetEntry(9): %v", err)
	}

	for slot, want := range map[uint8]event.Entry{5: first, 9: second} {
		got, err := c.Entry(slot)
		if err != nil {
			t.Fatalf("Entry(%d): %v", slot, err)
		}
		if got != want {
			t.Fatalf("slot %d: got=%+v want=%+v", slot, got, want)
		}
	}
}
