// internal/device/receive_test.go
package device

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/tamzrod/timerswitch/internal/event"
)

func TestReceive_OutputCommands(t *testing.T) {
	r := newRig(t)

	r.send(0x02, 0x03)
	if got := r.tx.take(); !bytes.Equal(got, []byte{0xFF}) {
		t.Fatalf("after on: reply=%v", got)
	}
	if r.out.Last() != 0xFF {
		t.Fatalf("output sink not driven")
	}

	r.send(0x01, 0x03)
	if got := r.tx.take(); !bytes.Equal(got, []byte{0x00}) {
		t.Fatalf("after off: reply=%v", got)
	}
}

func TestReceive_ScheduleMode(t *testing.T) {
	r := newRig(t)

	r.send(0x0B, 0x08, 0x0B, 0x07, 0x0B)
	if got := r.tx.take(); !bytes.Equal(got, []byte{0, 1, 0}) {
		t.Fatalf("schedule replies: %v", got)
	}
}

func TestReceive_QueryClockIdempotent(t *testing.T) {
	r := newRig(t)
	r.send(0x04, 3, 0x05, 0x02, 0x0A) // wed 8:58

	r.send(0x09)
	first := r.tx.take()
	r.send(0x09)
	second := r.tx.take()

	if !bytes.Equal(first, []byte{3, 0x02, 0x0A}) {
		t.Fatalf("clock reply: %v", first)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("replies differ: %v vs %v", first, second)
	}
}

func TestReceive_QueryInputLine(t *testing.T) {
	r := newRig(t)
	r.in.press()

	r.send(0x0C)
	if got := r.tx.take(); !bytes.Equal(got, []byte{0xBF}) {
		t.Fatalf("input reply: %v", got)
	}
}

func TestReceive_UnknownOpcodeIgnored(t *testing.T) {
	r := newRig(t)

	r.send(0x00, 0x0D, 0xFF, 0x42)
	if got := r.tx.take(); len(got) != 0 {
		t.Fatalf("unexpected reply: %v", got)
	}
	if r.d.rx.state != stateCommand {
		t.Fatalf("state changed: %v", r.d.rx.state)
	}
}

func TestReceive_PartialCommandWaitsForPayload(t *testing.T) {
	r := newRig(t)

	r.send(0x04)
	if r.d.rx.state != stateSetDay {
		t.Fatalf("state: got=%v want=SetDay", r.d.rx.state)
	}

	// Ticks must not time the command out.
	for i := 0; i < 3*TicksPerMinute; i++ {
		r.d.Tick()
	}
	if r.d.rx.state != stateSetDay {
		t.Fatalf("state after ticks: %v", r.d.rx.state)
	}

	// 0x09 is consumed as the day value, not run as query-clock.
	r.send(0x09)
	if got := r.tx.take(); len(got) != 0 {
		t.Fatalf("byte was reinterpreted as a command: reply=%v", got)
	}
	if s := r.d.Snapshot(); s.Day != 9 {
		t.Fatalf("day: got=%d want=9", s.Day)
	}
	if r.d.rx.state != stateCommand {
		t.Fatalf("state: got=%v want=Command", r.d.rx.state)
	}
}

func TestReceive_SetEntryStagesAndRaises(t *testing.T) {
	r := newRig(t)

	r.send(0x06, 5, 1, 0x00, 90)
	if r.d.rx.state != stateSetEntryDay {
		t.Fatalf("state: %v", r.d.rx.state)
	}
	if r.d.pending.peek() != 0 {
		t.Fatalf("flag raised before final byte")
	}

	r.send(3)
	if !r.d.pending.peek().Has(TableWritePending) {
		t.Fatalf("TableWritePending not raised")
	}
	want := StagedEntry{Index: 5, Entry: event.Entry{OnOff: true, Day: 3, Minute: 90}}
	if r.d.rx.staged != want {
		t.Fatalf("staged: got=%+v want=%+v", r.d.rx.staged, want)
	}

	// Not durable until the dispatch loop runs.
	if e, _ := r.table.ReadEntry(5); e.Enabled() {
		t.Fatalf("entry persisted before dispatch")
	}
}

func TestReceive_SetThenGetEntryRoundTrip(t *testing.T) {
	r := newRig(t)

	r.send(0x06, 7, 1, 0x00, 90, 3)
	r.d.DispatchOnce()

	r.send(0x0A, 7)
	if got := r.tx.take(); !bytes.Equal(got, []byte{1, 3, 0, 90}) {
		t.Fatalf("get-entry reply: %v", got)
	}
	if r.d.rx.state != stateCommand {
		t.Fatalf("state: %v", r.d.rx.state)
	}
}

func TestReceive_HeldOffUntilStagedEntryPersisted(t *testing.T) {
	r := newRig(t)

	r.send(0x06, 5, 1, 0x00, 90, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		r.send(0x06, 9, 1, 0x00, 10, 2)
	}()

	select {
	case <-done:
		t.Fatalf("second set-entry consumed before the first was persisted")
	case <-time.After(50 * time.Millisecond):
	}

	r.d.DispatchOnce()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("receiver not released after persist")
	}
	r.d.DispatchOnce()

	first, _ := r.table.ReadEntry(5)
	if first != (event.Entry{OnOff: true, Day: 1, Minute: 90}) {
		t.Fatalf("slot 5: %+v", first)
	}
	second, _ := r.table.ReadEntry(9)
	if second != (event.Entry{OnOff: true, Day: 2, Minute: 10}) {
		t.Fatalf("slot 9: %+v", second)
	}
	if s := r.d.Snapshot(); s.Persisted != 2 {
		t.Fatalf("persisted: got=%d want=2", s.Persisted)
	}
}

func TestReceive_GetEntryRightAfterSetEntry(t *testing.T) {
	r := newRig(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = r.d.Run(ctx) }()

	r.send(0x06, 7, 1, 0x00, 90, 3, 0x0A, 7)
	if got := r.tx.take(); !bytes.Equal(got, []byte{1, 3, 0, 90}) {
		t.Fatalf("get-entry reply: %v", got)
	}
}

// gatedTable blocks reads until gate is closed.
type gatedTable struct {
	event.Table
	entered chan struct{}
	gate    chan struct{}
}

func (g *gatedTable) ReadEntry(i int) (event.Entry, error) {
	close(g.entered)
	<-g.gate
	return g.Table.ReadEntry(i)
}

func TestReceive_GetEntryReadDoesNotStallTick(t *testing.T) {
	r := newRig(t)
	table := &gatedTable{
		Table:   r.table,
		entered: make(chan struct{}),
		gate:    make(chan struct{}),
	}
	d, err := New(Config{Table: table, Output: r.out, Input: r.in, TX: r.tx})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	d.Receive(0x0A)
	go d.Receive(3)
	<-table.entered

	ticked := make(chan struct{})
	go func() {
		d.Tick()
		close(ticked)
	}()

	select {
	case <-ticked:
	case <-time.After(2 * time.Second):
		t.Fatalf("Tick blocked behind a get-entry table read")
	}
	close(table.gate)
}

func TestReceive_GetEntryOutOfRangeIsInert(t *testing.T) {
	r := newRig(t)

	r.send(0x0A, 200)
	if got := r.tx.take(); !bytes.Equal(got, []byte{0, 0, 0, 0}) {
		t.Fatalf("reply: %v", got)
	}
}

func TestRxStateString(t *testing.T) {
	if stateSetEntryMinuteLo.String() != "SetEntryMinuteLo" {
		t.Fatalf("got %q", stateSetEntryMinuteLo.String())
	}
	if rxState(99).String() != "Unknown" {
		t.Fatalf("got %q", rxState(99).String())
	}
}
