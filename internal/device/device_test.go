// internal/device/device_test.go
package device

import (
	"bytes"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"

	"github.com/tamzrod/timerswitch/internal/eeprom"
)

// ---- fakes ----

type fakeOutput struct {
	mu   sync.Mutex
	last byte
	sets int
}

func (f *fakeOutput) Set(mask byte) {
	f.mu.Lock()
	f.last = mask
	f.sets++
	f.mu.Unlock()
}

func (f *fakeOutput) Last() byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

type fakeInput struct {
	v atomic.Uint32
}

func newFakeInput() *fakeInput {
	in := &fakeInput{}
	in.v.Store(0xFF)
	return in
}

func (f *fakeInput) Read() byte { return byte(f.v.Load()) }

func (f *fakeInput) press()   { f.v.Store(0xFF &^ (1 << ButtonBit)) }
func (f *fakeInput) release() { f.v.Store(0xFF) }

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// take returns and clears everything written so far.
func (b *syncBuffer) take() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := append([]byte(nil), b.buf.Bytes()...)
	b.buf.Reset()
	return out
}

type rig struct {
	d     *Device
	out   *fakeOutput
	in    *fakeInput
	tx    *syncBuffer
	table *eeprom.Store
}

func newRig(t *testing.T) *rig {
	t.Helper()

	table, err := eeprom.Open(afero.NewMemMapFs(), "events.bin")
	if err != nil {
		t.Fatalf("eeprom open: %v", err)
	}
	t.Cleanup(func() { _ = table.Close() })

	r := &rig{
		out:   &fakeOutput{},
		in:    newFakeInput(),
		tx:    &syncBuffer{},
		table: table,
	}

	d, err := New(Config{
		Table:  table,
		Output: r.out,
		Input:  r.in,
		TX:     r.tx,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.d = d
	return r
}

func (r *rig) send(b ...byte) {
	for _, c := range b {
		r.d.Receive(c)
	}
}

func (r *rig) tickMinute() {
	for i := 0; i < TicksPerMinute; i++ {
		r.d.Tick()
	}
}

// ---- construction ----

func TestNew_RequiresCollaborators(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error for empty config")
	}
}

func TestNew_DefaultsDayToOne(t *testing.T) {
	r := newRig(t)

	s := r.d.Snapshot()
	if s.Day != 1 || s.Minute != 0 {
		t.Fatalf("boot clock: got day=%d minute=%d", s.Day, s.Minute)
	}
	if s.ScheduleEnabled {
		t.Fatalf("schedule mode must start disabled")
	}
	if r.out.Last() != 0 {
		t.Fatalf("outputs must start off")
	}
}

func TestTicksPerMinute(t *testing.T) {
	// 7372800 * 60 / 1024 / 256 = 1687 (truncated); rollover on the 1688th tick.
	if TicksPerMinute != 1688 {
		t.Fatalf("TicksPerMinute: got=%d want=1688", TicksPerMinute)
	}
}
