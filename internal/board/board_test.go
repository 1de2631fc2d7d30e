// internal/board/board_test.go
package board

import (
	"testing"
	"time"

	"github.com/tamzrod/timerswitch/internal/device"
)

func TestInputs_ButtonActiveLow(t *testing.T) {
	in := NewInputs(0xFF)

	in.Press()
	if in.Read()&(1<<device.ButtonBit) != 0 {
		t.Fatalf("button bit should read low while pressed: 0x%02x", in.Read())
	}
	if in.Read() != 0xBF {
		t.Fatalf("other bits disturbed: 0x%02x", in.Read())
	}

	in.Release()
	if in.Read() != 0xFF {
		t.Fatalf("release: 0x%02x", in.Read())
	}
}

func TestInputs_PulseReleases(t *testing.T) {
	in := NewInputs(0xFF)

	in.Pulse(10 * time.Millisecond)
	if in.Read() != 0xBF {
		t.Fatalf("pulse did not press: 0x%02x", in.Read())
	}

	deadline := time.Now().Add(time.Second)
	for in.Read() != 0xFF {
		if time.Now().After(deadline) {
			t.Fatalf("pulse did not release")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestOutputs_KeepsMask(t *testing.T) {
	o := NewOutputs("test")
	o.Set(0x00)
	o.Set(0xFF)
	if o.Mask() != 0xFF {
		t.Fatalf("mask: 0x%02x", o.Mask())
	}
}
