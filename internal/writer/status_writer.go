// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/timerswitch/internal/status"
)

// StatusWriter publishes timer switch snapshots to the mirror.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// deviceStatusWriter mirrors one device into a status block and a bank of
// output coils on a single endpoint.
type deviceStatusWriter struct {
	plan StatusPlan
	cli  endpointClient

	needFull bool
	last     []uint16 // live slots as last delivered
	nameRegs []uint16
}

var slotNames = [status.LiveSlots]string{
	status.SlotOutput:    "output",
	status.SlotDay:       "day",
	status.SlotMinute:    "minute",
	status.SlotSchedule:  "schedule",
	status.SlotInput:     "input",
	status.SlotPersisted: "persisted",
	status.SlotFaults:    "faults",
}

// NewStatusWriter builds a status writer for plan over cli.
func NewStatusWriter(plan StatusPlan, cli endpointClient) (StatusWriter, error) {
	if cli == nil {
		return nil, fmt.Errorf("status writer: missing client for endpoint %s", plan.Endpoint)
	}
	return &deviceStatusWriter{
		plan:     plan,
		cli:      cli,
		needFull: true,
		nameRegs: status.EncodeDeviceName(plan.DeviceName),
	}, nil
}

// WriteStatus mirrors s. The first call, and the first call after any
// failed write, rewrites the whole block including the name.
func (sw *deviceStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil {
		return errors.New("status writer: disabled")
	}

	live := status.Encode(s)
	baseAddr := sw.baseAddr()

	if sw.needFull {
		if err := sw.cli.WriteRegisters(baseAddr, sw.fullBlockRegs(live)); err != nil {
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}
		if err := sw.cli.WriteOutputs(sw.coilAddr(), uint8(s.Output)); err != nil {
			return fmt.Errorf("status writer: output coils write failed: %w", err)
		}

		sw.needFull = false
		sw.last = live
		return nil
	}

	// changed slots only
	var errs []string

	for slot := 0; slot < status.LiveSlots; slot++ {
		if sw.last[slot] == live[slot] {
			continue
		}

		if err := sw.cli.WriteRegisters(baseAddr+uint16(slot), []uint16{live[slot]}); err != nil {
			errs = append(errs, fmt.Sprintf("slot%d %s write failed: %v", slot, slotNames[slot], err))
			continue
		}

		if slot == status.SlotOutput {
			if err := sw.cli.WriteOutputs(sw.coilAddr(), uint8(live[slot])); err != nil {
				errs = append(errs, fmt.Sprintf("output coils write failed: %v", err))
				continue
			}
		}

		sw.last[slot] = live[slot]
	}

	if len(errs) > 0 {
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}

func (sw *deviceStatusWriter) baseAddr() uint16 {
	return sw.plan.BaseSlot * status.SlotsPerDevice
}

func (sw *deviceStatusWriter) coilAddr() uint16 {
	// Each device owns a fixed OutputCoils bank.
	return sw.plan.BaseSlot * status.OutputCoils
}

func (sw *deviceStatusWriter) fullBlockRegs(live []uint16) []uint16 {
	regs := make([]uint16, status.SlotsPerDevice)

	copy(regs, live)

	// Reserved slots are left as zero.

	copy(regs[status.SlotDeviceNameStart:status.SlotDeviceNameEnd+1], sw.nameRegs)

	return regs
}
