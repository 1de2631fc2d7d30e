// internal/status/snapshot.go
package status

import "github.com/tamzrod/timerswitch/internal/device"

// Snapshot represents exactly what the writer is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Output    uint16
	Day       uint16
	Minute    uint16
	Schedule  uint16
	Input     uint16
	Persisted uint16
	Faults    uint16
}

// FromDevice converts a device snapshot to register values.
// Counters saturate at 65535; they MUST NOT wrap.
func FromDevice(s device.Snapshot) Snapshot {
	var sched uint16
	if s.ScheduleEnabled {
		sched = 1
	}
	return Snapshot{
		Output:    uint16(s.Output),
		Day:       uint16(s.Day),
		Minute:    s.Minute,
		Schedule:  sched,
		Input:     uint16(s.Input),
		Persisted: saturate(s.Persisted),
		Faults:    saturate(s.Faults),
	}
}

func saturate(v uint32) uint16 {
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}
