// internal/writer/builder.go
package writer

import (
	"errors"
	"time"

	cfg "github.com/tamzrod/timerswitch/internal/config"
	wmodbus "github.com/tamzrod/timerswitch/internal/writer/modbus"
)

// BuildPlan converts the mirror config into a StatusPlan.
// Assumes config has already passed validation and normalization.
func BuildPlan(m cfg.MirrorConfig) (StatusPlan, error) {
	if m.Endpoint == "" {
		return StatusPlan{}, errors.New("writer: mirror.endpoint required")
	}
	return StatusPlan{
		Endpoint:   m.Endpoint,
		UnitID:     m.UnitID,
		BaseSlot:   m.BaseSlot,
		DeviceName: m.DeviceName,
	}, nil
}

// Build connects to the mirror endpoint and returns a ready StatusWriter
// plus its closer.
func Build(m cfg.MirrorConfig) (StatusWriter, func() error, error) {
	plan, err := BuildPlan(m)
	if err != nil {
		return nil, nil, err
	}

	c, err := wmodbus.Dial(wmodbus.Config{
		Endpoint: plan.Endpoint,
		UnitID:   plan.UnitID,
		Timeout:  time.Duration(m.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, err
	}

	sw, err := NewStatusWriter(plan, c)
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	return sw, c.Close, nil
}
