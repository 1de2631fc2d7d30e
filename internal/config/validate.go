// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}
	ts := cfg.TimerSwitch

	// ------------------------------------------------------------
	// SERIAL LINK
	// ------------------------------------------------------------

	if ts.Serial.Port == "" {
		return errors.New("serial.port is required")
	}
	if ts.Serial.Baud < 0 {
		return fmt.Errorf("serial.baud must be >= 0, got %d", ts.Serial.Baud)
	}
	if ts.Serial.TimeoutMs < 0 {
		return fmt.Errorf("serial.timeout_ms must be >= 0, got %d", ts.Serial.TimeoutMs)
	}

	// ------------------------------------------------------------
	// STORAGE
	// ------------------------------------------------------------

	if ts.Storage.Path == "" {
		return errors.New("storage.path is required")
	}

	// ------------------------------------------------------------
	// CLOCK
	// ------------------------------------------------------------

	if ts.Clock.TickUs < 0 {
		return fmt.Errorf("clock.tick_us must be >= 0, got %d", ts.Clock.TickUs)
	}
	// start_day 0 means "default"
	if ts.Clock.StartDay > 7 {
		return fmt.Errorf("clock.start_day must be 1..7, got %d", ts.Clock.StartDay)
	}
	if ts.Clock.StartMinute > 1439 {
		return fmt.Errorf("clock.start_minute must be 0..1439, got %d", ts.Clock.StartMinute)
	}

	// ------------------------------------------------------------
	// STATUS MIRROR (OPT-IN)
	// ------------------------------------------------------------

	m := ts.Mirror
	if m == nil {
		return nil
	}
	if m.Endpoint == "" {
		return errors.New("mirror.endpoint is required when mirror is set")
	}
	if m.IntervalMs < 0 {
		return fmt.Errorf("mirror.interval_ms must be >= 0, got %d", m.IntervalMs)
	}
	if m.TimeoutMs < 0 {
		return fmt.Errorf("mirror.timeout_ms must be >= 0, got %d", m.TimeoutMs)
	}

	// device_name sanity (ASCII only)
	for i := 0; i < len(m.DeviceName); i++ {
		if m.DeviceName[i] > 0x7F {
			return errors.New("mirror.device_name must contain ASCII characters only")
		}
	}

	return nil
}
