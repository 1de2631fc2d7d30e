// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultBaud             = 9600
	DefaultSerialTimeoutMs  = 250
	DefaultStartDay         = 1
	DefaultInput            = 0xFF
	DefaultMirrorIntervalMs = 1000
	DefaultMirrorTimeoutMs  = 1000

	deviceNameMaxChars = 16
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	ts := &cfg.TimerSwitch

	if ts.Serial.Baud == 0 {
		ts.Serial.Baud = DefaultBaud
	}
	if ts.Serial.TimeoutMs == 0 {
		ts.Serial.TimeoutMs = DefaultSerialTimeoutMs
	}
	if ts.Clock.StartDay == 0 {
		ts.Clock.StartDay = DefaultStartDay
	}
	if ts.Input.Initial == nil {
		v := uint8(DefaultInput)
		ts.Input.Initial = &v
	}
	if ts.Name == "" {
		ts.Name = "timerswitch"
	}

	m := ts.Mirror
	if m == nil {
		return
	}
	if m.IntervalMs == 0 {
		m.IntervalMs = DefaultMirrorIntervalMs
	}
	if m.TimeoutMs == 0 {
		m.TimeoutMs = DefaultMirrorTimeoutMs
	}
	if m.DeviceName == "" {
		m.DeviceName = ts.Name
	}
	// ASCII already validated; truncate to the status block capacity.
	if len(m.DeviceName) > deviceNameMaxChars {
		m.DeviceName = m.DeviceName[:deviceNameMaxChars]
	}
}
