// internal/config/config.go
package config

type Config struct {
	TimerSwitch TimerSwitchConfig `yaml:"timerswitch"`
}

type TimerSwitchConfig struct {
	Name    string        `yaml:"name"`
	Serial  SerialConfig  `yaml:"serial"`
	Storage StorageConfig `yaml:"storage"`
	Clock   ClockConfig   `yaml:"clock"`
	Input   InputConfig   `yaml:"input"`
	Mirror  *MirrorConfig `yaml:"mirror"` // optional, opt-in
}

// ---- SERIAL LINK ----

type SerialConfig struct {
	Port      string `yaml:"port"`
	Baud      int    `yaml:"baud"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- EVENT TABLE MEDIUM ----

type StorageConfig struct {
	Path string `yaml:"path"`
}

// ---- CLOCK ----

type ClockConfig struct {
	// TickUs overrides the tick period; 0 runs in real time.
	TickUs      int    `yaml:"tick_us"`
	StartDay    uint8  `yaml:"start_day"`
	StartMinute uint16 `yaml:"start_minute"`
}

// ---- INPUT PORT ----

type InputConfig struct {
	// Initial is the raw port value at boot (pull-ups => 0xFF).
	Initial *uint8 `yaml:"initial"`
}

// ---- STATUS MIRROR ----

type MirrorConfig struct {
	Endpoint   string `yaml:"endpoint"`
	UnitID     uint8  `yaml:"unit_id"`
	BaseSlot   uint16 `yaml:"base_slot"`
	DeviceName string `yaml:"device_name"`
	IntervalMs int    `yaml:"interval_ms"`
	TimeoutMs  int    `yaml:"timeout_ms"`
}
