// internal/poller/poller.go
package poller

import (
	"errors"
	"time"

	"github.com/tamzrod/timerswitch/internal/device"
	"github.com/tamzrod/timerswitch/internal/status"
)

// Source is anything that can hand out a consistent device snapshot.
type Source interface {
	Snapshot() device.Snapshot
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	DeviceID string
	Interval time.Duration
}

// Poller is a dumb, clock-driven sampler.
type Poller struct {
	cfg Config
	src Source
}

// New creates a poller with immutable config.
func New(cfg Config, src Source) (*Poller, error) {
	if cfg.DeviceID == "" {
		return nil, errors.New("poller: device id required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if src == nil {
		return nil, errors.New("poller: source required")
	}
	return &Poller{cfg: cfg, src: src}, nil
}

// PollOnce performs exactly one poll cycle.
func (p *Poller) PollOnce() PollResult {
	return PollResult{
		DeviceID: p.cfg.DeviceID,
		At:       time.Now(),
		Status:   status.FromDevice(p.src.Snapshot()),
	}
}
