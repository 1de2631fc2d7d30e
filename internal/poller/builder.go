// internal/poller/builder.go
package poller

import (
	"time"

	cfg "github.com/tamzrod/timerswitch/internal/config"
)

// Build constructs a Poller sampling src at the mirror interval.
func Build(deviceID string, m cfg.MirrorConfig, src Source) (*Poller, error) {
	return New(
		Config{
			DeviceID: deviceID,
			Interval: time.Duration(m.IntervalMs) * time.Millisecond,
		},
		src,
	)
}
