// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/timerswitch/internal/status"
)

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	DeviceID string
	At       time.Time
	Status   status.Snapshot
}
