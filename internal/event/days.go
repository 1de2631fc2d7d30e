// internal/event/days.go
package event

import (
	"fmt"
	"strings"
)

// Day numbering: 1 = Sunday .. 7 = Saturday.
var dayNames = [...]string{"invalid", "sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// DayName returns the short name of day, or "invalid".
func DayName(day uint8) string {
	if int(day) >= len(dayNames) {
		return dayNames[0]
	}
	return dayNames[day]
}

// ParseDay accepts a short day name (case-insensitive).
func ParseDay(s string) (uint8, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i := 1; i < len(dayNames); i++ {
		if dayNames[i] == s {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("invalid day: %q", s)
}

// FormatMinute renders a minute-of-day as H:MM.
func FormatMinute(minute uint16) string {
	return fmt.Sprintf("%d:%02d", minute/60, minute%60)
}
