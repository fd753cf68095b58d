package format

import (
	"fmt"
	"strings"
	"time"
)

// TimeParts is a duration decomposed into calendar-style components.
type TimeParts struct {
	Days         int `json:"days"`
	Hours        int `json:"hours"`
	Minutes      int `json:"minutes"`
	Seconds      int `json:"seconds"`
	Milliseconds int `json:"milliseconds"`
}

// Decompose splits a duration into days, hours, minutes, seconds and
// milliseconds. Negative durations decompose to all zeroes.
func Decompose(d time.Duration) TimeParts {
	if d < 0 {
		return TimeParts{}
	}
	parts := TimeParts{}
	parts.Days = int(d / (24 * time.Hour))
	d -= time.Duration(parts.Days) * 24 * time.Hour
	parts.Hours = int(d / time.Hour)
	d -= time.Duration(parts.Hours) * time.Hour
	parts.Minutes = int(d / time.Minute)
	d -= time.Duration(parts.Minutes) * time.Minute
	parts.Seconds = int(d / time.Second)
	d -= time.Duration(parts.Seconds) * time.Second
	parts.Milliseconds = int(d / time.Millisecond)
	return parts
}

// Duration returns a duration formatted for inclusion in messages sent
// to the user, such as "1 day, 2 hours".
func Duration(d time.Duration) string {
	parts := Decompose(d)

	segments := make([]string, 0, 4)
	if parts.Days > 0 {
		segments = append(segments, plural(parts.Days, "day"))
	}
	if parts.Hours > 0 {
		segments = append(segments, plural(parts.Hours, "hour"))
	}
	if parts.Minutes > 0 {
		segments = append(segments, plural(parts.Minutes, "minute"))
	}
	if parts.Seconds > 0 {
		segments = append(segments, plural(parts.Seconds, "second"))
	}
	if len(segments) == 0 {
		return "less than a second"
	}
	return strings.Join(segments, ", ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
