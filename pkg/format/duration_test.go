package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecompose(t *testing.T) {
	d := 26*time.Hour + 3*time.Minute + 4*time.Second + 567*time.Millisecond
	parts := Decompose(d)
	assert.Equal(t, 1, parts.Days)
	assert.Equal(t, 2, parts.Hours)
	assert.Equal(t, 3, parts.Minutes)
	assert.Equal(t, 4, parts.Seconds)
	assert.Equal(t, 567, parts.Milliseconds)
}

func TestDecomposeNegative(t *testing.T) {
	assert.Equal(t, TimeParts{}, Decompose(-time.Hour))
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{name: "DaysAndHours", duration: 25 * time.Hour, expected: "1 day, 1 hour"},
		{name: "Hours", duration: 2 * time.Hour, expected: "2 hours"},
		{name: "MinutesAndSeconds", duration: 90 * time.Second, expected: "1 minute, 30 seconds"},
		{name: "SubSecond", duration: 300 * time.Millisecond, expected: "less than a second"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Duration(tt.duration))
		})
	}
}
