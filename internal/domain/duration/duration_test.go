package duration

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"1h 30m", 90},
		{"90 min", 90},
		{"2:15", 135},
		{"", 0},
		{"2:00", 120},
		{"1h", 60},
		{"1 hour", 60},
		{"2 hrs", 120},
		{"1.5h", 90},
		{"0.5 hours", 30},
		{"45m", 45},
		{"45 mins", 45},
		{"90 minutes", 90},
		{"90", 90},
		{"  60  ", 60},
		{"session of 20", 20},
		{"about 45 minutes of review", 45},
		{"nonsense", 0},
		{"   ", 0},
		{"1h30m", 90},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMinutes(tt.input))
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h 30m"},
		{120, "2h"},
		{135, "2h 15m"},
		{-10, "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMinutes(tt.minutes))
		})
	}
}

// Formatting then re-parsing a canonical form must not drift.
func TestFormatParseStable(t *testing.T) {
	for _, m := range []int{0, 1, 30, 59, 60, 61, 90, 120, 480, 1441} {
		t.Run(fmt.Sprintf("%dm", m), func(t *testing.T) {
			formatted := FormatMinutes(m)
			assert.Equal(t, formatted, FormatMinutes(ParseMinutes(formatted)))
			assert.Equal(t, m, ParseMinutes(formatted))
		})
	}
}
