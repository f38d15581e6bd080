// Package duration converts free-form duration text ("90 min", "1h 30m",
// "2:00") to integer minutes and back to display strings. Parsing never
// fails: malformed input degrades to 0 minutes so a free-text field can
// always be saved.
package duration

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	colonRe   = regexp.MustCompile(`^(\d+):(\d{1,2})$`)
	hoursRe   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:hours|hour|hrs|hr|h)`)
	minutesRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:minutes|minute|mins|min|m)`)
	intRe     = regexp.MustCompile(`\d+`)
)

// ParseMinutes converts duration text to whole minutes. Rules are applied
// in priority order: H:MM, hour/minute tokens, a bare integer, the first
// integer found anywhere, then 0.
func ParseMinutes(text string) int {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0
	}

	if m := colonRe.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[1])
		mins, _ := strconv.Atoi(m[2])
		return hours*60 + mins
	}

	// An hour token consumes its digits, so "1h 30m" cannot double count:
	// the minute scan runs on the text with hour matches removed.
	hourMatch := hoursRe.FindStringSubmatch(s)
	remainder := hoursRe.ReplaceAllString(s, "")
	minuteMatch := minutesRe.FindStringSubmatch(remainder)

	if hourMatch != nil || minuteMatch != nil {
		total := 0.0
		if hourMatch != nil {
			hours, _ := strconv.ParseFloat(hourMatch[1], 64)
			total += hours * 60
		}
		if minuteMatch != nil {
			mins, _ := strconv.ParseFloat(minuteMatch[1], 64)
			total += mins
		}
		return clamp(int(math.Round(total)))
	}

	if n, err := strconv.Atoi(s); err == nil {
		return clamp(n)
	}

	if m := intRe.FindString(s); m != "" {
		n, _ := strconv.Atoi(m)
		return clamp(n)
	}

	return 0
}

// FormatMinutes renders minutes as "Nm", "Nh", or "Nh Mm". Negative input
// is clamped to 0.
func FormatMinutes(minutes int) string {
	minutes = clamp(minutes)

	hours := minutes / 60
	mins := minutes % 60

	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
