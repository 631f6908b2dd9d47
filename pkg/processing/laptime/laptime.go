// Package laptime converts between formatted lap times ("M:SS.mmm")
// and milliseconds and provides the shared fastest-lap reducer.
package laptime

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mpapenbr/iracing-bests-go/pkg/model"
)

// InvalidMs marks a missing or unparsable lap time.
// It compares greater than every real lap time.
const InvalidMs int64 = math.MaxInt64

// ParseMs converts a formatted lap time to milliseconds.
// Accepted forms: "M:SS.mmm", "MM:SS.mmm", "H:MM:SS.mmm" and "SS.mmm".
// The sentinel "N/A", empty input, non-positive results and components
// out of range (seconds or minutes of 60 and above within a larger
// unit) yield InvalidMs.
func ParseMs(arg string) int64 {
	s := strings.TrimSpace(arg)
	if s == "" || s == model.LapTimeUnknown {
		return InvalidMs
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return InvalidMs
	}
	secPart := parts[len(parts)-1]
	sec, err := strconv.ParseFloat(secPart, 64)
	if err != nil || sec < 0 {
		return InvalidMs
	}
	total := sec
	if len(parts) >= 2 {
		if sec >= 60 {
			return InvalidMs
		}
		m, err := strconv.Atoi(parts[len(parts)-2])
		if err != nil || m < 0 || (len(parts) == 3 && m > 59) {
			return InvalidMs
		}
		total += float64(m) * 60
	}
	if len(parts) == 3 {
		h, err := strconv.Atoi(parts[0])
		if err != nil || h < 0 {
			return InvalidMs
		}
		total += float64(h) * 3600
	}
	ms := int64(math.Round(total * 1000))
	if ms <= 0 {
		return InvalidMs
	}
	return ms
}

// FormatMs renders milliseconds as "M:SS.mmm" (or "H:MM:SS.mmm" above
// one hour). Invalid input yields the sentinel.
func FormatMs(ms int64) string {
	if !IsValid(ms) {
		return model.LapTimeUnknown
	}
	h := ms / 3600000
	rest := ms % 3600000
	m := rest / 60000
	rest %= 60000
	sec := rest / 1000
	milli := rest % 1000
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, sec, milli)
	}
	return fmt.Sprintf("%d:%02d.%03d", m, sec, milli)
}

// IsValid reports whether ms represents a real lap time.
func IsValid(ms int64) bool {
	return ms > 0 && ms != InvalidMs
}

// Fastest reduces a sequence of formatted lap times to the fastest one.
// Unparsable and non-positive entries are skipped. When nothing usable
// remains the sentinel ("N/A", InvalidMs) is returned.
func Fastest(times []string) (formatted string, ms int64) {
	formatted = model.LapTimeUnknown
	ms = InvalidMs
	for _, t := range times {
		cur := ParseMs(t)
		if !IsValid(cur) {
			continue
		}
		if cur < ms {
			ms = cur
			formatted = t
		}
	}
	return formatted, ms
}
