// Package calendar holds the Virginia filing-period calendar and the
// on-time determination for reported transactions.
package calendar

import (
	"strings"
	"time"
)

// dateFormats are tried in order when parsing source dates. Feeds mix
// ISO dates, US slash dates, and SQL timestamps with optional
// fractional seconds.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999",
	"01/02/06",
}

// ParseDate parses a source date string against the known feed formats.
// Fractional seconds longer than six digits are truncated before
// parsing. Returns the zero time and false when nothing matches.
func ParseDate(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}

	if idx := strings.LastIndexByte(v, '.'); idx >= 0 && len(v)-idx-1 > 6 {
		frac := v[idx+1:]
		if isDigits(frac) {
			v = v[:idx+1] + frac[:6]
		}
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, v); err == nil {
			return t.Truncate(24 * time.Hour), true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
