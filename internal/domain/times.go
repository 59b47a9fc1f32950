package domain

import (
	"time"

	"github.com/araddon/dateparse"
)

// ParseServerTime parses a server-assigned timestamp string. The collaborator
// emits ISO-8601 but older records carry RFC1123-style values, so parsing is
// tolerant. Empty input yields the zero time.
func ParseServerTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}
	}
	return t
}
