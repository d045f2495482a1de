package h

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ServerTimeLayout is how Spire renders timestamps inside search results.
const ServerTimeLayout = "2006-01-02 15:04:05.000000-07:00"

func Now() time.Time {
	return time.Now().UTC()
}

// NormalizeTimestamp turns a server timestamp into an ISO-8601 literal usable
// inside a search query: whitespace between date and time becomes "T".
func NormalizeTimestamp(value string) string {
	value = strings.TrimSpace(value)
	return strings.Join(strings.Fields(value), "T")
}

// ParseTimestamp parses the timestamp formats seen on the wire. Values
// without a zone are read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	normalized := NormalizeTimestamp(value)
	if t, err := time.Parse(time.RFC3339Nano, normalized); err == nil {
		return t.UTC(), nil
	}
	t, err := dateparse.ParseIn(strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// FormatTimestamp renders t the way entries are created with an explicit created_at.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
