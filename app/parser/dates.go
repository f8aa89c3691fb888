package parser

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Date layouts tried in priority order. RFC 3339 / ISO 8601 variants
// first, then the RFC 2822/822 family used by RSS, then loose forms seen
// in the wild.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05",
	time.RFC822Z,
	time.RFC822,
	"2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 MST",
	"2 Jan 2006",
	"2006-01-02T15:04Z07:00",
	"January 2, 2006 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
}

// parseDate attempts every known feed date encoding and returns the first
// successful parse normalized to UTC, or nil. It never fails; the caller
// decides whether an unparseable non-empty value is a bozo condition.
func parseDate(text string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	// Last resort for the long tail of broken feed dates.
	if t, err := dateparse.ParseAny(text); err == nil {
		utc := t.UTC()
		return &utc
	}
	return nil
}
