package codec

import (
	"time"

	"github.com/mesh-intelligence/airtable/pkg/types"
)

// Wire date layouts, equivalent to yyyy-MM-dd'T'HH:mm:ss.SSSZZZZ. Airtable
// sends a literal Z for UTC; numeric offsets are accepted with or without a
// colon.
var dateLayouts = []string{
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05.000Z0700",
}

// emitLayout is the second-precision prefix written on encode; the
// millisecond and zone suffix is always ".000Z".
const (
	emitLayout = "2006-01-02T15:04:05"
	emitSuffix = ".000Z"
)

// ParseDate parses a wire date string.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders t in UTC, truncated to whole seconds, with a literal
// ".000Z" suffix.
func FormatDate(t time.Time) string {
	return t.UTC().Format(emitLayout) + emitSuffix
}

// isUnset reports whether t is the Epoch marker for an unset date.
func isUnset(t time.Time) bool {
	return t.Equal(types.Epoch)
}
