package journey

import (
	"fmt"
	"time"
)

// isoDateLayout is the canonical on-disk date format for assignments.
const isoDateLayout = "2006-01-02"

// acceptedDateLayouts are the input formats the classifier is known to emit,
// tried in order. Order is load-bearing: an ambiguous string like 01/02/2025
// resolves to whichever layout structurally matches first, so day/month is
// only attempted after the other three fail.
var acceptedDateLayouts = []string{
	"January 2, 2006", // January 17, 2025
	"2 January 2006",  // 17 January 2025
	isoDateLayout,     // 2025-01-17
	"2/1/2006",        // 17/01/2025
}

// NormalizeDate parses d against the accepted layouts in order and
// reformats the first match as YYYY-MM-DD. Already-normalized dates pass
// through unchanged.
func NormalizeDate(d string) (string, error) {
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, d); err == nil {
			return t.Format(isoDateLayout), nil
		}
	}
	return "", fmt.Errorf("unsupported date format: %q", d)
}

// IsISODate reports whether d strictly parses as a YYYY-MM-DD calendar
// date. The round-trip comparison rejects lenient matches such as
// unpadded fields.
func IsISODate(d string) bool {
	t, err := time.Parse(isoDateLayout, d)
	return err == nil && t.Format(isoDateLayout) == d
}
