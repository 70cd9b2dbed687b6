// Package format holds the small string and date helpers shared by the
// validation engine and the listing renderer.
package format

import (
	"strings"
	"time"
)

// Placeholder is shown in the listing in place of an absent optional value.
const Placeholder = "-"

// DisplayDateLayout is how dates of birth appear in the listing.
const DisplayDateLayout = "January 2, 2006"

// dateLayouts are the stored date shapes FormatDate understands.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
}

// IsEmpty reports whether s is empty or contains only whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// SafeTrim trims leading and trailing whitespace.
func SafeTrim(s string) string {
	return strings.TrimSpace(s)
}

// FormatDate renders a stored date for display. Input it cannot parse is
// returned unchanged.
func FormatDate(s string) string {
	s = SafeTrim(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DisplayDateLayout)
		}
	}
	return s
}

// OrPlaceholder returns s, or Placeholder when s is empty.
func OrPlaceholder(s string) string {
	if IsEmpty(s) {
		return Placeholder
	}
	return s
}
