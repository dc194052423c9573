// Package utils provides common utility functions for FilingScope.
package utils

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts lists the filing date formats seen in EDGAR listings and
// stored records, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
	"January 2, 2006",
	"20060102",
}

// ParseDate parses a filing date in any of the supported layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

// FormatDate formats a time as an EDGAR style date (2006-01-02).
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// Year returns the four digit year of a date string, or "" when the date
// cannot be parsed.
func Year(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return ""
	}
	return t.Format("2006")
}
