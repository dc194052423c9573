package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2024-03-15", "2024-03-15"},
		{"2024-03-15T10:30:00Z", "2024-03-15"},
		{"2024-03-15 10:30:00", "2024-03-15"},
		{"03/15/2024", "2024-03-15"},
		{"March 15, 2024", "2024-03-15"},
		{"20240315", "2024-03-15"},
		{"  2024-03-15  ", "2024-03-15"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if err != nil {
				t.Fatalf("ParseDate(%q) returned error: %v", tt.input, err)
			}
			if got.Format("2006-01-02") != tt.expected {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.expected)
			}
		})
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, input := range []string{"", "not a date", "2024-13-45", "15th of March"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseDate(input); err == nil {
				t.Errorf("ParseDate(%q) expected error, got none", input)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	if got := FormatDate(d); got != "2024-03-15" {
		t.Errorf("FormatDate = %s, want 2024-03-15", got)
	}
}

func TestYear(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2024-03-15", "2024"},
		{"03/15/1999", "1999"},
		{"garbage", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Year(tt.input); got != tt.expected {
				t.Errorf("Year(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
