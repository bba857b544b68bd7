package util

import (
	"strings"
	"time"
)

// FirstNonEmpty returns the first non-empty string in values.
func FirstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

// Duplicates returns the values that occur more than once, in first-seen
// order, each reported a single time.
func Duplicates(values []string) []string {
	counts := make(map[string]int, len(values))
	for _, value := range values {
		counts[value]++
	}
	dupes := make([]string, 0)
	seen := make(map[string]bool, len(counts))
	for _, value := range values {
		if counts[value] > 1 && !seen[value] {
			seen[value] = true
			dupes = append(dupes, value)
		}
	}
	return dupes
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006",
}

// ParseTime parses the loose timestamp formats found in source records.
// Malformed values yield the zero time, which propagates through sorting
// and formatting instead of failing the load.
func ParseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
