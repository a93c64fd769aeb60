// Package etag derives the optimistic-concurrency token from a record's
// last-modified instant, formatted as a weak HTTP validator.
package etag

import (
	"strings"
	"time"
)

// ToWeak formats updatedAt as a weak validator, e.g. W/"2026-01-02T15:04:05.999999999Z".
func ToWeak(updatedAt time.Time) string {
	if updatedAt.IsZero() {
		return ""
	}
	return `W/"` + updatedAt.UTC().Format(time.RFC3339Nano) + `"`
}

// Match reports whether the presented token matches the record's current
// one. An empty presented token always matches: the precondition is only
// enforced when the caller supplies it. Comparison is whitespace-insensitive
// exact value equality.
func Match(presented string, updatedAt time.Time) bool {
	if presented == "" {
		return true
	}
	current := ToWeak(updatedAt)
	if current == "" {
		return false
	}
	return stripSpace(presented) == stripSpace(current)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}
