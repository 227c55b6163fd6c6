package common

import (
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for check-in dates.
const DateLayout = "2006-01-02"

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// This is useful for removing sensitive data such as passwords or cryptographic
// keys from memory after use.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}

// NormalizeEmail trims and lower-cases an email so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DateOf returns the UTC calendar day of t in DateLayout.
func DateOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
