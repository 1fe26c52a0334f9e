package utils

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a date string matches none of the
// accepted input layouts.
var ErrInvalidDate = errors.New("invalid date format")

// canonicalDateLayout is the single format all event dates are stored in.
const canonicalDateLayout = "02/01/2006"

// dateLayouts are the input forms accepted on create and update, tried
// in order. The canonical DD/MM/YYYY form wins over the US ordering for
// ambiguous values like 03/04/2026.
var dateLayouts = []string{
	canonicalDateLayout, // DD/MM/YYYY
	"2006-01-02",        // ISO date
	time.RFC3339,        // full timestamp
	"2/1/2006",          // single-digit day/month
}

// NormalizeDate parses a date in any accepted layout and returns it in
// the canonical DD/MM/YYYY storage form.
func NormalizeDate(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(canonicalDateLayout), nil
		}
	}
	return "", ErrInvalidDate
}
