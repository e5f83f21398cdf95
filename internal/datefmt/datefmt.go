// Package datefmt renders and parses the calendar dates used in exercise logs.
//
// Dates are plain calendar days. They are kept as time.Time values at UTC
// midnight and only turned into the display form ("Fri Jan 05 2024") when a
// response is written.
package datefmt

import (
	"errors"
	"strings"
	"time"
)

// Layout is the display form: weekday, month, zero-padded day, year.
const Layout = "Mon Jan 02 2006"

// InvalidDate is what Format renders for a zero time.
const InvalidDate = "Invalid Date"

// ErrInvalidDate is returned by Parse for input in none of the accepted layouts.
var ErrInvalidDate = errors.New("invalid date")

// inputLayouts are tried in order by Parse.
var inputLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	Layout,
	"Mon Jan 2 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"January 2, 2006",
	"02 Jan 2006",
	"2 January 2006",
}

// Format renders t as "<Dow> <Mon> <DD> <YYYY>".
func Format(t time.Time) string {
	if t.IsZero() {
		return InvalidDate
	}
	return t.Format(Layout)
}

// Parse reads s in any of the accepted input layouts and returns the calendar
// day it names, at UTC midnight. Times carrying an offset keep the day as seen
// in that offset.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// Day truncates t to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
