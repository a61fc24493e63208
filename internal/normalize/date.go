// Package normalize turns the free text shown on a statement page into typed values.
package normalize

import (
	"errors"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/golang/glog"
)

// ErrUnparsableDate is returned when date text matches no known form.
var ErrUnparsableDate = errors.New("could not parse date")

var fullLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"Monday, January 2, 2006",
	"Mon, Jan 2, 2006",
	"2006-01-02",
	"01/02/2006",
}

// Headers for the current year usually omit it.
var yearlessLayouts = []string{
	"January 2",
	"Jan 2",
	"Monday, January 2",
	"Mon, Jan 2",
}

// ParseDate converts a date header into a calendar day in now's location.
// "Today" and "Yesterday" are relative to now.
func ParseDate(text string, now time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	today := Day(now)
	switch strings.ToLower(text) {
	case "":
		return time.Time{}, ErrUnparsableDate
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	loc := now.Location()
	for _, layout := range fullLayouts {
		if t, err := time.ParseInLocation(layout, text, loc); err == nil {
			return Day(t), nil
		}
	}
	for _, layout := range yearlessLayouts {
		t, err := time.ParseInLocation(layout, text, loc)
		if err != nil {
			continue
		}
		d := time.Date(today.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		// A statement never lists future days, so the header belongs to last year.
		if d.After(today) {
			d = d.AddDate(-1, 0, 0)
		}
		return d, nil
	}
	if !strings.ContainsAny(text, "0123456789") {
		return time.Time{}, ErrUnparsableDate
	}
	t, err := dateparse.ParseIn(text, loc)
	if err != nil {
		glog.V(2).Infof("dateparse %q: %v", text, err)
		return time.Time{}, ErrUnparsableDate
	}
	return Day(t.In(loc)), nil
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
