// Package views derives day, week and month windows and selects the
// events that overlap them. Windows are half-open and computed in UTC from
// the calendar date of the supplied value.
package views

import (
	"time"

	"github.com/dmitrijs2005/calendar/internal/server/models"
)

// Window is the half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether [start, end] intersects the window. An event
// ending exactly at Start or starting exactly at End does not.
func (w Window) Overlaps(start, end time.Time) bool {
	return start.Before(w.End) && end.After(w.Start)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Day covers the 24 hours starting at midnight of day.
func Day(day time.Time) Window {
	start := midnight(day)
	return Window{Start: start, End: start.Add(24 * time.Hour)}
}

// Week covers the seven days starting at midnight of weekStart, whatever
// weekday that is.
func Week(weekStart time.Time) Window {
	start := midnight(weekStart)
	return Window{Start: start, End: start.Add(7 * 24 * time.Hour)}
}

// Month covers the whole calendar month. December rolls over to January
// of the following year.
func Month(year int, month time.Month) Window {
	return Window{
		Start: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Filter keeps the events overlapping w, preserving their order.
func Filter(events []models.Event, w Window) []models.Event {
	out := []models.Event{}
	for _, e := range events {
		if w.Overlaps(e.Start, e.End) {
			out = append(out, e)
		}
	}
	return out
}
