// Package export renders a user's events as an iCalendar feed.
package export

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/dmitrijs2005/calendar/internal/server/models"
)

const (
	ProductID   = "-//dmitrijs2005//calendar//EN"
	ContentType = "text/calendar; charset=utf-8"
)

// Calendar serializes events into a PUBLISH calendar. Events with a
// reminder get a DISPLAY alarm that fires the given number of minutes
// before the start.
func Calendar(events []models.Event, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)

	for _, e := range events {
		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(now.UTC())
		ve.SetCreatedTime(e.CreatedAt)
		ve.SetModifiedAt(e.UpdatedAt)
		ve.SetSummary(e.Title)
		if e.Description != nil {
			ve.SetDescription(*e.Description)
		}

		if e.AllDay {
			start, end := allDayDates(e.Start, e.End)
			ve.SetAllDayStartAt(start)
			ve.SetAllDayEndAt(end)
		} else {
			ve.SetStartAt(e.Start)
			ve.SetEndAt(e.End)
		}

		if e.ReminderMinutesBefore != nil {
			alarm := ve.AddAlarm()
			alarm.SetAction(ical.ActionDisplay)
			alarm.SetTrigger(fmt.Sprintf("-PT%dM", *e.ReminderMinutesBefore))
		}
	}

	return cal.Serialize()
}

// allDayDates maps an all-day event onto DATE values. DTEND is exclusive,
// so an end that falls inside a day pushes it to the following date.
func allDayDates(start, end time.Time) (time.Time, time.Time) {
	startDate := dateOf(start)
	endDate := dateOf(end)
	if end.After(endDate) || !endDate.After(startDate) {
		endDate = endDate.AddDate(0, 0, 1)
	}
	return startDate, endDate
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
