package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/calendar/internal/common"
	"github.com/dmitrijs2005/calendar/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func titles(events []models.Event) []string {
	out := []string{}
	for _, e := range events {
		out = append(out, e.Title)
	}
	return out
}

func seed(t *testing.T, s *EventService, userID string, title string, start, end time.Time) *models.Event {
	t.Helper()
	e, err := s.Create(context.Background(), userID, models.EventFields{Title: title, Start: start, End: end})
	require.NoError(t, err)
	return e
}

func TestEventService_CRUD(t *testing.T) {
	ctx := context.Background()
	s := NewEventService(newFileManager(t))

	e := seed(t, s, "u1", "Meeting", utc(2024, 3, 10, 9, 0), utc(2024, 3, 10, 10, 0))

	got, err := s.Get(ctx, "u1", e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Meeting", got.Title)

	updated, err := s.Update(ctx, "u1", e.ID, models.EventPatch{Title: models.Some("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	list, err := s.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Renamed"}, titles(list))

	require.NoError(t, s.Delete(ctx, "u1", e.ID))
	_, err = s.Get(ctx, "u1", e.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestEventService_DayView(t *testing.T) {
	ctx := context.Background()
	s := NewEventService(newFileManager(t))

	seed(t, s, "u1", "A", utc(2024, 3, 10, 9, 0), utc(2024, 3, 10, 10, 0))
	seed(t, s, "u1", "B", utc(2024, 3, 9, 23, 0), utc(2024, 3, 10, 0, 0))
	seed(t, s, "u1", "C", utc(2024, 3, 10, 23, 30), utc(2024, 3, 11, 0, 30))
	seed(t, s, "u2", "Other", utc(2024, 3, 10, 9, 0), utc(2024, 3, 10, 10, 0))

	got, err := s.DayView(ctx, "u1", utc(2024, 3, 10, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, titles(got))
}

func TestEventService_WeekView(t *testing.T) {
	ctx := context.Background()
	s := NewEventService(newFileManager(t))

	seed(t, s, "u1", "in", utc(2024, 3, 16, 9, 0), utc(2024, 3, 16, 10, 0))
	seed(t, s, "u1", "after", utc(2024, 3, 20, 0, 0), utc(2024, 3, 20, 1, 0))

	got, err := s.WeekView(ctx, "u1", utc(2024, 3, 13, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"in"}, titles(got))
}

func TestEventService_MonthView(t *testing.T) {
	ctx := context.Background()
	s := NewEventService(newFileManager(t))

	seed(t, s, "u1", "NYE", utc(2024, 12, 31, 23, 0), utc(2025, 1, 1, 1, 0))
	seed(t, s, "u1", "Nov", utc(2024, 11, 30, 9, 0), utc(2024, 11, 30, 10, 0))

	dec, err := s.MonthView(ctx, "u1", 2024, 12)
	require.NoError(t, err)
	assert.Equal(t, []string{"NYE"}, titles(dec))

	jan, err := s.MonthView(ctx, "u1", 2025, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"NYE"}, titles(jan))
}

func TestEventService_MonthViewBounds(t *testing.T) {
	s := NewEventService(&fakeRepoManager{e: &fakeEventsRepo{}})

	for _, tc := range []struct{ year, month int }{
		{1969, 1}, {2101, 1}, {2024, 0}, {2024, 13},
	} {
		_, err := s.MonthView(context.Background(), "u1", tc.year, tc.month)
		assert.ErrorIs(t, err, common.ErrorValidation, "%d-%d", tc.year, tc.month)
	}

	_, err := s.MonthView(context.Background(), "u1", 1970, 1)
	assert.NoError(t, err)
	_, err = s.MonthView(context.Background(), "u1", 2100, 12)
	assert.NoError(t, err)
}

func TestEventService_ViewStorageError(t *testing.T) {
	s := NewEventService(&fakeRepoManager{e: &fakeEventsRepo{listErr: common.ErrorCorrupted}})

	_, err := s.DayView(context.Background(), "u1", utc(2024, 3, 10, 0, 0))
	assert.ErrorIs(t, err, common.ErrorCorrupted)

	_, err = s.ExportICS(context.Background(), "u1")
	assert.ErrorIs(t, err, common.ErrorCorrupted)
}

func TestEventService_ExportICS(t *testing.T) {
	ctx := context.Background()
	s := NewEventService(newFileManager(t))

	seed(t, s, "u1", "Mine", utc(2024, 3, 10, 9, 0), utc(2024, 3, 10, 10, 0))
	seed(t, s, "u2", "Theirs", utc(2024, 3, 10, 9, 0), utc(2024, 3, 10, 10, 0))

	out, err := s.ExportICS(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "SUMMARY:Mine")
	assert.NotContains(t, out, "Theirs")
}
