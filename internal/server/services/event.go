package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/calendar/internal/common"
	"github.com/dmitrijs2005/calendar/internal/server/export"
	"github.com/dmitrijs2005/calendar/internal/server/models"
	"github.com/dmitrijs2005/calendar/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/calendar/internal/server/views"
)

// Bounds accepted by MonthView.
const (
	MinViewYear = 1970
	MaxViewYear = 2100
)

// EventService scopes every event operation to the calling account.
type EventService struct {
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewEventService(m repomanager.RepositoryManager) *EventService {
	return &EventService{repomanager: m, now: time.Now}
}

func (s *EventService) Create(ctx context.Context, userID string, fields models.EventFields) (*models.Event, error) {
	return s.repomanager.Events().Create(ctx, userID, fields)
}

func (s *EventService) List(ctx context.Context, userID string) ([]models.Event, error) {
	return s.repomanager.Events().ListFor(ctx, userID)
}

func (s *EventService) Get(ctx context.Context, userID, eventID string) (*models.Event, error) {
	return s.repomanager.Events().GetFor(ctx, userID, eventID)
}

func (s *EventService) Update(ctx context.Context, userID, eventID string, patch models.EventPatch) (*models.Event, error) {
	return s.repomanager.Events().Update(ctx, userID, eventID, patch)
}

func (s *EventService) Delete(ctx context.Context, userID, eventID string) error {
	return s.repomanager.Events().Delete(ctx, userID, eventID)
}

// DayView lists the caller's events overlapping the calendar day of day.
func (s *EventService) DayView(ctx context.Context, userID string, day time.Time) ([]models.Event, error) {
	return s.view(ctx, userID, views.Day(day))
}

// WeekView lists the caller's events overlapping the seven days starting
// on weekStart.
func (s *EventService) WeekView(ctx context.Context, userID string, weekStart time.Time) ([]models.Event, error) {
	return s.view(ctx, userID, views.Week(weekStart))
}

// MonthView lists the caller's events overlapping the given month.
func (s *EventService) MonthView(ctx context.Context, userID string, year, month int) ([]models.Event, error) {
	if year < MinViewYear || year > MaxViewYear {
		return nil, fmt.Errorf("%w: year must be between %d and %d", common.ErrorValidation, MinViewYear, MaxViewYear)
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", common.ErrorValidation)
	}
	return s.view(ctx, userID, views.Month(year, time.Month(month)))
}

// ExportICS renders all of the caller's events as an iCalendar document.
func (s *EventService) ExportICS(ctx context.Context, userID string) (string, error) {
	events, err := s.repomanager.Events().ListFor(ctx, userID)
	if err != nil {
		return "", err
	}
	return export.Calendar(events, s.now()), nil
}

func (s *EventService) view(ctx context.Context, userID string, w views.Window) ([]models.Event, error) {
	events, err := s.repomanager.Events().ListFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return views.Filter(events, w), nil
}
