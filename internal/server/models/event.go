package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/calendar/internal/common"
)

// MaxReminderMinutes is seven days.
const MaxReminderMinutes = 7 * 24 * 60

// Event is a calendar entry owned by exactly one account.
type Event struct {
	ID                    string    `json:"id"`
	OwnerID               string    `json:"owner_id"`
	Title                 string    `json:"title"`
	Description           *string   `json:"description"`
	Start                 time.Time `json:"start"`
	End                   time.Time `json:"end"`
	AllDay                bool      `json:"all_day"`
	ReminderMinutesBefore *int      `json:"reminder_minutes_before"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// EventFields is everything a caller supplies when creating an event.
type EventFields struct {
	Title                 string
	Description           *string
	Start                 time.Time
	End                   time.Time
	AllDay                bool
	ReminderMinutesBefore *int
}

// EventPatch carries a partial update. Only fields with Set == true are
// applied.
type EventPatch struct {
	Title                 Optional[string]
	Description           Optional[string]
	Start                 Optional[time.Time]
	End                   Optional[time.Time]
	AllDay                Optional[bool]
	ReminderMinutesBefore Optional[int]
}

// NewEvent builds an event from create fields. Times are normalized to UTC.
func NewEvent(id, ownerID string, f EventFields, now time.Time) *Event {
	return &Event{
		ID:                    id,
		OwnerID:               ownerID,
		Title:                 f.Title,
		Description:           f.Description,
		Start:                 f.Start.UTC(),
		End:                   f.End.UTC(),
		AllDay:                f.AllDay,
		ReminderMinutesBefore: f.ReminderMinutesBefore,
		CreatedAt:             now.UTC(),
		UpdatedAt:             now.UTC(),
	}
}

// Merge returns a copy of e with the supplied patch fields applied. A null
// for a required field is a validation error; a null for an optional one
// clears it.
func (e *Event) Merge(p EventPatch) (*Event, error) {
	merged := *e

	if p.Title.Set {
		if p.Title.Value == nil {
			return nil, fmt.Errorf("%w: title must not be null", common.ErrorValidation)
		}
		merged.Title = *p.Title.Value
	}
	if p.Description.Set {
		merged.Description = p.Description.Value
	}
	if p.Start.Set {
		if p.Start.Value == nil {
			return nil, fmt.Errorf("%w: start must not be null", common.ErrorValidation)
		}
		merged.Start = p.Start.Value.UTC()
	}
	if p.End.Set {
		if p.End.Value == nil {
			return nil, fmt.Errorf("%w: end must not be null", common.ErrorValidation)
		}
		merged.End = p.End.Value.UTC()
	}
	if p.AllDay.Set {
		if p.AllDay.Value == nil {
			return nil, fmt.Errorf("%w: all_day must not be null", common.ErrorValidation)
		}
		merged.AllDay = *p.AllDay.Value
	}
	if p.ReminderMinutesBefore.Set {
		merged.ReminderMinutesBefore = p.ReminderMinutesBefore.Value
	}

	return &merged, nil
}

// Validate checks the field constraints that must hold after every create
// and update.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if r := e.ReminderMinutesBefore; r != nil && (*r < 0 || *r > MaxReminderMinutes) {
		return fmt.Errorf("%w: reminder_minutes_before must be between 0 and %d", common.ErrorValidation, MaxReminderMinutes)
	}
	if e.End.Before(e.Start) {
		return common.ErrorInvalidRange
	}
	return nil
}
