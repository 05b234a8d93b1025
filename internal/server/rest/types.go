package rest

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/calendar/internal/server/models"
	"github.com/dmitrijs2005/calendar/internal/timex"
)

// requestTime accepts RFC 3339 and offset-less timestamps in request
// bodies; see timex.ParseTime.
type requestTime time.Time

func (t *requestTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := timex.ParseTime(s)
	if err != nil {
		return err
	}
	*t = requestTime(parsed)
	return nil
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type meResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type eventCreateRequest struct {
	Title                 string       `json:"title"`
	Description           *string      `json:"description"`
	Start                 *requestTime `json:"start"`
	End                   *requestTime `json:"end"`
	AllDay                bool         `json:"all_day"`
	ReminderMinutesBefore *int         `json:"reminder_minutes_before"`
}

func (r *eventCreateRequest) fields() models.EventFields {
	return models.EventFields{
		Title:                 r.Title,
		Description:           r.Description,
		Start:                 time.Time(*r.Start),
		End:                   time.Time(*r.End),
		AllDay:                r.AllDay,
		ReminderMinutesBefore: r.ReminderMinutesBefore,
	}
}

type eventUpdateRequest struct {
	Title                 models.Optional[string]      `json:"title"`
	Description           models.Optional[string]      `json:"description"`
	Start                 models.Optional[requestTime] `json:"start"`
	End                   models.Optional[requestTime] `json:"end"`
	AllDay                models.Optional[bool]        `json:"all_day"`
	ReminderMinutesBefore models.Optional[int]         `json:"reminder_minutes_before"`
}

func (r *eventUpdateRequest) patch() models.EventPatch {
	return models.EventPatch{
		Title:                 r.Title,
		Description:           r.Description,
		Start:                 toTime(r.Start),
		End:                   toTime(r.End),
		AllDay:                r.AllDay,
		ReminderMinutesBefore: r.ReminderMinutesBefore,
	}
}

func toTime(o models.Optional[requestTime]) models.Optional[time.Time] {
	if o.Value == nil {
		return models.Optional[time.Time]{Set: o.Set}
	}
	return models.Some(time.Time(*o.Value))
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

type messageResponse struct {
	Message string `json:"message"`
}
