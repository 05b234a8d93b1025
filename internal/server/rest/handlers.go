package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/calendar/internal/common"
	"github.com/dmitrijs2005/calendar/internal/server/export"
	"github.com/dmitrijs2005/calendar/internal/timex"
)

func (s *RESTServer) health(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "Healthy"})
}

func (s *RESTServer) signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	token, err := s.users.Signup(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return echo.NewHTTPError(http.StatusConflict, "Email already registered")
		}
		return err
	}

	s.logger.Info(ctx, "Registered", "email", req.Email)
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token.AccessToken, TokenType: token.TokenType})
}

func (s *RESTServer) login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	token, err := s.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
		}
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token.AccessToken, TokenType: token.TokenType})
}

func (s *RESTServer) me(c echo.Context) error {
	user, err := s.users.Me(c.Request().Context(), userID(c))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid user")
		}
		return err
	}
	return c.JSON(http.StatusOK, meResponse{ID: user.ID, Email: user.Email})
}

func (s *RESTServer) createEvent(c echo.Context) error {
	var req eventCreateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.Start == nil || req.End == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start and end are required")
	}

	e, err := s.events.Create(c.Request().Context(), userID(c), req.fields())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

func (s *RESTServer) listEvents(c echo.Context) error {
	events, err := s.events.List(c.Request().Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

func (s *RESTServer) getEvent(c echo.Context) error {
	e, err := s.events.Get(c.Request().Context(), userID(c), c.Param("id"))
	if err != nil {
		return eventError(err)
	}
	return c.JSON(http.StatusOK, e)
}

func (s *RESTServer) updateEvent(c echo.Context) error {
	var req eventUpdateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	e, err := s.events.Update(c.Request().Context(), userID(c), c.Param("id"), req.patch())
	if err != nil {
		return eventError(err)
	}
	return c.JSON(http.StatusOK, e)
}

func (s *RESTServer) deleteEvent(c echo.Context) error {
	if err := s.events.Delete(c.Request().Context(), userID(c), c.Param("id")); err != nil {
		return eventError(err)
	}
	return c.JSON(http.StatusOK, deleteResponse{Deleted: true})
}

func (s *RESTServer) dayView(c echo.Context) error {
	day, err := queryTime(c, "day")
	if err != nil {
		return err
	}

	events, err := s.events.DayView(c.Request().Context(), userID(c), day)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

func (s *RESTServer) weekView(c echo.Context) error {
	weekStart, err := queryTime(c, "week_start")
	if err != nil {
		return err
	}

	events, err := s.events.WeekView(c.Request().Context(), userID(c), weekStart)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

func (s *RESTServer) monthView(c echo.Context) error {
	year, err := queryInt(c, "year")
	if err != nil {
		return err
	}
	month, err := queryInt(c, "month")
	if err != nil {
		return err
	}

	events, err := s.events.MonthView(c.Request().Context(), userID(c), year, month)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

func (s *RESTServer) exportICS(c echo.Context) error {
	doc, err := s.events.ExportICS(c.Request().Context(), userID(c))
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="calendar.ics"`)
	return c.Blob(http.StatusOK, export.ContentType, []byte(doc))
}

// eventError gives a missing event its own detail.
func eventError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Event not found")
	}
	return err
}

func queryTime(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s is required", name))
	}
	parsed, err := timex.ParseTime(raw)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s: %v", name, err))
	}
	return parsed, nil
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s is required", name))
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be an integer", name))
	}
	return v, nil
}
