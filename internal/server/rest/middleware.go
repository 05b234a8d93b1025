package rest

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/calendar/internal/common"
)

// accessTokenMiddleware resolves the bearer token to an account id and
// stores it on the context under common.UserIDContextKey.
func (s *RESTServer) accessTokenMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(common.AuthorizationHeaderName))
		if !ok {
			return unauthorized(c, "Not authenticated")
		}

		userID, err := s.users.Authenticate(token)
		if err != nil {
			s.logger.Debug(c.Request().Context(), "token rejected", "error", err)
			return unauthorized(c, "Invalid or expired token")
		}

		c.Set(common.UserIDContextKey, userID)
		return next(c)
	}
}

func unauthorized(c echo.Context, detail string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, common.BearerScheme)
	return echo.NewHTTPError(http.StatusUnauthorized, detail)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func userID(c echo.Context) string {
	id, _ := c.Get(common.UserIDContextKey).(string)
	return id
}
