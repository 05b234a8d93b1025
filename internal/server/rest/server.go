// Package rest exposes the calendar over HTTP/JSON using echo.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dmitrijs2005/calendar/internal/logging"
	"github.com/dmitrijs2005/calendar/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type RESTServer struct {
	address string
	echo    *echo.Echo
	users   *services.UserService
	events  *services.EventService
	logger  logging.Logger
}

func NewRESTServer(a string, l logging.Logger, us *services.UserService, es *services.EventService, corsOrigins []string) *RESTServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &RESTServer{
		address: a,
		echo:    e,
		users:   us,
		events:  es,
		logger:  l.With("module", "rest_server"),
	}

	e.HTTPErrorHandler = s.errorHandler
	e.Use(s.requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(corsConfig(corsOrigins)))

	s.registerRoutes()
	return s
}

func corsConfig(origins []string) middleware.CORSConfig {
	cfg := middleware.DefaultCORSConfig
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	// wildcard plus credentials echoes the caller's origin back
	cfg.UnsafeWildcardOriginWithAllowCredentials = len(origins) == 1 && origins[0] == "*"
	return cfg
}

func (s *RESTServer) registerRoutes() {
	s.echo.GET("/", s.health)

	a := s.echo.Group("/auth")
	a.POST("/signup", s.signup)
	a.POST("/login", s.login)
	a.GET("/me", s.me, s.accessTokenMiddleware)

	ev := s.echo.Group("/events", s.accessTokenMiddleware)
	ev.POST("", s.createEvent)
	ev.GET("", s.listEvents)
	ev.GET("/:id", s.getEvent)
	ev.PUT("/:id", s.updateEvent)
	ev.DELETE("/:id", s.deleteEvent)

	v := s.echo.Group("/views", s.accessTokenMiddleware)
	v.GET("/day", s.dayView)
	v.GET("/week", s.weekView)
	v.GET("/month", s.monthView)
	v.GET("/export.ics", s.exportICS)
}

// ServeHTTP lets the server be mounted or driven directly in tests.
func (s *RESTServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *RESTServer) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger logs one line per request once the response is written.
func (s *RESTServer) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		begin := time.Now()
		req := c.Request()

		err := next(c)
		if err != nil {
			// let the error handler write the status before it is logged
			c.Error(err)
		}

		s.logger.Info(req.Context(), "request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", c.Response().Status,
			"latency", time.Since(begin),
		)
		return nil
	}
}
