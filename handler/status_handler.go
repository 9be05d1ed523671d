// Package handler serves the scheduler's read-only status surface.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/Yaz-U/ai-news-daily/job"
)

// StatusSource is the part of job.Status the handler reads.
type StatusSource interface {
	View() job.StatusView
}

type StatusHandler struct {
	status StatusSource
}

func NewStatusHandler(status StatusSource) *StatusHandler {
	return &StatusHandler{status: status}
}

func (h *StatusHandler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *StatusHandler) HandleStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.status.View())
}

// NewStatusServer builds the echo instance. reg may be nil, in which case
// /metrics is not mounted.
func NewStatusServer(status StatusSource, reg *prometheus.Registry, otelEnabled bool, otelServiceName string, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	if otelEnabled {
		e.Use(otelecho.Middleware(otelServiceName))
	}

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.InfoContext(c.Request().Context(), "HTTP request completed",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"error", v.Error)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	h := NewStatusHandler(status)
	e.GET("/health", h.HandleHealth)
	e.GET("/status", h.HandleStatus)
	if reg != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	}

	return e
}

// StartStatusServer runs the server until ctx is done.
func StartStatusServer(ctx context.Context, e *echo.Echo, addr string, logger *slog.Logger) {
	go func() {
		logger.Info("Starting status server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("status server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Warn("status server shutdown failed", "error", err)
		}
	}()
}
