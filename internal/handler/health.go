package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/deppfellow/starwars-api/internal/middleware"
	"github.com/deppfellow/starwars-api/internal/server"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"
	statusDisabled  = "disabled"
)

var errNotConnected = errors.New("not connected")

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth probes the enabled dependencies.
//
// The database is required: when it fails the endpoint answers 503. Redis
// only backs background jobs, so a failure there reports "degraded" with 200.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	obs := h.server.Config.Observability
	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      statusHealthy,
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	if obs.HealthCheckEnabled("database") {
		err := h.runCheck(c.Request().Context(), &logger, checks, "database", func(ctx context.Context) error {
			if h.server.DB == nil {
				return errNotConnected
			}
			return h.server.DB.Ping(ctx)
		})
		if err != nil {
			response["status"] = statusUnhealthy
		}
	}

	if obs.HealthCheckEnabled("redis") {
		if h.server.Redis == nil {
			checks["redis"] = map[string]interface{}{"status": statusDisabled}
		} else {
			err := h.runCheck(c.Request().Context(), &logger, checks, "redis", func(ctx context.Context) error {
				return h.server.Redis.Ping(ctx).Err()
			})
			if err != nil && response["status"] == statusHealthy {
				response["status"] = statusDegraded
			}
		}
	}

	if response["status"] == statusUnhealthy {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthCheckError(map[string]interface{}{
			"check_type":        "overall",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

// runCheck executes probe under the configured timeout and records its
// outcome in checks[name].
func (h *HealthHandler) runCheck(
	ctx context.Context,
	logger *zerolog.Logger,
	checks map[string]interface{},
	name string,
	probe func(ctx context.Context) error,
) error {
	ctx, cancel := context.WithTimeout(ctx, h.server.Config.Observability.HealthChecks.Timeout)
	defer cancel()

	checkStart := time.Now()
	err := probe(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		checks[name] = map[string]interface{}{
			"status":        statusUnhealthy,
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}

		logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check failed")

		h.recordHealthCheckError(map[string]interface{}{
			"check_type":       name,
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return err
	}

	checks[name] = map[string]interface{}{
		"status":        statusHealthy,
		"response_time": elapsed.String(),
	}

	logger.Debug().
		Str("check", name).
		Dur("response_time", elapsed).
		Msg("health check passed")

	return nil
}

func (h *HealthHandler) recordHealthCheckError(attrs map[string]interface{}) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	attrs["operation"] = "health_check"
	app.RecordCustomEvent("HealthCheckError", attrs)
}
