package middleware

import (
	"teeshop/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request counts and latencies per route template.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Handle observes the request once the handler returns.
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		done := m.metrics.RequestStarted()

		err := next(c)

		status := c.Response().Status
		if err != nil {
			status = StatusOf(err)
		}
		done(c.Request().Method, c.Path(), status)

		return err
	}
}
