package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/common"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

type metricsMiddleware struct {
	logger  *logrus.Logger
	enabled bool
}

// NewMetricsMiddleware tags every request with an id and, when enabled,
// records request counts and latency per route.
func NewMetricsMiddleware(logger *logrus.Logger, enabled bool) Middleware {
	return &metricsMiddleware{
		logger:  logger,
		enabled: enabled,
	}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(string(common.RequestIDContextKey), requestID)
		c.Set(RequestIDHeader, requestID)

		if strings.HasPrefix(c.Path(), "/ws/") {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		elapsed := float64(time.Since(start).Microseconds()) / 1000

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		route := c.Route().Path

		if m.enabled {
			prometheus.HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
			prometheus.HTTPRequestLatency.WithLabelValues(c.Method(), route).Observe(elapsed)
		}

		m.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"elapsed_ms": elapsed,
		}).Debug("request served")

		return err
	}
}
