package http

import (
	"github.com/NeuralTrust/TMSHarness/pkg/infra/tms"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type healthHandler struct {
	logger *logrus.Logger
	client tms.Client
}

func NewHealthHandler(logger *logrus.Logger, client tms.Client) Handler {
	return &healthHandler{
		logger: logger,
		client: client,
	}
}

// Handle @Summary TMS health
// @Description Probes the TMS root endpoint and falls back to the container status
// @Tags Status
// @Produce json
// @Success 200 {object} tms.HealthReport
// @Router /api/health [get]
func (h *healthHandler) Handle(c *fiber.Ctx) error {
	report := h.client.CheckHealth(c.Context())
	if !report.Healthy() {
		h.logger.WithField("tms_url", report.TMSURL).Warn("tms health check failed")
	}
	return c.Status(fiber.StatusOK).JSON(report)
}
