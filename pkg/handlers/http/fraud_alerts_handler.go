package http

import (
	"github.com/NeuralTrust/TMSHarness/pkg/app/logs"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type fraudAlertsHandler struct {
	logger *logrus.Logger
	logs   logs.Service
}

func NewFraudAlertsHandler(logger *logrus.Logger, logsSvc logs.Service) Handler {
	return &fraudAlertsHandler{
		logger: logger,
		logs:   logsSvc,
	}
}

// Handle @Summary Fraud alerts
// @Description Scans every rule container log for fraud alerts
// @Tags Utilities
// @Produce json
// @Success 200 {object} logs.FraudAlerts
// @Router /api/fraud-alerts [get]
func (h *fraudAlertsHandler) Handle(c *fiber.Ctx) error {
	res := h.logs.FraudAlerts(c.Context())
	h.logger.WithField("alerts", len(res.FraudAlerts)).Debug("fraud alerts collected")
	return c.Status(fiber.StatusOK).JSON(res)
}
