package http

import (
	"github.com/NeuralTrust/TMSHarness/pkg/app/history"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type statsHandler struct {
	logger  *logrus.Logger
	history history.Service
}

func NewStatsHandler(logger *logrus.Logger, historySvc history.Service) Handler {
	return &statsHandler{
		logger:  logger,
		history: historySvc,
	}
}

// Handle @Summary Test statistics
// @Description Aggregates every recorded test
// @Tags Status
// @Produce json
// @Success 200 {object} record.Stats
// @Failure 500 {object} map[string]interface{}
// @Router /api/stats [get]
func (h *statsHandler) Handle(c *fiber.Ctx) error {
	stats, err := h.history.Stats(c.Context())
	if err != nil {
		return respondError(c, h.logger, err, "failed to compute stats")
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}
