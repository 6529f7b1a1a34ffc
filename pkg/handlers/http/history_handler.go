package http

import (
	"github.com/NeuralTrust/TMSHarness/pkg/app/history"
	"github.com/NeuralTrust/TMSHarness/pkg/domain/record"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type HistoryResponse struct {
	TotalTests int                 `json:"total_tests"`
	History    []record.TestRecord `json:"history"`
}

type getHistoryHandler struct {
	logger  *logrus.Logger
	history history.Service
}

func NewGetHistoryHandler(logger *logrus.Logger, historySvc history.Service) Handler {
	return &getHistoryHandler{
		logger:  logger,
		history: historySvc,
	}
}

// Handle @Summary Recent tests
// @Description Returns the total count and the most recent test records
// @Tags History
// @Produce json
// @Success 200 {object} HistoryResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/history [get]
func (h *getHistoryHandler) Handle(c *fiber.Ctx) error {
	total, err := h.history.Count(c.Context())
	if err != nil {
		return respondError(c, h.logger, err, "failed to read history")
	}
	recent, err := h.history.Recent(c.Context())
	if err != nil {
		return respondError(c, h.logger, err, "failed to read history")
	}
	if recent == nil {
		recent = []record.TestRecord{}
	}
	return c.Status(fiber.StatusOK).JSON(HistoryResponse{TotalTests: total, History: recent})
}

type clearHistoryHandler struct {
	logger  *logrus.Logger
	history history.Service
}

func NewClearHistoryHandler(logger *logrus.Logger, historySvc history.Service) Handler {
	return &clearHistoryHandler{
		logger:  logger,
		history: historySvc,
	}
}

// Handle @Summary Clear history
// @Tags History
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/history [delete]
func (h *clearHistoryHandler) Handle(c *fiber.Ctx) error {
	if err := h.history.Clear(c.Context()); err != nil {
		return respondError(c, h.logger, err, "failed to clear history")
	}
	h.logger.Info("test history cleared")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "success", "message": "History cleared"})
}
