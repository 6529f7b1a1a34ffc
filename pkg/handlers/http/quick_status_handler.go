package http

import (
	"github.com/NeuralTrust/TMSHarness/pkg/app/transaction"
	"github.com/NeuralTrust/TMSHarness/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type quickStatusHandler struct {
	logger       *logrus.Logger
	transactions transaction.Service
}

func NewQuickStatusHandler(logger *logrus.Logger, transactions transaction.Service) Handler {
	return &quickStatusHandler{
		logger:       logger,
		transactions: transactions,
	}
}

// Handle @Summary Quick status test
// @Description Sends pacs.008 and then a pacs.002 carrying the requested status code
// @Tags Tests
// @Accept json
// @Produce json
// @Param request body request.QuickStatusRequest false "Status code and debtor"
// @Success 200 {object} transaction.QuickStatusResult
// @Failure 400 {object} map[string]interface{}
// @Router /api/test/quick-status [post]
func (h *quickStatusHandler) Handle(c *fiber.Ctx) error {
	var req request.QuickStatusRequest
	if ok, err := parseRequest(c, h.logger, &req); !ok {
		return err
	}

	res, err := h.transactions.QuickStatus(c.Context(), req.StatusCode, req.Parties())
	if err != nil {
		return respondError(c, h.logger, err, "quick status test failed")
	}
	return c.Status(fiber.StatusOK).JSON(res)
}
