package http

import (
	"github.com/NeuralTrust/TMSHarness/pkg/app/transaction"
	"github.com/NeuralTrust/TMSHarness/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type pacs008Handler struct {
	logger       *logrus.Logger
	transactions transaction.Service
}

func NewPacs008Handler(logger *logrus.Logger, transactions transaction.Service) Handler {
	return &pacs008Handler{
		logger:       logger,
		transactions: transactions,
	}
}

// Handle @Summary Send pacs.008
// @Description Sends a pacs.008 credit transfer, confirms it with pacs.002 ACCC and reads fraud alerts
// @Tags Tests
// @Accept json
// @Produce json
// @Param request body request.Pacs008Request false "Transfer parties"
// @Success 200 {object} transaction.Pacs008Result
// @Failure 400 {object} map[string]interface{}
// @Router /api/test/pacs008 [post]
func (h *pacs008Handler) Handle(c *fiber.Ctx) error {
	var req request.Pacs008Request
	if ok, err := parseRequest(c, h.logger, &req); !ok {
		return err
	}

	res, err := h.transactions.Pacs008(c.Context(), req.Parties())
	if err != nil {
		return respondError(c, h.logger, err, "pacs.008 test failed")
	}
	return c.Status(fiber.StatusOK).JSON(res)
}
