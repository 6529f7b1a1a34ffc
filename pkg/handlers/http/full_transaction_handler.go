package http

import (
	"github.com/NeuralTrust/TMSHarness/pkg/app/transaction"
	"github.com/NeuralTrust/TMSHarness/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type fullTransactionHandler struct {
	logger       *logrus.Logger
	transactions transaction.Service
}

func NewFullTransactionHandler(logger *logrus.Logger, transactions transaction.Service) Handler {
	return &fullTransactionHandler{
		logger:       logger,
		transactions: transactions,
	}
}

// Handle @Summary Full transaction
// @Description Sends pacs.008 followed by pacs.002 ACCC
// @Tags Tests
// @Accept json
// @Produce json
// @Param request body request.FullTransactionRequest false "Debtor and amount"
// @Success 200 {object} transaction.FullTransactionResult
// @Failure 400 {object} map[string]interface{}
// @Router /api/test/full-transaction [post]
func (h *fullTransactionHandler) Handle(c *fiber.Ctx) error {
	var req request.FullTransactionRequest
	if ok, err := parseRequest(c, h.logger, &req); !ok {
		return err
	}

	res, err := h.transactions.FullTransaction(c.Context(), req.Parties())
	if err != nil {
		return respondError(c, h.logger, err, "full transaction test failed")
	}
	return c.Status(fiber.StatusOK).JSON(res)
}
