package http

import (
	"context"

	"github.com/NeuralTrust/TMSHarness/pkg/app/payload"
	"github.com/NeuralTrust/TMSHarness/pkg/app/transaction"
	"github.com/NeuralTrust/TMSHarness/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type painSender func(ctx context.Context, parties payload.Parties) (*transaction.PainResult, error)

type painHandler struct {
	logger  *logrus.Logger
	message string
	send    painSender
}

func NewPain001Handler(logger *logrus.Logger, transactions transaction.Service) Handler {
	return &painHandler{
		logger:  logger,
		message: "pain.001",
		send:    transactions.Pain001,
	}
}

func NewPain013Handler(logger *logrus.Logger, transactions transaction.Service) Handler {
	return &painHandler{
		logger:  logger,
		message: "pain.013",
		send:    transactions.Pain013,
	}
}

// Handle @Summary Send pain.001 or pain.013
// @Description Sends a customer credit transfer initiation (pain.001) or a payment activation request (pain.013)
// @Tags Tests
// @Accept json
// @Produce json
// @Param request body request.PainRequest false "Transfer parties"
// @Success 200 {object} transaction.PainResult
// @Failure 400 {object} map[string]interface{}
// @Router /api/test/pain001 [post]
// @Router /api/test/pain013 [post]
func (h *painHandler) Handle(c *fiber.Ctx) error {
	var req request.PainRequest
	if ok, err := parseRequest(c, h.logger, &req); !ok {
		return err
	}

	res, err := h.send(c.Context(), req.Parties())
	if err != nil {
		return respondError(c, h.logger, err, h.message+" test failed")
	}
	return c.Status(fiber.StatusOK).JSON(res)
}
