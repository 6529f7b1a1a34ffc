package http

import (
	"github.com/NeuralTrust/TMSHarness/pkg/app/attack"
	"github.com/NeuralTrust/TMSHarness/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type fraudSimulationHandler struct {
	logger  *logrus.Logger
	attacks attack.Service
}

func NewFraudSimulationHandler(logger *logrus.Logger, attacks attack.Service) Handler {
	return &fraudSimulationHandler{
		logger:  logger,
		attacks: attacks,
	}
}

// Handle @Summary Fraud simulation
// @Description Runs a baseline transfer, an attack burst and an alert check against one account
// @Tags Attacks
// @Accept json
// @Produce json
// @Param request body request.FraudSimulationRequest true "Attack parameters"
// @Success 200 {object} attack.SimulationResult
// @Failure 400 {object} map[string]interface{}
// @Router /api/test/fraud-simulation [post]
func (h *fraudSimulationHandler) Handle(c *fiber.Ctx) error {
	var req request.FraudSimulationRequest
	if ok, err := parseRequest(c, h.logger, &req); !ok {
		return err
	}

	res, err := h.attacks.FraudSimulation(c.Context(), req.ToAttack())
	if err != nil {
		return respondError(c, h.logger, err, "fraud simulation failed")
	}
	return c.Status(fiber.StatusOK).JSON(res)
}
