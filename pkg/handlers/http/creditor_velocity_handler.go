package http

import (
	"github.com/NeuralTrust/TMSHarness/pkg/app/attack"
	"github.com/NeuralTrust/TMSHarness/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type creditorVelocityHandler struct {
	logger  *logrus.Logger
	attacks attack.Service
}

func NewCreditorVelocityHandler(logger *logrus.Logger, attacks attack.Service) Handler {
	return &creditorVelocityHandler{
		logger:  logger,
		attacks: attacks,
	}
}

// Handle @Summary Money mule attack
// @Description Sends transfers from many random debtors to one creditor to trigger rule 902
// @Tags Attacks
// @Accept json
// @Produce json
// @Param request body request.CreditorVelocityRequest true "Attack parameters"
// @Success 200 {object} attack.Result
// @Failure 400 {object} map[string]interface{}
// @Router /api/test/velocity-creditor [post]
func (h *creditorVelocityHandler) Handle(c *fiber.Ctx) error {
	var req request.CreditorVelocityRequest
	if ok, err := parseRequest(c, h.logger, &req); !ok {
		return err
	}

	res, err := h.attacks.CreditorVelocity(c.Context(), req.ToAttack())
	if err != nil {
		return respondError(c, h.logger, err, "money mule attack failed")
	}
	return c.Status(fiber.StatusOK).JSON(res)
}
