package http

import (
	"github.com/NeuralTrust/TMSHarness/pkg/app/attack"
	"github.com/NeuralTrust/TMSHarness/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type velocityHandler struct {
	logger  *logrus.Logger
	attacks attack.Service
}

func NewVelocityHandler(logger *logrus.Logger, attacks attack.Service) Handler {
	return &velocityHandler{
		logger:  logger,
		attacks: attacks,
	}
}

// Handle @Summary Debtor velocity attack
// @Description Sends a burst of transfers from one debtor to trigger rule 901
// @Tags Attacks
// @Accept json
// @Produce json
// @Param request body request.VelocityRequest true "Attack parameters"
// @Success 200 {object} attack.Result
// @Failure 400 {object} map[string]interface{}
// @Router /api/test/velocity [post]
func (h *velocityHandler) Handle(c *fiber.Ctx) error {
	var req request.VelocityRequest
	if ok, err := parseRequest(c, h.logger, &req); !ok {
		return err
	}

	res, err := h.attacks.Velocity(c.Context(), req.ToAttack())
	if err != nil {
		return respondError(c, h.logger, err, "velocity attack failed")
	}
	return c.Status(fiber.StatusOK).JSON(res)
}
