package http

import (
	"github.com/NeuralTrust/TMSHarness/pkg/app/attack"
	"github.com/NeuralTrust/TMSHarness/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type attackScenarioHandler struct {
	logger  *logrus.Logger
	attacks attack.Service
}

func NewAttackScenarioHandler(logger *logrus.Logger, attacks attack.Service) Handler {
	return &attackScenarioHandler{
		logger:  logger,
		attacks: attacks,
	}
}

// Handle @Summary Rule attack scenario
// @Description Replays the fraud pattern of rule_901, rule_902, rule_006 or rule_018
// @Tags Attacks
// @Accept json
// @Produce json
// @Param request body request.AttackScenarioRequest true "Attack parameters"
// @Success 200 {object} attack.Result
// @Failure 400 {object} map[string]interface{}
// @Router /api/test/attack-scenario [post]
func (h *attackScenarioHandler) Handle(c *fiber.Ctx) error {
	var req request.AttackScenarioRequest
	if ok, err := parseRequest(c, h.logger, &req); !ok {
		return err
	}

	res, err := h.attacks.Scenario(c.Context(), req.ToAttack())
	if err != nil {
		return respondError(c, h.logger, err, "attack scenario failed")
	}
	return c.Status(fiber.StatusOK).JSON(res)
}
