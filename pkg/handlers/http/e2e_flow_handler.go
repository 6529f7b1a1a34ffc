package http

import (
	"github.com/NeuralTrust/TMSHarness/pkg/app/flow"
	"github.com/NeuralTrust/TMSHarness/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type e2eFlowHandler struct {
	logger *logrus.Logger
	runner flow.Runner
}

func NewE2EFlowHandler(logger *logrus.Logger, runner flow.Runner) Handler {
	return &e2eFlowHandler{
		logger: logger,
		runner: runner,
	}
}

// Handle @Summary End-to-end flow
// @Description Runs pain.001, pain.013, pacs.008 and pacs.002 in order, stopping at the first failed step
// @Tags Flows
// @Accept json
// @Produce json
// @Param request body request.E2EFlowRequest false "Flow parameters"
// @Success 200 {object} flow.Result
// @Failure 400 {object} map[string]interface{}
// @Router /api/test/e2e-flow [post]
func (h *e2eFlowHandler) Handle(c *fiber.Ctx) error {
	var req request.E2EFlowRequest
	if ok, err := parseRequest(c, h.logger, &req); !ok {
		return err
	}

	res, err := h.runner.Run(c.Context(), req.ToFlow())
	if err != nil {
		return respondError(c, h.logger, err, "e2e flow failed")
	}
	return c.Status(fiber.StatusOK).JSON(res)
}
