package http

import (
	"github.com/NeuralTrust/TMSHarness/pkg/app/batch"
	"github.com/NeuralTrust/TMSHarness/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type batchHandler struct {
	logger *logrus.Logger
	runner batch.Runner
}

func NewBatchHandler(logger *logrus.Logger, runner batch.Runner) Handler {
	return &batchHandler{
		logger: logger,
		runner: runner,
	}
}

// Handle @Summary Batch scenarios
// @Description Runs a comma separated list of named scenarios, each reported independently
// @Tags Flows
// @Accept json
// @Produce json
// @Param request body request.BatchRequest true "Scenario names"
// @Success 200 {object} batch.Result
// @Failure 400 {object} map[string]interface{}
// @Router /api/test/batch [post]
func (h *batchHandler) Handle(c *fiber.Ctx) error {
	var req request.BatchRequest
	if ok, err := parseRequest(c, h.logger, &req); !ok {
		return err
	}

	res, err := h.runner.Run(c.Context(), batch.ParseScenarios(req.Scenarios))
	if err != nil {
		return respondError(c, h.logger, err, "batch test failed")
	}
	return c.Status(fiber.StatusOK).JSON(res)
}
