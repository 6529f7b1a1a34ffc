package http

import (
	"github.com/NeuralTrust/TMSHarness/pkg/app/logs"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type containerLogsHandler struct {
	logger *logrus.Logger
	logs   logs.Service
}

func NewContainerLogsHandler(logger *logrus.Logger, logsSvc logs.Service) Handler {
	return &containerLogsHandler{
		logger: logger,
		logs:   logsSvc,
	}
}

// Handle @Summary Container logs
// @Description Returns the last lines of a TMS container log
// @Tags Utilities
// @Produce json
// @Param container path string true "Container name"
// @Param tail query int false "Number of lines" default(50)
// @Success 200 {object} logs.ContainerLogs
// @Router /api/logs/{container} [get]
func (h *containerLogsHandler) Handle(c *fiber.Ctx) error {
	container := c.Params("container")
	tail := c.QueryInt("tail", logs.DefaultTail)
	return c.Status(fiber.StatusOK).JSON(h.logs.ContainerLogs(c.Context(), container, tail))
}
