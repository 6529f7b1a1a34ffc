package http

import (
	"github.com/NeuralTrust/TMSHarness/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type VersionResponse struct {
	version.Info
	TMSTarget string `json:"tms_target"`
}

type getVersionHandler struct {
	logger    *logrus.Logger
	tmsTarget string
}

func NewGetVersionHandler(logger *logrus.Logger, tmsTarget string) Handler {
	return &getVersionHandler{
		logger:    logger,
		tmsTarget: tmsTarget,
	}
}

// Handle @Summary Get harness version
// @Description Returns build information and the TMS base URL the harness targets
// @Tags Version
// @Produce json
// @Success 200 {object} VersionResponse
// @Router /version [get]
func (h *getVersionHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(VersionResponse{
		Info:      version.GetInfo(),
		TMSTarget: h.tmsTarget,
	})
}
