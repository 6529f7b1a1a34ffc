package http

import (
	"fmt"

	"github.com/NeuralTrust/TMSHarness/pkg/infra/prometheus"
	"github.com/NeuralTrust/TMSHarness/pkg/iso20022"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	mockStatus = "ACTC"
	mockReason = "Passed Validation"
)

type mockEvaluateHandler struct {
	logger *logrus.Logger
}

// NewMockEvaluateHandler answers every well formed pacs.008 with an approval.
func NewMockEvaluateHandler(logger *logrus.Logger) Handler {
	return &mockEvaluateHandler{
		logger: logger,
	}
}

func validatePacs008(msg *iso20022.Pacs008) error {
	if msg.MessageID() == "" {
		return fmt.Errorf("FIToFICstmrCdtTrf.GrpHdr.MsgId is required")
	}
	if msg.EndToEndID() == "" {
		return fmt.Errorf("FIToFICstmrCdtTrf.CdtTrfTxInf.PmtId.EndToEndId is required")
	}
	return nil
}

// Handle @Summary Evaluate pacs.008
// @Description Mock TMS evaluation, always approves a valid message
// @Tags Mock
// @Accept json
// @Produce json
// @Param message body iso20022.Pacs008 true "pacs.008.001.10 message"
// @Success 200 {object} iso20022.EvaluationResponse
// @Failure 400 {object} map[string]interface{}
// @Router /v1/evaluate/iso20022/pacs.008.001.10 [post]
func (h *mockEvaluateHandler) Handle(c *fiber.Ctx) error {
	var msg iso20022.Pacs008
	if err := c.BodyParser(&msg); err != nil {
		h.logger.WithError(err).Warn("failed to bind pacs.008")
		prometheus.MockEvaluationsTotal.WithLabelValues("invalid").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := validatePacs008(&msg); err != nil {
		prometheus.MockEvaluationsTotal.WithLabelValues("invalid").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	h.logger.WithFields(logrus.Fields{
		"end_to_end_id": msg.EndToEndID(),
		"amount":        msg.Amount(),
		"debtor":        msg.DebtorAccount(),
	}).Info("received transaction")
	prometheus.MockEvaluationsTotal.WithLabelValues("approved").Inc()

	return c.Status(fiber.StatusOK).JSON(iso20022.EvaluationResponse{Status: mockStatus, Reason: mockReason})
}

type mockStatusHandler struct{}

func NewMockStatusHandler() Handler {
	return &mockStatusHandler{}
}

// Handle @Summary Mock TMS status
// @Tags Mock
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *mockStatusHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "UP"})
}
