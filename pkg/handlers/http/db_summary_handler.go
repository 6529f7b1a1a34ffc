package http

import (
	"context"
	"errors"

	"github.com/NeuralTrust/TMSHarness/pkg/infra/database"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=TransactionSummarizer --dir=. --output=./mocks --filename=transaction_summarizer_mock.go --case=underscore --with-expecter
type TransactionSummarizer interface {
	GetTransactionSummary(ctx context.Context) (*database.Summary, error)
	StrategyName() string
}

type DBSummaryResponse struct {
	Status string `json:"status"`
	*database.Summary
}

type dbSummaryHandler struct {
	logger  *logrus.Logger
	summary TransactionSummarizer
}

func NewDBSummaryHandler(logger *logrus.Logger, summary TransactionSummarizer) Handler {
	return &dbSummaryHandler{
		logger:  logger,
		summary: summary,
	}
}

// Handle @Summary Database transaction summary
// @Description Top debtors and creditors from the TMS transaction table, through docker exec, local psql or a native connection
// @Tags Utilities
// @Produce json
// @Success 200 {object} DBSummaryResponse
// @Router /api/test/db-summary [get]
func (h *dbSummaryHandler) Handle(c *fiber.Ctx) error {
	res, err := h.summary.GetTransactionSummary(c.Context())
	if err != nil {
		var summaryErr *database.SummaryError
		if !errors.As(err, &summaryErr) {
			summaryErr = &database.SummaryError{Message: err.Error(), Strategy: h.summary.StrategyName()}
		}
		h.logger.WithError(err).WithField("strategy", summaryErr.Strategy).Warn("db summary failed")
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "error",
			"message":  summaryErr.Message,
			"strategy": summaryErr.Strategy,
		})
	}
	return c.Status(fiber.StatusOK).JSON(DBSummaryResponse{Status: "success", Summary: res})
}
