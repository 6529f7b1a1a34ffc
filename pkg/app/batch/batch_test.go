package batch

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/app/attack"
	attackmocks "github.com/NeuralTrust/TMSHarness/pkg/app/attack/mocks"
	"github.com/NeuralTrust/TMSHarness/pkg/app/history"
	"github.com/NeuralTrust/TMSHarness/pkg/app/payload"
	"github.com/NeuralTrust/TMSHarness/pkg/app/transaction"
	txmocks "github.com/NeuralTrust/TMSHarness/pkg/app/transaction/mocks"
	"github.com/NeuralTrust/TMSHarness/pkg/domain/record"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/repository"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var batchClock = time.Date(2025, 6, 1, 14, 3, 9, 0, time.UTC)

func newRunner(t *testing.T) (Runner, *txmocks.Service, *attackmocks.Service, record.Repository) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	repo := repository.NewMemoryHistoryRepository()
	hist := history.NewService(logger, repo, history.WithClock(func() time.Time { return batchClock }))
	tx := new(txmocks.Service)
	atk := new(attackmocks.Service)
	r := NewRunner(logger, tx, atk, hist, payload.NewGenerator(payload.WithSeed(5)), Sizes{Velocity: 8, Structuring: 8, HighValue: 6})
	return r, tx, atk, repo
}

func attackResult(statuses ...int) *attack.Result {
	res := &attack.Result{Status: attack.StatusCompleted, TotalSent: len(statuses)}
	for i, s := range statuses {
		res.Results = append(res.Results, attack.IterationResult{Iteration: i + 1, Status: s})
	}
	return res
}

func TestParseScenarios(t *testing.T) {
	assert.Equal(t, []string{"quick_accc", "rule_901", ""}, ParseScenarios(" quick_accc ,rule_901, "))
	assert.Equal(t, []string{"rule_006"}, ParseScenarios("rule_006"))
}

func TestRunner_Run_OneEntryPerScenario(t *testing.T) {
	r, tx, atk, repo := newRunner(t)

	tx.On("QuickStatus", mock.Anything, "ACCC", payload.Parties{}).
		Return(&transaction.QuickStatusResult{Status: "success", HTTPCode: 200, ResponseTimeMs: 12}, nil).Once()
	tx.On("QuickStatus", mock.Anything, "RJCT", payload.Parties{}).
		Return(&transaction.QuickStatusResult{Status: "error", HTTPCode: 500, Message: "pacs.008 failed"}, nil).Once()
	atk.On("Velocity", mock.Anything, mock.MatchedBy(func(req attack.VelocityRequest) bool {
		return req.Count == 8 && req.Amount == 500000 && req.DebtorName == "Batch Tester" &&
			len(req.DebtorAccount) == len("BATCH_VEL_0000")
	})).Return(attackResult(200, 200, 500), nil).Twice()
	atk.On("CreditorVelocity", mock.Anything, mock.MatchedBy(func(req attack.CreditorRequest) bool {
		return req.CreditorName == "Money Mule Target" && req.DebtorPrefix == "BATCH_DEB_"
	})).Return(attackResult(500, 500), nil).Once()
	atk.On("Scenario", mock.Anything, mock.MatchedBy(func(req attack.ScenarioRequest) bool {
		return req.Scenario == "rule_018" && req.Count == 6 && req.DebtorName == "Batch Actor"
	})).Return(attackResult(200), nil).Once()
	atk.On("Scenario", mock.Anything, mock.MatchedBy(func(req attack.ScenarioRequest) bool {
		return req.Scenario == "rule_006" && req.Count == 8
	})).Return(nil, errors.New("boom")).Once()

	names := []string{"quick_accc", "quick_rjct", "quick_pdng", "rule_901", "velocity", "rule_902", "rule_018", "rule_006", "nope"}
	res, err := r.Run(context.Background(), names)

	require.NoError(t, err)
	require.Len(t, res.Results, len(names))
	want := []string{StatusSuccess, StatusError, StatusError, StatusSuccess, StatusSuccess, StatusError, StatusSuccess, StatusError, StatusError}
	for i, sr := range res.Results {
		assert.Equal(t, names[i], sr.Scenario)
		assert.Equal(t, want[i], sr.Status, names[i])
	}
	assert.Equal(t, "Invalid status code: PDNG", res.Results[2].Details["message"])
	assert.Equal(t, "Unknown scenario: nope", res.Results[8].Details["message"])
	assert.Equal(t, "boom", res.Results[7].Details["message"])
	assert.Equal(t, 2, res.Results[3].Details["success_count"])
	assert.Equal(t, "018 - High Value", res.Results[6].Details["rule"])
	assert.Equal(t, 4, res.SuccessCount)
	assert.Equal(t, 5, res.FailureCount)
	assert.Equal(t, StatusCompleted, res.Status)

	recs, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Batch Test (9 scenarios)", recs[0].Type)
	assert.Equal(t, 500, recs[0].Status)
	assert.False(t, recs[0].Success)
	assert.Equal(t, "batch_140309", recs[0].MessageID)
	tx.AssertExpectations(t)
	atk.AssertExpectations(t)
}

func TestRunner_Run_AllSucceed(t *testing.T) {
	r, tx, _, repo := newRunner(t)
	tx.On("QuickStatus", mock.Anything, "ACSC", payload.Parties{}).
		Return(&transaction.QuickStatusResult{Status: "success", HTTPCode: 200}, nil)

	res, err := r.Run(context.Background(), []string{"quick_acsc"})

	require.NoError(t, err)
	assert.Equal(t, 1, res.SuccessCount)
	assert.Zero(t, res.FailureCount)
	recs, _ := repo.List(context.Background(), 0)
	assert.Equal(t, 200, recs[0].Status)
	assert.True(t, recs[0].Success)
}
