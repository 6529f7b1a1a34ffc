package flow

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/app/history"
	"github.com/NeuralTrust/TMSHarness/pkg/app/payload"
	domain "github.com/NeuralTrust/TMSHarness/pkg/domain/errors"
	"github.com/NeuralTrust/TMSHarness/pkg/domain/record"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/repository"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/tms"
	tmsmocks "github.com/NeuralTrust/TMSHarness/pkg/infra/tms/mocks"
	"github.com/NeuralTrust/TMSHarness/pkg/iso20022"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sleepRecorder struct {
	calls int
}

func (s *sleepRecorder) sleep(ctx context.Context, _ time.Duration) error {
	s.calls++
	return ctx.Err()
}

func newRunner(t *testing.T) (Runner, *tmsmocks.Client, record.Repository, *sleepRecorder) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	repo := repository.NewMemoryHistoryRepository()
	client := new(tmsmocks.Client)
	sleeper := &sleepRecorder{}
	r := NewRunner(logger, client, payload.NewGenerator(payload.WithSeed(1)), history.NewService(logger, repo), time.Second, sleeper.sleep)
	return r, client, repo, sleeper
}

func status(code int) tms.Result {
	return tms.Result{StatusCode: code, ElapsedMs: 3}
}

func TestRunner_Run(t *testing.T) {
	tests := []struct {
		name        string
		pain001     int
		pain013     int
		pacs008     int
		pacs002     int
		wantOverall string
		wantSteps   int
		wantSleeps  int
		wantTypes   []string
	}{
		{
			name:    "all accepted",
			pain001: 200, pain013: 200, pacs008: 200, pacs002: 200,
			wantOverall: StatusCompleted,
			wantSteps:   4,
			wantSleeps:  3,
			wantTypes:   []string{"pain.001 (E2E)", "pain.013 (E2E)", "pacs.008 (E2E)", "pacs.002 (ACCC) (E2E)"},
		},
		{
			name:    "pain endpoints missing are skipped",
			pain001: 404, pain013: 404, pacs008: 200, pacs002: 200,
			wantOverall: StatusCompleted,
			wantSteps:   4,
			wantSleeps:  1,
			wantTypes:   []string{"pain.001 (E2E) [SKIPPED]", "pain.013 (E2E) [SKIPPED]", "pacs.008 (E2E)", "pacs.002 (ACCC) (E2E)"},
		},
		{
			name:        "pain.001 server error stops the flow",
			pain001:     500,
			wantOverall: "failed_at_pain001",
			wantSteps:   1,
			wantTypes:   []string{"pain.001 (E2E)"},
		},
		{
			name:    "pain.013 rejected after skipped pain.001",
			pain001: 404, pain013: 400,
			wantOverall: "failed_at_pain013",
			wantSteps:   2,
			wantTypes:   []string{"pain.001 (E2E) [SKIPPED]", "pain.013 (E2E)"},
		},
		{
			name:    "pacs.008 connection failure",
			pain001: 404, pain013: 404, pacs008: 0,
			wantOverall: "failed_at_pacs008",
			wantSteps:   3,
		},
		{
			name:    "pacs.002 refused",
			pain001: 200, pain013: 200, pacs008: 200, pacs002: 422,
			wantOverall: "failed_at_pacs002",
			wantSteps:   4,
			wantSleeps:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, client, repo, sleeper := newRunner(t)
			client.On("SendPain001", mock.Anything, mock.Anything).Return(status(tt.pain001)).Maybe()
			client.On("SendPain013", mock.Anything, mock.Anything).Return(status(tt.pain013)).Maybe()
			client.On("SendPacs008", mock.Anything, mock.Anything).Return(status(tt.pacs008)).Maybe()
			client.On("SendPacs002", mock.Anything, mock.Anything).Return(status(tt.pacs002)).Maybe()

			res, err := r.Run(context.Background(), Request{})

			require.NoError(t, err)
			assert.Equal(t, tt.wantOverall, res.OverallStatus)
			assert.Len(t, res.Steps, tt.wantSteps)
			assert.Equal(t, tt.wantSleeps, sleeper.calls)
			assert.GreaterOrEqual(t, res.TotalTimeMs, 0.0)
			assert.Equal(t, DefaultDebtorAccount, res.DebtorAccount)
			assert.Equal(t, DefaultCreditorAccount, res.CreditorAccount)
			assert.Equal(t, float64(DefaultAmount), res.Amount)

			recs, err := repo.List(context.Background(), 0)
			require.NoError(t, err)
			assert.Len(t, recs, tt.wantSteps)
			if tt.wantTypes != nil {
				types := make([]string, 0, len(recs))
				for _, rec := range recs {
					types = append(types, rec.Type)
				}
				assert.Equal(t, tt.wantTypes, types)
			}
		})
	}
}

func TestRunner_Run_SkippedStepCountsAsSuccess(t *testing.T) {
	r, client, repo, _ := newRunner(t)
	client.On("SendPain001", mock.Anything, mock.Anything).Return(status(404)).Once()
	client.On("SendPain013", mock.Anything, mock.Anything).Return(status(200)).Once()
	client.On("SendPacs008", mock.Anything, mock.Anything).Return(status(200)).Once()
	client.On("SendPacs002", mock.Anything, mock.Anything).Return(status(200)).Once()

	res, err := r.Run(context.Background(), Request{DebtorAccount: "D1", Amount: 42})
	require.NoError(t, err)

	first := res.Steps[0]
	assert.True(t, first.Skipped)
	assert.False(t, first.Success)
	require.NotNil(t, first.Note)
	assert.Equal(t, "Skipped - endpoint not available in TMS", *first.Note)
	assert.Nil(t, res.Steps[1].Note)

	recs, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	assert.True(t, recs[0].Success)
	assert.Equal(t, 404, recs[0].Status)
	assert.Equal(t, 42.0, res.Amount)
	assert.Equal(t, "D1", res.DebtorAccount)
}

func TestRunner_Run_FinalStatusEchoesPacs008(t *testing.T) {
	r, client, _, _ := newRunner(t)
	var sent *iso20022.Pacs008
	client.On("SendPain001", mock.Anything, mock.Anything).Return(status(404))
	client.On("SendPain013", mock.Anything, mock.Anything).Return(status(404))
	client.On("SendPacs008", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*iso20022.Pacs008) }).
		Return(status(200))
	client.On("SendPacs002", mock.Anything, mock.MatchedBy(func(p *iso20022.Pacs002) bool {
		tx := p.FIToFIPmtSts.TxInfAndSts
		return tx.TxSts == iso20022.StatusRejected &&
			tx.OrgnlInstrID == sent.MessageID() &&
			tx.OrgnlEndToEndID == sent.EndToEndID() &&
			len(tx.StsRsnInf) == 1
	})).Return(status(200)).Once()

	res, err := r.Run(context.Background(), Request{FinalStatus: "rjct"})

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, res.OverallStatus)
	assert.Equal(t, "RJCT", res.Steps[3].FinalStatus)
	client.AssertExpectations(t)
}

func TestRunner_Run_InvalidFinalStatus(t *testing.T) {
	r, client, repo, _ := newRunner(t)

	_, err := r.Run(context.Background(), Request{FinalStatus: "PDNG"})

	require.ErrorIs(t, err, domain.ErrInvalidStatusCode)
	client.AssertNotCalled(t, "SendPain001", mock.Anything, mock.Anything)
	n, _ := repo.Count(context.Background())
	assert.Zero(t, n)
}

func TestRunner_Run_CancelledBetweenSteps(t *testing.T) {
	r, client, _, _ := newRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	client.On("SendPain001", mock.Anything, mock.Anything).Run(func(mock.Arguments) { cancel() }).Return(status(200))

	_, err := r.Run(ctx, Request{})

	require.ErrorIs(t, err, context.Canceled)
	client.AssertNotCalled(t, "SendPain013", mock.Anything, mock.Anything)
}

func TestFailedAt(t *testing.T) {
	assert.Equal(t, "failed_at_pain001", FailedAt(StepPain001))
	assert.Equal(t, "failed_at_pacs002", FailedAt(StepPacs002))
}
