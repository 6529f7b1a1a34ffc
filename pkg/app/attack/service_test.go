package attack

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/app/alerts"
	"github.com/NeuralTrust/TMSHarness/pkg/app/history"
	"github.com/NeuralTrust/TMSHarness/pkg/app/payload"
	"github.com/NeuralTrust/TMSHarness/pkg/common"
	"github.com/NeuralTrust/TMSHarness/pkg/domain/alert"
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

type fakeLogs struct {
	mu    sync.Mutex
	logs  map[string]string
	calls []string
	tails []int
}

func (f *fakeLogs) Logs(_ context.Context, container string, tail int, _ time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, container)
	f.tails = append(f.tails, tail)
	return f.logs[container], nil
}

type fixture struct {
	svc    Service
	client *tmsmocks.Client
	repo   record.Repository
	logs   *fakeLogs
	sent   []*iso20022.Pacs008
}

func containerFor(rule string) string {
	return "tazama-rule-" + rule + "-1"
}

func newFixture(t *testing.T, status int) *fixture {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	f := &fixture{
		client: new(tmsmocks.Client),
		repo:   repository.NewMemoryHistoryRepository(),
		logs:   &fakeLogs{logs: map[string]string{}},
	}
	catalog := alert.NewCatalog(alert.Thresholds{VelocityMinTx: 3, StructuringMinTx: 5, StructuringTolerance: 0.2, OutlierMultiplier: 1.5})
	collector := alerts.NewCollector(logger, f.logs, alerts.NewParser(catalog), false)
	f.svc = NewService(logger, f.client, payload.NewGenerator(payload.WithSeed(11)),
		history.NewService(logger, f.repo), collector, catalog, containerFor, time.Second, common.NoSleep)

	f.client.On("SendPacs008", mock.Anything, mock.AnythingOfType("*iso20022.Pacs008")).
		Run(func(args mock.Arguments) { f.sent = append(f.sent, args.Get(1).(*iso20022.Pacs008)) }).
		Return(tms.Result{StatusCode: status, ElapsedMs: 4, Body: "body"})
	f.client.On("SendPacs002", mock.Anything, mock.Anything).Return(tms.Result{StatusCode: 200}).Maybe()
	return f
}

func TestService_Velocity(t *testing.T) {
	f := newFixture(t, 200)
	f.logs.logs["tazama-rule-901-1"] = "rule 901 triggered for debtor"

	res, err := f.svc.Velocity(context.Background(), VelocityRequest{DebtorAccount: "VEL_1", DebtorName: "Velo Tester", Count: 5})

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, res.Status)
	assert.Equal(t, 5, res.TotalSent)
	assert.Equal(t, 5, res.SuccessCount())
	require.Len(t, res.Results, 5)
	for i, it := range res.Results {
		assert.Equal(t, i+1, it.Iteration)
		assert.Equal(t, "VEL_1", it.DebtorAccount)
		require.NotNil(t, it.Pacs002Status)
	}
	for _, msg := range f.sent {
		assert.Equal(t, "VEL_1", msg.DebtorAccount())
	}
	require.Len(t, res.FraudAlerts, 1)
	assert.Equal(t, "901", res.FraudAlerts[0].RuleID)
	assert.Equal(t, []string{"tazama-rule-901-1"}, f.logs.calls)
	assert.Equal(t, []int{50}, f.logs.tails)
	f.client.AssertNumberOfCalls(t, "SendPacs002", 5)

	n, err := f.repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestService_Velocity_Rejected(t *testing.T) {
	f := newFixture(t, 500)

	res, err := f.svc.Velocity(context.Background(), VelocityRequest{DebtorAccount: "VEL_1", DebtorName: "V T", Count: 2})

	require.NoError(t, err)
	assert.Zero(t, res.SuccessCount())
	assert.Equal(t, "body", res.Results[0].Error)
	assert.Nil(t, res.Results[0].Pacs002Status)
	f.client.AssertNotCalled(t, "SendPacs002", mock.Anything, mock.Anything)
}

func TestService_CreditorVelocity_DistinctDebtors(t *testing.T) {
	f := newFixture(t, 200)

	res, err := f.svc.CreditorVelocity(context.Background(), CreditorRequest{
		CreditorAccount: "MULE_1",
		CreditorName:    "Money Mule Target",
		Count:           6,
		Amount:          500000,
		DebtorPrefix:    "BATCH_DEB_",
	})

	require.NoError(t, err)
	assert.Equal(t, 6, res.SuccessCount())
	debtors := map[string]struct{}{}
	for _, msg := range f.sent {
		debtors[msg.DebtorAccount()] = struct{}{}
		assert.Equal(t, 500000.0, msg.Amount())
		assert.Regexp(t, `^BATCH_DEB_\d{6}$`, msg.DebtorAccount())
	}
	assert.Len(t, debtors, 6)
	assert.Equal(t, []string{"tazama-rule-902-1"}, f.logs.calls)
	assert.Equal(t, "MULE_1", res.RequestSummary.CreditorAccount)
}

func TestService_Scenario_Amounts(t *testing.T) {
	tests := []struct {
		name   string
		req    ScenarioRequest
		want   []float64
		target string
	}{
		{
			name:   "structuring uses the default near threshold amount",
			req:    ScenarioRequest{Scenario: ScenarioRule006, Count: 3},
			want:   []float64{9500000, 9500000, 9500000},
			target: "tazama-rule-006-1",
		},
		{
			name:   "high value warms up before the outlier",
			req:    ScenarioRequest{Scenario: ScenarioRule018, Count: 4},
			want:   []float64{50000, 50000, 50000, 900000000000},
			target: "tazama-rule-018-1",
		},
		{
			name:   "custom high value amount",
			req:    ScenarioRequest{Scenario: "RULE_018", Count: 2, Amount: 75000000},
			want:   []float64{50000, 75000000},
			target: "tazama-rule-018-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 200)

			res, err := f.svc.Scenario(context.Background(), tt.req)

			require.NoError(t, err)
			got := make([]float64, 0, len(res.Results))
			for _, it := range res.Results {
				got = append(got, it.Amount)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{tt.target}, f.logs.calls)
			assert.Regexp(t, `^ATTACK_RULE_0\d\d_\d{4}$`, res.RequestSummary.DebtorAccount)
		})
	}
}

func TestService_Validation(t *testing.T) {
	f := newFixture(t, 200)
	ctx := context.Background()

	_, err := f.svc.Velocity(ctx, VelocityRequest{DebtorAccount: "A", DebtorName: "B", Count: 101})
	assert.True(t, domain.IsValidationError(err))

	_, err = f.svc.Velocity(ctx, VelocityRequest{DebtorName: "B", Count: 1})
	assert.True(t, domain.IsValidationError(err))

	_, err = f.svc.CreditorVelocity(ctx, CreditorRequest{CreditorAccount: "A", CreditorName: "B", Count: 1})
	assert.True(t, domain.IsValidationError(err))

	_, err = f.svc.Scenario(ctx, ScenarioRequest{Scenario: "rule_999", Count: 1})
	assert.ErrorIs(t, err, domain.ErrUnknownScenario)

	_, err = f.svc.Scenario(ctx, ScenarioRequest{Scenario: ScenarioRule006, Count: 51})
	assert.True(t, domain.IsValidationError(err))

	_, err = f.svc.FraudSimulation(ctx, SimulationRequest{AccountID: "X", Rule: "777", AttackCount: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidAttackRule)

	f.client.AssertNotCalled(t, "SendPacs008", mock.Anything, mock.Anything)
}

func TestService_FraudSimulation(t *testing.T) {
	f := newFixture(t, 200)
	f.logs.logs["tazama-rule-006-1"] = "rule 006 triggered: structuring\nrule 006 triggered: structuring"

	res, err := f.svc.FraudSimulation(context.Background(), SimulationRequest{AccountID: "SIM_1", Rule: "rule_006", AttackCount: 5})

	require.NoError(t, err)
	assert.Equal(t, "006", res.TargetRule)
	require.Len(t, res.Steps, 3)
	assert.True(t, res.Steps[0].Success)
	assert.True(t, res.Steps[1].Success)
	assert.True(t, res.Steps[2].Success)
	assert.Len(t, res.Transactions, 6)
	assert.Equal(t, 6, res.Transactions[5].Iteration)
	assert.True(t, res.FraudDetected)
	assert.Len(t, res.FraudAlerts, 1)
	assert.Equal(t, FinalStatusDetected, res.Summary.FinalStatus)
	assert.Equal(t, "006 - Structuring / Smurfing", res.Summary.RuleTriggered)
	assert.NotEmpty(t, res.Summary.Recommendation)
	assert.Contains(t, res.Summary.TriggerCondition, "5 transactions")
}

func TestService_FraudSimulation_NothingAccepted(t *testing.T) {
	f := newFixture(t, 0)

	res, err := f.svc.FraudSimulation(context.Background(), SimulationRequest{AccountID: "SIM_1", Rule: "902", AttackCount: 2})

	require.NoError(t, err)
	assert.False(t, res.FraudDetected)
	assert.False(t, res.Steps[1].Success)
	assert.Equal(t, FinalStatusNotSent, res.Summary.FinalStatus)
	assert.Empty(t, res.Summary.RuleTriggered)
}

func TestNormalizeRule(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"901", "901", true},
		{"rule_902", "902", true},
		{"RULE-006", "006", true},
		{" rule018 ", "018", true},
		{"rule_123", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeRule(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
