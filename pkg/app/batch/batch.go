package batch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/app/attack"
	"github.com/NeuralTrust/TMSHarness/pkg/app/history"
	"github.com/NeuralTrust/TMSHarness/pkg/app/payload"
	"github.com/NeuralTrust/TMSHarness/pkg/app/transaction"
	"github.com/NeuralTrust/TMSHarness/pkg/domain/record"
	"github.com/NeuralTrust/TMSHarness/pkg/iso20022"
	"github.com/sirupsen/logrus"
)

const (
	ScenarioVelocity = "velocity"
	quickPrefix      = "quick_"

	StatusSuccess   = "success"
	StatusError     = "error"
	StatusCompleted = "completed"

	batchAmount = 500000
)

// Available lists the scenario names a batch accepts.
var Available = []string{"quick_accc", "quick_acsc", "quick_rjct", "rule_901", "rule_902", "rule_006", "rule_018"}

type Sizes struct {
	Velocity    int
	Structuring int
	HighValue   int
}

type ScenarioResult struct {
	Scenario string                 `json:"scenario"`
	Status   string                 `json:"status"`
	Details  map[string]interface{} `json:"details"`
}

type Result struct {
	Status         string           `json:"status"`
	TotalScenarios int              `json:"total_scenarios"`
	SuccessCount   int              `json:"success_count"`
	FailureCount   int              `json:"failure_count"`
	TotalTimeMs    float64          `json:"total_time_ms"`
	Results        []ScenarioResult `json:"results"`
}

// ParseScenarios splits a comma separated list and trims every name.
func ParseScenarios(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

//go:generate mockery --name=Runner --dir=. --output=./mocks --filename=batch_runner_mock.go --case=underscore --with-expecter
type Runner interface {
	Run(ctx context.Context, scenarios []string) (*Result, error)
}

type runner struct {
	logger       *logrus.Logger
	transactions transaction.Service
	attacks      attack.Service
	history      history.Service
	generator    *payload.Generator
	sizes        Sizes
}

func NewRunner(
	logger *logrus.Logger,
	transactions transaction.Service,
	attacks attack.Service,
	historySvc history.Service,
	generator *payload.Generator,
	sizes Sizes,
) Runner {
	return &runner{
		logger:       logger,
		transactions: transactions,
		attacks:      attacks,
		history:      historySvc,
		generator:    generator,
		sizes:        sizes,
	}
}

// Run executes every scenario in order. One failing scenario never stops
// the others, and the result has exactly one entry per name.
func (r *runner) Run(ctx context.Context, scenarios []string) (*Result, error) {
	start := r.history.Now()
	began := time.Now()
	results := make([]ScenarioResult, 0, len(scenarios))
	succeeded := 0

	for _, name := range scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res := r.runOne(ctx, name)
		if res.Status == StatusSuccess {
			succeeded++
		}
		results = append(results, res)
	}

	total := float64(time.Since(began).Microseconds()) / 1000
	allOK := succeeded == len(scenarios)
	status := 500
	if allOK {
		status = 200
	}
	r.history.Record(ctx, record.New(
		start,
		fmt.Sprintf("Batch Test (%d scenarios)", len(scenarios)),
		status,
		total,
		allOK,
		"batch_"+start.Format("150405"),
	))

	r.logger.WithFields(logrus.Fields{
		"scenarios": len(scenarios),
		"succeeded": succeeded,
	}).Info("batch finished")

	return &Result{
		Status:         StatusCompleted,
		TotalScenarios: len(scenarios),
		SuccessCount:   succeeded,
		FailureCount:   len(scenarios) - succeeded,
		TotalTimeMs:    total,
		Results:        results,
	}, nil
}

func (r *runner) runOne(ctx context.Context, name string) ScenarioResult {
	out := ScenarioResult{Scenario: name, Status: StatusError}
	fail := func(msg string) ScenarioResult {
		out.Details = map[string]interface{}{"message": msg}
		return out
	}

	switch {
	case strings.HasPrefix(name, quickPrefix):
		code := strings.ToUpper(strings.TrimPrefix(name, quickPrefix))
		if !iso20022.IsValidStatusCode(code) {
			return fail("Invalid status code: " + code)
		}
		res, err := r.transactions.QuickStatus(ctx, code, payload.Parties{})
		if err != nil {
			return fail(err.Error())
		}
		if res.Success() {
			out.Status = StatusSuccess
		}
		out.Details = map[string]interface{}{
			"status_code":      code,
			"http_code":        res.HTTPCode,
			"response_time_ms": res.ResponseTimeMs,
		}
		return out

	case name == ScenarioVelocity || name == attack.ScenarioRule901:
		res, err := r.attacks.Velocity(ctx, attack.VelocityRequest{
			DebtorAccount: "BATCH_VEL_" + r.generator.Digits(4),
			DebtorName:    "Batch Tester",
			Count:         r.sizes.Velocity,
			Amount:        batchAmount,
		})
		return r.ruleOutcome(out, "901 - Velocity", res, err)

	case name == attack.ScenarioRule902:
		res, err := r.attacks.CreditorVelocity(ctx, attack.CreditorRequest{
			CreditorAccount: "MULE_TARGET_" + r.generator.Digits(4),
			CreditorName:    "Money Mule Target",
			Count:           r.sizes.Velocity,
			Amount:          batchAmount,
			DebtorPrefix:    "BATCH_DEB_",
		})
		return r.ruleOutcome(out, "902 - Money Mule", res, err)

	case name == attack.ScenarioRule006 || name == attack.ScenarioRule018:
		label, count := "006 - Structuring", r.sizes.Structuring
		if name == attack.ScenarioRule018 {
			label, count = "018 - High Value", r.sizes.HighValue
		}
		res, err := r.attacks.Scenario(ctx, attack.ScenarioRequest{
			Scenario:      name,
			Count:         count,
			DebtorAccount: fmt.Sprintf("BATCH_%s_%s", strings.ToUpper(name), r.generator.Digits(4)),
			DebtorName:    "Batch Actor",
		})
		return r.ruleOutcome(out, label, res, err)
	}
	return fail("Unknown scenario: " + name)
}

func (r *runner) ruleOutcome(out ScenarioResult, label string, res *attack.Result, err error) ScenarioResult {
	if err != nil {
		out.Details = map[string]interface{}{"message": err.Error()}
		return out
	}
	ok := res.SuccessCount()
	if ok > 0 {
		out.Status = StatusSuccess
	}
	out.Details = map[string]interface{}{
		"rule":          label,
		"total_sent":    res.TotalSent,
		"success_count": ok,
		"fraud_alerts":  len(res.FraudAlerts),
	}
	return out
}
