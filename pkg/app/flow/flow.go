package flow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/app/history"
	"github.com/NeuralTrust/TMSHarness/pkg/app/payload"
	"github.com/NeuralTrust/TMSHarness/pkg/common"
	domain "github.com/NeuralTrust/TMSHarness/pkg/domain/errors"
	"github.com/NeuralTrust/TMSHarness/pkg/domain/record"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/tms"
	"github.com/NeuralTrust/TMSHarness/pkg/iso20022"
	"github.com/sirupsen/logrus"
)

const (
	DefaultDebtorAccount   = "E2E_DEBTOR_001"
	DefaultCreditorAccount = "E2E_CREDITOR_001"
	DefaultAmount          = 1000000

	StatusPending   = "pending"
	StatusCompleted = "completed"

	StepPain001 = "pain.001"
	StepPain013 = "pain.013"
	StepPacs008 = "pacs.008"
	StepPacs002 = "pacs.002"

	skippedNote = "Skipped - endpoint not available in TMS"
)

type Request struct {
	DebtorAccount   string
	CreditorAccount string
	Amount          float64
	FinalStatus     string
}

func (r *Request) applyDefaults() {
	if r.DebtorAccount == "" {
		r.DebtorAccount = DefaultDebtorAccount
	}
	if r.CreditorAccount == "" {
		r.CreditorAccount = DefaultCreditorAccount
	}
	if r.Amount <= 0 {
		r.Amount = DefaultAmount
	}
	if r.FinalStatus == "" {
		r.FinalStatus = string(iso20022.StatusAccepted)
	}
}

type Step struct {
	Step           int     `json:"step"`
	Type           string  `json:"type"`
	Name           string  `json:"name"`
	Status         int     `json:"status"`
	Success        bool    `json:"success"`
	Skipped        bool    `json:"skipped"`
	ResponseTimeMs float64 `json:"response_time_ms"`
	MessageID      string  `json:"message_id,omitempty"`
	Note           *string `json:"note"`
	FinalStatus    string  `json:"final_status,omitempty"`
}

type Result struct {
	OverallStatus   string  `json:"overall_status"`
	Steps           []Step  `json:"steps"`
	TotalTimeMs     float64 `json:"total_time_ms"`
	DebtorAccount   string  `json:"debtor_account"`
	CreditorAccount string  `json:"creditor_account"`
	Amount          float64 `json:"amount"`
}

// FailedAt names the overall status of a flow stopped at messageType.
func FailedAt(messageType string) string {
	return "failed_at_" + strings.ReplaceAll(messageType, ".", "")
}

//go:generate mockery --name=Runner --dir=. --output=./mocks --filename=flow_runner_mock.go --case=underscore --with-expecter
type Runner interface {
	Run(ctx context.Context, req Request) (*Result, error)
}

type runner struct {
	logger    *logrus.Logger
	client    tms.Client
	generator *payload.Generator
	history   history.Service
	stepDelay time.Duration
	sleep     common.SleepFunc
}

func NewRunner(
	logger *logrus.Logger,
	client tms.Client,
	generator *payload.Generator,
	historySvc history.Service,
	stepDelay time.Duration,
	sleep common.SleepFunc,
) Runner {
	if sleep == nil {
		sleep = common.Sleep
	}
	return &runner{
		logger:    logger,
		client:    client,
		generator: generator,
		history:   historySvc,
		stepDelay: stepDelay,
		sleep:     sleep,
	}
}

// Run walks pain.001, pain.013, pacs.008 and pacs.002 in order. A pain step
// answered with 404 is skipped; any other non-200 answer stops the flow.
func (r *runner) Run(ctx context.Context, req Request) (*Result, error) {
	req.applyDefaults()
	final, ok := iso20022.ParseStatusCode(req.FinalStatus)
	if !ok {
		return nil, fmt.Errorf("%w: must be one of %s", domain.ErrInvalidStatusCode, strings.Join(iso20022.ValidStatusCodeNames(), ", "))
	}

	start := time.Now()
	res := &Result{
		OverallStatus:   StatusPending,
		Steps:           make([]Step, 0, 4),
		DebtorAccount:   req.DebtorAccount,
		CreditorAccount: req.CreditorAccount,
		Amount:          req.Amount,
	}
	finish := func(status string) (*Result, error) {
		res.OverallStatus = status
		res.TotalTimeMs = float64(time.Since(start).Microseconds()) / 1000
		r.logger.WithFields(logrus.Fields{
			"debtor":         req.DebtorAccount,
			"creditor":       req.CreditorAccount,
			"overall_status": status,
			"steps":          len(res.Steps),
		}).Info("e2e flow finished")
		return res, nil
	}
	parties := payload.Parties{
		DebtorAccount:   req.DebtorAccount,
		CreditorAccount: req.CreditorAccount,
		Amount:          req.Amount,
	}

	pain001 := r.generator.Pain001(parties)
	if stop, err := r.painStep(ctx, res, 1, StepPain001, "Customer Credit Transfer Initiation",
		pain001.MessageID(), r.client.SendPain001(ctx, pain001)); stop || err != nil {
		if err != nil {
			return nil, err
		}
		return finish(FailedAt(StepPain001))
	}

	pain013 := r.generator.Pain013(parties)
	if stop, err := r.painStep(ctx, res, 2, StepPain013, "Creditor Payment Activation Request",
		pain013.MessageID(), r.client.SendPain013(ctx, pain013)); stop || err != nil {
		if err != nil {
			return nil, err
		}
		return finish(FailedAt(StepPain013))
	}

	pacs008 := r.generator.Pacs008(parties)
	res008 := r.client.SendPacs008(ctx, pacs008)
	r.appendStep(ctx, res, Step{
		Step:           3,
		Type:           StepPacs008,
		Name:           "FI to FI Customer Credit Transfer",
		Status:         res008.StatusCode,
		Success:        res008.OK(),
		ResponseTimeMs: res008.ElapsedMs,
		MessageID:      pacs008.MessageID(),
	}, StepPacs008+" (E2E)")
	if !res008.OK() {
		return finish(FailedAt(StepPacs008))
	}
	if err := r.sleep(ctx, r.stepDelay); err != nil {
		return nil, err
	}

	pacs002 := r.generator.Pacs002(pacs008.MessageID(), pacs008.EndToEndID(), final)
	res002 := r.client.SendPacs002(ctx, pacs002)
	r.appendStep(ctx, res, Step{
		Step:           4,
		Type:           StepPacs002,
		Name:           "Payment Status Report",
		Status:         res002.StatusCode,
		Success:        res002.OK(),
		ResponseTimeMs: res002.ElapsedMs,
		MessageID:      pacs008.MessageID(),
		FinalStatus:    final.String(),
	}, fmt.Sprintf("%s (%s) (E2E)", StepPacs002, final))
	if !res002.OK() {
		return finish(FailedAt(StepPacs002))
	}
	return finish(StatusCompleted)
}

// painStep records an optional pain step and reports whether the flow must stop.
func (r *runner) painStep(
	ctx context.Context,
	res *Result,
	index int,
	messageType, name, messageID string,
	out tms.Result,
) (bool, error) {
	skipped := out.NotFound()
	step := Step{
		Step:           index,
		Type:           messageType,
		Name:           name,
		Status:         out.StatusCode,
		Success:        out.OK(),
		Skipped:        skipped,
		ResponseTimeMs: out.ElapsedMs,
		MessageID:      messageID,
	}
	recordType := messageType + " (E2E)"
	if skipped {
		note := skippedNote
		step.Note = &note
		recordType += " [SKIPPED]"
	}
	r.appendStep(ctx, res, step, recordType)

	switch {
	case skipped:
		return false, nil
	case !out.OK():
		return true, nil
	}
	return false, r.sleep(ctx, r.stepDelay)
}

func (r *runner) appendStep(ctx context.Context, res *Result, step Step, recordType string) {
	res.Steps = append(res.Steps, step)
	r.history.Record(ctx, record.New(
		r.history.Now(),
		recordType,
		step.Status,
		step.ResponseTimeMs,
		step.Success || step.Skipped,
		step.MessageID,
	))
}
