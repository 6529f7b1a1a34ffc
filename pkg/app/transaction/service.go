package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/app/alerts"
	"github.com/NeuralTrust/TMSHarness/pkg/app/history"
	"github.com/NeuralTrust/TMSHarness/pkg/app/payload"
	"github.com/NeuralTrust/TMSHarness/pkg/common"
	"github.com/NeuralTrust/TMSHarness/pkg/config"
	"github.com/NeuralTrust/TMSHarness/pkg/domain/alert"
	domain "github.com/NeuralTrust/TMSHarness/pkg/domain/errors"
	"github.com/NeuralTrust/TMSHarness/pkg/domain/record"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/tms"
	"github.com/NeuralTrust/TMSHarness/pkg/iso20022"
	"github.com/sirupsen/logrus"
)

const (
	alertTail  = 10
	alertSince = 5 * time.Second

	RecordTypePacs008 = "pacs.008"
	RecordTypePain001 = "pain.001"
	RecordTypePain013 = "pain.013"
	RecordTypeFull    = "Full Transaction"

	OverallSuccess = "success"
	OverallPartial = "partial"
	OverallFailed  = "failed"
)

type Pacs008Result struct {
	Status         string               `json:"status"`
	HTTPCode       int                  `json:"http_code"`
	Pacs002Status  *int                 `json:"pacs002_status"`
	ResponseTimeMs float64              `json:"response_time_ms"`
	PayloadSent    *iso20022.Pacs008    `json:"payload_sent"`
	TMSResponse    interface{}          `json:"tms_response"`
	TestRecord     record.TestRecord    `json:"test_record"`
	FraudAlerts    []alert.FraudAlert   `json:"fraud_alerts"`
	RequestSummary alert.RequestContext `json:"request_summary"`
}

type QuickStatusResult struct {
	Status         string             `json:"status"`
	HTTPCode       int                `json:"http_code"`
	ResponseTimeMs float64            `json:"response_time_ms,omitempty"`
	PayloadSent    *iso20022.Pacs002  `json:"payload_sent,omitempty"`
	TMSResponse    interface{}        `json:"tms_response,omitempty"`
	TestRecord     *record.TestRecord `json:"test_record,omitempty"`
	Message        string             `json:"message,omitempty"`
}

func (r *QuickStatusResult) Success() bool {
	return r.Status == "success"
}

type StepOutcome struct {
	Status   int         `json:"status"`
	Success  bool        `json:"success"`
	Response interface{} `json:"response"`
}

type FullTransactionResult struct {
	Pacs008       *StepOutcome `json:"pacs008"`
	Pacs002       *StepOutcome `json:"pacs002"`
	OverallStatus string       `json:"overall_status"`
}

type PainResult struct {
	Status         string      `json:"status"`
	HTTPCode       int         `json:"http_code"`
	ResponseTimeMs float64     `json:"response_time_ms"`
	MessageID      string      `json:"message_id"`
	EndToEndID     string      `json:"end_to_end_id"`
	PayloadSent    interface{} `json:"payload_sent"`
	TMSResponse    interface{} `json:"tms_response"`
}

//go:generate mockery --name=Service --dir=. --output=./mocks --filename=transaction_service_mock.go --case=underscore --with-expecter
type Service interface {
	Pacs008(ctx context.Context, parties payload.Parties) (*Pacs008Result, error)
	QuickStatus(ctx context.Context, status string, parties payload.Parties) (*QuickStatusResult, error)
	FullTransaction(ctx context.Context, parties payload.Parties) (*FullTransactionResult, error)
	Pain001(ctx context.Context, parties payload.Parties) (*PainResult, error)
	Pain013(ctx context.Context, parties payload.Parties) (*PainResult, error)
}

type service struct {
	logger     *logrus.Logger
	client     tms.Client
	generator  *payload.Generator
	history    history.Service
	collector  *alerts.Collector
	containers []string
	stepDelay  time.Duration
	alertDelay time.Duration
	sleep      common.SleepFunc
}

func NewService(
	logger *logrus.Logger,
	client tms.Client,
	generator *payload.Generator,
	historySvc history.Service,
	collector *alerts.Collector,
	cfg *config.Config,
	sleep common.SleepFunc,
) Service {
	if sleep == nil {
		sleep = common.Sleep
	}
	return &service{
		logger:     logger,
		client:     client,
		generator:  generator,
		history:    historySvc,
		collector:  collector,
		containers: cfg.RuleContainerNames(),
		stepDelay:  cfg.Flow.StepDelay,
		alertDelay: cfg.Flow.AlertDelay,
		sleep:      sleep,
	}
}

func statusWord(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}

func (s *service) Pacs008(ctx context.Context, parties payload.Parties) (*Pacs008Result, error) {
	conf := SendConfirmed(ctx, s.client, s.generator, parties, iso20022.StatusAccepted)
	msg := conf.Pacs008
	res := conf.Pacs008Result

	rec := record.New(s.history.Now(), RecordTypePacs008, res.StatusCode, res.ElapsedMs, res.OK(), msg.MessageID())
	rec.EndToEndID = msg.EndToEndID()
	rec.DebtorAccount = msg.DebtorAccount()
	rec.Amount = msg.Amount()
	s.history.Record(ctx, rec)

	if err := s.sleep(ctx, s.alertDelay); err != nil {
		return nil, err
	}

	summary := alert.RequestContext{
		Scenario:             "pacs.008 + pacs.002 Transaction",
		DebtorAccount:        msg.DebtorAccount(),
		DebtorName:           msg.DebtorName(),
		AmountPerTransaction: msg.Amount(),
		TotalTransactions:    1,
	}
	found := s.collector.Collect(ctx, alerts.Query{
		Containers: s.containers,
		Tail:       alertTail,
		Since:      alertSince,
		Request:    &summary,
	})

	s.logger.WithFields(logrus.Fields{
		"message_id":     msg.MessageID(),
		"end_to_end_id":  msg.EndToEndID(),
		"status":         res.StatusCode,
		"pacs002_status": conf.Pacs002Status(),
		"alerts":         len(found),
	}).Info("pacs.008 test completed")

	return &Pacs008Result{
		Status:         statusWord(res.OK()),
		HTTPCode:       res.StatusCode,
		Pacs002Status:  conf.Pacs002Status(),
		ResponseTimeMs: res.ElapsedMs,
		PayloadSent:    msg,
		TMSResponse:    res.Body,
		TestRecord:     rec,
		FraudAlerts:    alert.DedupeByRule(found),
		RequestSummary: summary,
	}, nil
}

func (s *service) QuickStatus(ctx context.Context, status string, parties payload.Parties) (*QuickStatusResult, error) {
	code, ok := iso20022.ParseStatusCode(status)
	if !ok {
		return nil, fmt.Errorf("%w: must be one of %s", domain.ErrInvalidStatusCode, strings.Join(iso20022.ValidStatusCodeNames(), ", "))
	}

	start := time.Now()
	msg := s.generator.Pacs008(parties)
	res008 := s.client.SendPacs008(ctx, msg)
	if !res008.OK() {
		return &QuickStatusResult{
			Status:   "error",
			HTTPCode: res008.StatusCode,
			Message:  "pacs.008 failed",
		}, nil
	}

	if err := s.sleep(ctx, s.stepDelay); err != nil {
		return nil, err
	}

	pacs002 := s.generator.Pacs002(msg.MessageID(), msg.EndToEndID(), code)
	res002 := s.client.SendPacs002(ctx, pacs002)
	total := elapsedMs(start)

	rec := record.New(s.history.Now(), QuickRecordType(code), res002.StatusCode, total, res002.OK(), msg.MessageID())
	s.history.Record(ctx, rec)

	return &QuickStatusResult{
		Status:         statusWord(res002.OK()),
		HTTPCode:       res002.StatusCode,
		ResponseTimeMs: total,
		PayloadSent:    pacs002,
		TMSResponse:    res002.Body,
		TestRecord:     &rec,
	}, nil
}

func QuickRecordType(code iso20022.StatusCode) string {
	return fmt.Sprintf("Quick Test (%s)", code)
}

func (s *service) FullTransaction(ctx context.Context, parties payload.Parties) (*FullTransactionResult, error) {
	start := time.Now()
	msg := s.generator.Pacs008(parties)
	res008 := s.client.SendPacs008(ctx, msg)

	out := &FullTransactionResult{
		Pacs008: &StepOutcome{Status: res008.StatusCode, Success: res008.OK(), Response: res008.Body},
	}
	final := res008.StatusCode
	if !res008.OK() {
		out.OverallStatus = OverallFailed
	} else {
		if err := s.sleep(ctx, s.alertDelay); err != nil {
			return nil, err
		}
		res002 := s.client.SendPacs002(ctx, s.generator.Pacs002(msg.MessageID(), msg.EndToEndID(), iso20022.StatusAccepted))
		out.Pacs002 = &StepOutcome{Status: res002.StatusCode, Success: res002.OK(), Response: res002.Body}
		final = res002.StatusCode
		out.OverallStatus = OverallPartial
		if res002.OK() {
			out.OverallStatus = OverallSuccess
		}
	}

	rec := record.New(s.history.Now(), RecordTypeFull, final, elapsedMs(start), out.OverallStatus == OverallSuccess, msg.MessageID())
	rec.EndToEndID = msg.EndToEndID()
	rec.DebtorAccount = msg.DebtorAccount()
	rec.Amount = msg.Amount()
	s.history.Record(ctx, rec)
	return out, nil
}

func (s *service) Pain001(ctx context.Context, parties payload.Parties) (*PainResult, error) {
	msg := s.generator.Pain001(parties)
	res := s.client.SendPain001(ctx, msg)
	return s.painResult(ctx, RecordTypePain001, msg.MessageID(), msg.EndToEndID(), msg, res), nil
}

func (s *service) Pain013(ctx context.Context, parties payload.Parties) (*PainResult, error) {
	msg := s.generator.Pain013(parties)
	res := s.client.SendPain013(ctx, msg)
	return s.painResult(ctx, RecordTypePain013, msg.MessageID(), msg.EndToEndID(), msg, res), nil
}

func (s *service) painResult(
	ctx context.Context,
	recordType, messageID, endToEndID string,
	sent interface{},
	res tms.Result,
) *PainResult {
	rec := record.New(s.history.Now(), recordType, res.StatusCode, res.ElapsedMs, res.OK(), messageID)
	rec.EndToEndID = endToEndID
	s.history.Record(ctx, rec)

	return &PainResult{
		Status:         statusWord(res.OK()),
		HTTPCode:       res.StatusCode,
		ResponseTimeMs: res.ElapsedMs,
		MessageID:      messageID,
		EndToEndID:     endToEndID,
		PayloadSent:    sent,
		TMSResponse:    res.Body,
	}
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
