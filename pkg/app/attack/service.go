package attack

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/app/alerts"
	"github.com/NeuralTrust/TMSHarness/pkg/app/history"
	"github.com/NeuralTrust/TMSHarness/pkg/app/payload"
	"github.com/NeuralTrust/TMSHarness/pkg/app/transaction"
	"github.com/NeuralTrust/TMSHarness/pkg/common"
	"github.com/NeuralTrust/TMSHarness/pkg/domain/alert"
	"github.com/NeuralTrust/TMSHarness/pkg/domain/record"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/tms"
	"github.com/NeuralTrust/TMSHarness/pkg/iso20022"
	"github.com/sirupsen/logrus"
)

const (
	alertTail = 50

	StatusCompleted = "completed"

	defaultDebtorPrefix = "RAND_DEB_"
)

type IterationResult struct {
	Iteration      int     `json:"iteration"`
	Status         int     `json:"status"`
	ResponseTimeMs float64 `json:"response_time_ms"`
	Amount         float64 `json:"amount"`
	DebtorAccount  string  `json:"debtor_account,omitempty"`
	Pacs002Status  *int    `json:"pacs002_status,omitempty"`
	Error          string  `json:"error,omitempty"`
}

type Result struct {
	Status         string               `json:"status"`
	Rule           string               `json:"rule"`
	TotalSent      int                  `json:"total_sent"`
	Results        []IterationResult    `json:"results"`
	FraudAlerts    []alert.FraudAlert   `json:"fraud_alerts"`
	RequestSummary alert.RequestContext `json:"request_summary"`
}

// SuccessCount is the number of iterations the TMS answered with 200.
func (r *Result) SuccessCount() int {
	return countOK(r.Results)
}

//go:generate mockery --name=Service --dir=. --output=./mocks --filename=attack_service_mock.go --case=underscore --with-expecter
type Service interface {
	Velocity(ctx context.Context, req VelocityRequest) (*Result, error)
	CreditorVelocity(ctx context.Context, req CreditorRequest) (*Result, error)
	Scenario(ctx context.Context, req ScenarioRequest) (*Result, error)
	FraudSimulation(ctx context.Context, req SimulationRequest) (*SimulationResult, error)
}

type service struct {
	logger     *logrus.Logger
	client     tms.Client
	generator  *payload.Generator
	history    history.Service
	collector  *alerts.Collector
	catalog    alert.Catalog
	container  func(rule string) string
	alertDelay time.Duration
	sleep      common.SleepFunc
}

func NewService(
	logger *logrus.Logger,
	client tms.Client,
	generator *payload.Generator,
	historySvc history.Service,
	collector *alerts.Collector,
	catalog alert.Catalog,
	container func(rule string) string,
	alertDelay time.Duration,
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
		catalog:    catalog,
		container:  container,
		alertDelay: alertDelay,
		sleep:      sleep,
	}
}

// plan is one burst of pacs.008 + pacs.002 pairs aimed at a single rule.
type plan struct {
	rule    string
	count   int
	parties func(i int) payload.Parties
	summary alert.RequestContext
}

func (s *service) Velocity(ctx context.Context, req VelocityRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.run(ctx, s.velocityPlan(req.DebtorAccount, req.DebtorName, req.Count, req.Amount))
}

func (s *service) CreditorVelocity(ctx context.Context, req CreditorRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.run(ctx, s.creditorPlan(req))
}

func (s *service) Scenario(ctx context.Context, req ScenarioRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	rule, _ := ScenarioRule(req.Scenario)
	debtor := req.DebtorAccount
	if debtor == "" {
		debtor = fmt.Sprintf("ATTACK_%s_%s", strings.ToUpper(req.Scenario), s.generator.Digits(4))
	}
	name := req.DebtorName
	if name == "" {
		name = "Attack Actor"
	}
	p, err := s.rulePlan(rule, debtor, name, req.Count, req.Amount)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, p)
}

func (s *service) rulePlan(rule, account, name string, count int, amount float64) (plan, error) {
	switch rule {
	case alert.RuleDebtorVelocity:
		return s.velocityPlan(account, name, count, amount), nil
	case alert.RuleCreditorVelocity:
		if amount <= 0 {
			amount = DefaultCreditorAmount
		}
		return s.creditorPlan(CreditorRequest{
			CreditorAccount: account,
			CreditorName:    name,
			Count:           count,
			Amount:          amount,
		}), nil
	case alert.RuleStructuring:
		return s.structuringPlan(account, name, count, amount), nil
	case alert.RuleHighValue:
		return s.highValuePlan(account, name, count, amount), nil
	}
	return plan{}, fmt.Errorf("no attack plan for rule %s", rule)
}

func (s *service) velocityPlan(debtor, name string, count int, amount float64) plan {
	return plan{
		rule:  alert.RuleDebtorVelocity,
		count: count,
		parties: func(int) payload.Parties {
			return payload.Parties{DebtorAccount: debtor, DebtorName: name, Amount: amount}
		},
		summary: alert.RequestContext{
			Scenario:             "Rule 901 - Debtor Velocity",
			DebtorAccount:        debtor,
			DebtorName:           name,
			AmountPerTransaction: amount,
			TotalTransactions:    count,
		},
	}
}

func (s *service) creditorPlan(req CreditorRequest) plan {
	prefix := req.DebtorPrefix
	if prefix == "" {
		prefix = defaultDebtorPrefix
	}
	return plan{
		rule:  alert.RuleCreditorVelocity,
		count: req.Count,
		parties: func(int) payload.Parties {
			suffix := s.generator.Digits(6)
			return payload.Parties{
				DebtorAccount:   prefix + suffix,
				DebtorName:      "Random Sender " + suffix,
				CreditorAccount: req.CreditorAccount,
				CreditorName:    req.CreditorName,
				Amount:          req.Amount,
			}
		},
		summary: alert.RequestContext{
			Scenario:             "Rule 902 - Money Mule",
			CreditorAccount:      req.CreditorAccount,
			AmountPerTransaction: req.Amount,
			TotalTransactions:    req.Count,
		},
	}
}

func (s *service) structuringPlan(debtor, name string, count int, amount float64) plan {
	if amount <= 0 {
		amount = DefaultStructuringAmount
	}
	return plan{
		rule:  alert.RuleStructuring,
		count: count,
		parties: func(int) payload.Parties {
			return payload.Parties{DebtorAccount: debtor, DebtorName: name, Amount: amount}
		},
		summary: alert.RequestContext{
			Scenario:             "Rule 006 - Structuring",
			DebtorAccount:        debtor,
			DebtorName:           name,
			AmountPerTransaction: amount,
			AmountRequested:      amount * float64(count),
			TotalTransactions:    count,
		},
	}
}

// highValuePlan builds a history of small transfers followed by one outlier.
func (s *service) highValuePlan(debtor, name string, count int, amount float64) plan {
	if amount <= 0 {
		amount = DefaultHighValueAmount
	}
	return plan{
		rule:  alert.RuleHighValue,
		count: count,
		parties: func(i int) payload.Parties {
			amt := float64(HighValueWarmupAmount)
			if i == count-1 {
				amt = amount
			}
			return payload.Parties{DebtorAccount: debtor, DebtorName: name, Amount: amt}
		},
		summary: alert.RequestContext{
			Scenario:             "Rule 018 - High Value Transfer",
			DebtorAccount:        debtor,
			DebtorName:           name,
			AmountPerTransaction: HighValueWarmupAmount,
			AmountRequested:      amount,
			TotalTransactions:    count,
		},
	}
}

func recordType(rule string) string {
	return fmt.Sprintf("Attack (rule %s)", rule)
}

func (s *service) run(ctx context.Context, p plan) (*Result, error) {
	results, err := s.send(ctx, p, 0)
	if err != nil {
		return nil, err
	}
	found, err := s.readAlerts(ctx, p)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Status:         StatusCompleted,
		Rule:           p.rule,
		TotalSent:      p.count,
		Results:        results,
		FraudAlerts:    found,
		RequestSummary: p.summary,
	}
	s.logger.WithFields(logrus.Fields{
		"rule":      p.rule,
		"sent":      p.count,
		"succeeded": res.SuccessCount(),
		"alerts":    len(found),
	}).Info("attack simulation completed")
	return res, nil
}

// send runs every iteration of p. Iteration numbers start after offset.
func (s *service) send(ctx context.Context, p plan, offset int) ([]IterationResult, error) {
	results := make([]IterationResult, 0, p.count)
	for i := 0; i < p.count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		conf := transaction.SendConfirmed(ctx, s.client, s.generator, p.parties(i), iso20022.StatusAccepted)
		msg := conf.Pacs008
		res := conf.Pacs008Result

		it := IterationResult{
			Iteration:      offset + i + 1,
			Status:         res.StatusCode,
			ResponseTimeMs: res.ElapsedMs,
			Amount:         msg.Amount(),
			DebtorAccount:  msg.DebtorAccount(),
			Pacs002Status:  conf.Pacs002Status(),
		}
		if !res.OK() {
			it.Error = fmt.Sprint(res.Body)
		}
		results = append(results, it)

		rec := record.New(s.history.Now(), recordType(p.rule), res.StatusCode, res.ElapsedMs, res.OK(), msg.MessageID())
		rec.EndToEndID = msg.EndToEndID()
		rec.DebtorAccount = msg.DebtorAccount()
		rec.Amount = msg.Amount()
		s.history.Record(ctx, rec)
	}
	return results, nil
}

func (s *service) readAlerts(ctx context.Context, p plan) ([]alert.FraudAlert, error) {
	if err := s.sleep(ctx, s.alertDelay); err != nil {
		return nil, err
	}
	summary := p.summary
	return s.collector.Collect(ctx, alerts.Query{
		Containers: []string{s.container(p.rule)},
		Tail:       alertTail,
		Request:    &summary,
	}), nil
}
