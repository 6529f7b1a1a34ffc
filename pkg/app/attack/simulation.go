package attack

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/TMSHarness/pkg/domain/alert"
	"github.com/sirupsen/logrus"
)

const (
	FinalStatusDetected    = "FRAUD DETECTED"
	FinalStatusNotDetected = "NO ALERT"
	FinalStatusNotSent     = "TRANSACTIONS FAILED"
)

type SimulationStep struct {
	Step    int    `json:"step"`
	Name    string `json:"name"`
	Success bool   `json:"success"`
	Detail  string `json:"detail"`
}

type SimulationSummary struct {
	RuleTriggered    string `json:"rule_triggered,omitempty"`
	AlertsCount      int    `json:"alerts_count"`
	FinalStatus      string `json:"final_status"`
	TriggerCondition string `json:"trigger_condition"`
	Recommendation   string `json:"recommendation"`
}

type SimulationResult struct {
	Status        string             `json:"status"`
	AccountID     string             `json:"account_id"`
	TargetRule    string             `json:"target_rule"`
	Steps         []SimulationStep   `json:"steps"`
	Transactions  []IterationResult  `json:"transactions"`
	FraudDetected bool               `json:"fraud_detected"`
	FraudAlerts   []alert.FraudAlert `json:"fraud_alerts"`
	Summary       SimulationSummary  `json:"summary"`
}

// FraudSimulation walks through one rule: a baseline transfer, an attack
// burst against the same account and a check of the rule container logs.
func (s *service) FraudSimulation(ctx context.Context, req SimulationRequest) (*SimulationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	rule, _ := NormalizeRule(req.Rule)
	info, _ := s.catalog.Lookup(rule)

	out := &SimulationResult{
		Status:     StatusCompleted,
		AccountID:  req.AccountID,
		TargetRule: rule,
		Steps:      make([]SimulationStep, 0, 3),
	}

	baseline, err := s.rulePlan(rule, req.AccountID, "Simulation Account", 1, baselineAmount(rule))
	if err != nil {
		return nil, err
	}
	baseRes, err := s.send(ctx, baseline, 0)
	if err != nil {
		return nil, err
	}
	out.Transactions = append(out.Transactions, baseRes...)
	out.Steps = append(out.Steps, SimulationStep{
		Step:    1,
		Name:    "Baseline transaction",
		Success: countOK(baseRes) == 1,
		Detail:  fmt.Sprintf("HTTP %d", baseRes[0].Status),
	})

	attack, err := s.rulePlan(rule, req.AccountID, "Simulation Account", req.AttackCount, 0)
	if err != nil {
		return nil, err
	}
	burst, err := s.send(ctx, attack, len(baseRes))
	if err != nil {
		return nil, err
	}
	out.Transactions = append(out.Transactions, burst...)
	accepted := countOK(burst)
	out.Steps = append(out.Steps, SimulationStep{
		Step:    2,
		Name:    "Attack burst",
		Success: accepted > 0,
		Detail:  fmt.Sprintf("%d of %d transactions accepted", accepted, len(burst)),
	})

	attack.summary.TotalTransactions = len(out.Transactions)
	found, err := s.readAlerts(ctx, attack)
	if err != nil {
		return nil, err
	}
	out.FraudAlerts = alert.DedupeByRaw(found)
	out.FraudDetected = len(out.FraudAlerts) > 0
	out.Steps = append(out.Steps, SimulationStep{
		Step:    3,
		Name:    "Alert check",
		Success: out.FraudDetected,
		Detail:  fmt.Sprintf("%d alerts in %s", len(out.FraudAlerts), s.container(rule)),
	})

	out.Summary = SimulationSummary{
		AlertsCount:      len(out.FraudAlerts),
		TriggerCondition: info.TriggerCondition,
		Recommendation:   info.Recommendation,
	}
	switch {
	case out.FraudDetected:
		out.Summary.RuleTriggered = fmt.Sprintf("%s - %s", rule, info.Name)
		out.Summary.FinalStatus = FinalStatusDetected
	case accepted == 0:
		out.Summary.FinalStatus = FinalStatusNotSent
	default:
		out.Summary.FinalStatus = FinalStatusNotDetected
	}

	s.logger.WithFields(logrus.Fields{
		"account":        req.AccountID,
		"rule":           rule,
		"fraud_detected": out.FraudDetected,
	}).Info("fraud simulation finished")
	return out, nil
}

// baselineAmount is an ordinary transfer that on its own triggers nothing.
func baselineAmount(rule string) float64 {
	switch rule {
	case alert.RuleHighValue, alert.RuleStructuring:
		return HighValueWarmupAmount
	case alert.RuleCreditorVelocity:
		return DefaultCreditorAmount
	}
	return 0
}

func countOK(results []IterationResult) int {
	n := 0
	for _, it := range results {
		if it.Status == 200 {
			n++
		}
	}
	return n
}
