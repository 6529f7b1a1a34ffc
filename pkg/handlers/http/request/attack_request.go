package request

import (
	"fmt"
	"strings"

	"github.com/NeuralTrust/TMSHarness/pkg/app/attack"
)

const (
	defaultVelocityCount = 20
	defaultScenarioCount = 5
)

func countOr(count *int, def int) int {
	if count == nil {
		return def
	}
	return *count
}

type VelocityRequest struct {
	DebtorAccount string `json:"debtor_account" form:"debtor_account"`
	DebtorName    string `json:"debtor_name" form:"debtor_name"`
	Count         *int   `json:"count" form:"count"`
}

func (r *VelocityRequest) Validate() error {
	if strings.TrimSpace(r.DebtorAccount) == "" {
		return fmt.Errorf("debtor_account is required")
	}
	if strings.TrimSpace(r.DebtorName) == "" {
		return fmt.Errorf("debtor_name is required")
	}
	return nil
}

func (r *VelocityRequest) ToAttack() attack.VelocityRequest {
	return attack.VelocityRequest{
		DebtorAccount: strings.TrimSpace(r.DebtorAccount),
		DebtorName:    strings.TrimSpace(r.DebtorName),
		Count:         countOr(r.Count, defaultVelocityCount),
	}
}

type CreditorVelocityRequest struct {
	CreditorAccount string   `json:"creditor_account" form:"creditor_account"`
	CreditorName    string   `json:"creditor_name" form:"creditor_name"`
	Count           *int     `json:"count" form:"count"`
	Amount          *float64 `json:"amount" form:"amount"`
}

func (r *CreditorVelocityRequest) Validate() error {
	if strings.TrimSpace(r.CreditorAccount) == "" {
		return fmt.Errorf("creditor_account is required")
	}
	if strings.TrimSpace(r.CreditorName) == "" {
		return fmt.Errorf("creditor_name is required")
	}
	return nil
}

func (r *CreditorVelocityRequest) ToAttack() attack.CreditorRequest {
	amount := float64(attack.DefaultCreditorAmount)
	if r.Amount != nil {
		amount = *r.Amount
	}
	return attack.CreditorRequest{
		CreditorAccount: strings.TrimSpace(r.CreditorAccount),
		CreditorName:    strings.TrimSpace(r.CreditorName),
		Count:           countOr(r.Count, defaultVelocityCount),
		Amount:          amount,
	}
}

type AttackScenarioRequest struct {
	Scenario string   `json:"scenario" form:"scenario"`
	Count    *int     `json:"count" form:"count"`
	Amount   *float64 `json:"amount" form:"amount"`
}

func (r *AttackScenarioRequest) Validate() error {
	if strings.TrimSpace(r.Scenario) == "" {
		return fmt.Errorf("scenario is required")
	}
	if r.Amount != nil && *r.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}

func (r *AttackScenarioRequest) ToAttack() attack.ScenarioRequest {
	req := attack.ScenarioRequest{
		Scenario: strings.ToLower(strings.TrimSpace(r.Scenario)),
		Count:    countOr(r.Count, defaultScenarioCount),
	}
	if r.Amount != nil {
		req.Amount = *r.Amount
	}
	return req
}

type FraudSimulationRequest struct {
	AccountID   string `json:"account_id" form:"account_id"`
	Rule        string `json:"rule" form:"rule"`
	AttackCount *int   `json:"attack_count" form:"attack_count"`
}

func (r *FraudSimulationRequest) Validate() error {
	if strings.TrimSpace(r.AccountID) == "" {
		return fmt.Errorf("account_id is required")
	}
	if strings.TrimSpace(r.Rule) == "" {
		return fmt.Errorf("rule is required")
	}
	return nil
}

func (r *FraudSimulationRequest) ToAttack() attack.SimulationRequest {
	return attack.SimulationRequest{
		AccountID:   strings.TrimSpace(r.AccountID),
		Rule:        strings.TrimSpace(r.Rule),
		AttackCount: countOr(r.AttackCount, defaultScenarioCount),
	}
}
