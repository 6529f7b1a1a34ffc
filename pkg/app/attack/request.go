package attack

import (
	"fmt"
	"strings"

	"github.com/NeuralTrust/TMSHarness/pkg/domain/alert"
	domain "github.com/NeuralTrust/TMSHarness/pkg/domain/errors"
)

const (
	ScenarioRule901 = "rule_901"
	ScenarioRule902 = "rule_902"
	ScenarioRule006 = "rule_006"
	ScenarioRule018 = "rule_018"

	MaxVelocityCount = 100
	MaxScenarioCount = 50

	DefaultCreditorAmount    = 500000
	DefaultStructuringAmount = 9500000
	DefaultHighValueAmount   = 900000000000
	HighValueWarmupAmount    = 50000
)

// ScenarioRule maps a scenario name such as "rule_006" to its rule id.
func ScenarioRule(scenario string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(scenario)) {
	case ScenarioRule901:
		return alert.RuleDebtorVelocity, true
	case ScenarioRule902:
		return alert.RuleCreditorVelocity, true
	case ScenarioRule006:
		return alert.RuleStructuring, true
	case ScenarioRule018:
		return alert.RuleHighValue, true
	}
	return "", false
}

// NormalizeRule accepts "901", "rule_901" or "RULE-901".
func NormalizeRule(rule string) (string, bool) {
	r := strings.ToLower(strings.TrimSpace(rule))
	r = strings.TrimPrefix(strings.TrimPrefix(r, "rule"), "_")
	r = strings.TrimPrefix(r, "-")
	switch r {
	case alert.RuleDebtorVelocity, alert.RuleCreditorVelocity, alert.RuleStructuring, alert.RuleHighValue:
		return r, true
	}
	return "", false
}

func checkCount(count, max int) error {
	if count < 1 || count > max {
		return domain.NewValidationError("count", fmt.Sprintf("must be between 1 and %d", max))
	}
	return nil
}

type VelocityRequest struct {
	DebtorAccount string
	DebtorName    string
	Count         int
	// Amount is used for every transaction; zero draws a random amount each time.
	Amount float64
}

func (r VelocityRequest) Validate() error {
	if strings.TrimSpace(r.DebtorAccount) == "" {
		return domain.NewValidationError("debtor_account", "is required")
	}
	if strings.TrimSpace(r.DebtorName) == "" {
		return domain.NewValidationError("debtor_name", "is required")
	}
	if r.Amount < 0 {
		return domain.NewValidationError("amount", "must be positive")
	}
	return checkCount(r.Count, MaxVelocityCount)
}

type CreditorRequest struct {
	CreditorAccount string
	CreditorName    string
	Count           int
	Amount          float64
	// DebtorPrefix names the generated senders; defaults to "RAND_DEB_".
	DebtorPrefix string
}

func (r CreditorRequest) Validate() error {
	if strings.TrimSpace(r.CreditorAccount) == "" {
		return domain.NewValidationError("creditor_account", "is required")
	}
	if strings.TrimSpace(r.CreditorName) == "" {
		return domain.NewValidationError("creditor_name", "is required")
	}
	if r.Amount <= 0 {
		return domain.NewValidationError("amount", "must be positive")
	}
	return checkCount(r.Count, MaxVelocityCount)
}

type ScenarioRequest struct {
	Scenario      string
	Count         int
	Amount        float64
	DebtorAccount string
	DebtorName    string
}

func (r ScenarioRequest) Validate() error {
	if _, ok := ScenarioRule(r.Scenario); !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownScenario, r.Scenario)
	}
	if r.Amount < 0 {
		return domain.NewValidationError("amount", "must be positive")
	}
	return checkCount(r.Count, MaxScenarioCount)
}

type SimulationRequest struct {
	AccountID   string
	Rule        string
	AttackCount int
}

func (r SimulationRequest) Validate() error {
	if strings.TrimSpace(r.AccountID) == "" {
		return domain.NewValidationError("account_id", "is required")
	}
	if _, ok := NormalizeRule(r.Rule); !ok {
		return fmt.Errorf("%w: %q", domain.ErrInvalidAttackRule, r.Rule)
	}
	return checkCount(r.AttackCount, MaxScenarioCount)
}
