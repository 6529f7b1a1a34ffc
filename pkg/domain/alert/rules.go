package alert

import "fmt"

const (
	RuleDebtorVelocity   = "901"
	RuleCreditorVelocity = "902"
	RuleStructuring      = "006"
	RuleHighValue        = "018"
)

// Rule documents what a TMS rule processor looks for. The harness does not
// evaluate rules, it only explains the alerts it reads back.
type Rule struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	TriggerCondition string `json:"trigger_condition"`
	WhyTriggered     string `json:"why_triggered"`
	Recommendation   string `json:"recommendation"`
}

type Thresholds struct {
	VelocityMinTx        int
	StructuringMinTx     int
	StructuringTolerance float64
	OutlierMultiplier    float64
}

// Catalog describes the rules the harness knows how to provoke.
type Catalog map[string]Rule

func NewCatalog(th Thresholds) Catalog {
	return Catalog{
		RuleDebtorVelocity: {
			ID:               RuleDebtorVelocity,
			Name:             "Debtor Velocity",
			TriggerCondition: fmt.Sprintf("%d or more transactions from the same debtor within one day", th.VelocityMinTx),
			WhyTriggered:     "The debtor sent an unusually high number of payments in a short window.",
			Recommendation:   "Review the debtor's recent activity and apply a daily transaction limit.",
		},
		RuleCreditorVelocity: {
			ID:               RuleCreditorVelocity,
			Name:             "Money Mule (Creditor Velocity)",
			TriggerCondition: fmt.Sprintf("%d or more transactions from distinct debtors to the same creditor", th.VelocityMinTx),
			WhyTriggered:     "Many unrelated senders paid the same account, a typical money mule pattern.",
			Recommendation:   "Hold outgoing transfers from the creditor and verify the account owner.",
		},
		RuleStructuring: {
			ID:   RuleStructuring,
			Name: "Structuring / Smurfing",
			TriggerCondition: fmt.Sprintf("at least %d transactions with amounts within %.0f%% of each other",
				th.StructuringMinTx, th.StructuringTolerance*100),
			WhyTriggered:   "Repeated near-identical amounts suggest splitting a large sum to stay under reporting thresholds.",
			Recommendation: "File a suspicious activity report and review the combined amount.",
		},
		RuleHighValue: {
			ID:               RuleHighValue,
			Name:             "High Value Transfer",
			TriggerCondition: fmt.Sprintf("amount exceeds %.1fx the debtor's historical average", th.OutlierMultiplier),
			WhyTriggered:     "The latest transfer is far above what this debtor normally sends.",
			Recommendation:   "Confirm the transfer with the debtor before settlement.",
		},
	}
}

// Lookup returns the rule and whether it is known.
func (c Catalog) Lookup(id string) (Rule, bool) {
	r, ok := c[id]
	return r, ok
}
