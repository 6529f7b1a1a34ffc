package alert

// FraudAlert is a log line from a rule processor that looks like a rule firing.
type FraudAlert struct {
	Raw            string          `json:"raw"`
	Title          string          `json:"title"`
	Desc           string          `json:"desc"`
	RuleID         string          `json:"rule_id,omitempty"`
	Container      string          `json:"container,omitempty"`
	Timestamp      string          `json:"timestamp,omitempty"`
	LogSnippet     string          `json:"log_snippet,omitempty"`
	RuleDetail     *Rule           `json:"rule_detail,omitempty"`
	RequestContext *RequestContext `json:"request_context,omitempty"`
}

// RequestContext describes the traffic that was sent before the alert was read.
type RequestContext struct {
	Scenario             string  `json:"scenario"`
	DebtorAccount        string  `json:"debtor_account,omitempty"`
	DebtorName           string  `json:"debtor_name,omitempty"`
	CreditorAccount      string  `json:"creditor_account,omitempty"`
	AmountPerTransaction float64 `json:"amount_per_transaction,omitempty"`
	AmountRequested      float64 `json:"amount_requested,omitempty"`
	TotalTransactions    int     `json:"total_transactions,omitempty"`
}

// DedupeByRaw keeps the first occurrence of each raw line.
func DedupeByRaw(alerts []FraudAlert) []FraudAlert {
	seen := make(map[string]struct{}, len(alerts))
	out := make([]FraudAlert, 0, len(alerts))
	for _, a := range alerts {
		if _, ok := seen[a.Raw]; ok {
			continue
		}
		seen[a.Raw] = struct{}{}
		out = append(out, a)
	}
	return out
}

// DedupeByRule keeps the first alert of each rule. Alerts that cannot be
// attributed to a rule are dropped.
func DedupeByRule(alerts []FraudAlert) []FraudAlert {
	seen := make(map[string]struct{}, len(alerts))
	out := make([]FraudAlert, 0, len(alerts))
	for _, a := range alerts {
		if a.RuleID == "" {
			continue
		}
		if _, ok := seen[a.RuleID]; ok {
			continue
		}
		seen[a.RuleID] = struct{}{}
		out = append(out, a)
	}
	return out
}
