package request

import (
	"fmt"
	"strings"

	"github.com/NeuralTrust/TMSHarness/pkg/app/batch"
	"github.com/NeuralTrust/TMSHarness/pkg/app/flow"
)

type E2EFlowRequest struct {
	DebtorAccount   string  `json:"debtor_account" form:"debtor_account"`
	CreditorAccount string  `json:"creditor_account" form:"creditor_account"`
	Amount          float64 `json:"amount" form:"amount"`
	FinalStatus     string  `json:"final_status" form:"final_status"`
}

func (r *E2EFlowRequest) Validate() error {
	return checkAmount(r.Amount)
}

func (r *E2EFlowRequest) ToFlow() flow.Request {
	return flow.Request{
		DebtorAccount:   strings.TrimSpace(r.DebtorAccount),
		CreditorAccount: strings.TrimSpace(r.CreditorAccount),
		Amount:          r.Amount,
		FinalStatus:     strings.TrimSpace(r.FinalStatus),
	}
}

type BatchRequest struct {
	Scenarios string `json:"scenarios" form:"scenarios"`
}

func (r *BatchRequest) Validate() error {
	if strings.TrimSpace(r.Scenarios) == "" {
		return fmt.Errorf("scenarios is required, available: %s", strings.Join(batch.Available, ", "))
	}
	return nil
}
