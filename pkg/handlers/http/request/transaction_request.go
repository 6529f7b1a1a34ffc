package request

import (
	"fmt"
	"strings"

	"github.com/NeuralTrust/TMSHarness/pkg/app/payload"
	"github.com/NeuralTrust/TMSHarness/pkg/iso20022"
)

func checkAmount(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}

type Pacs008Request struct {
	DebtorAccount   string  `json:"debtor_account" form:"debtor_account"`
	DebtorName      string  `json:"debtor_name" form:"debtor_name"`
	CreditorAccount string  `json:"creditor_account" form:"creditor_account"`
	CreditorName    string  `json:"creditor_name" form:"creditor_name"`
	Amount          float64 `json:"amount" form:"amount"`
}

func (r *Pacs008Request) Validate() error {
	return checkAmount(r.Amount)
}

func (r *Pacs008Request) Parties() payload.Parties {
	return payload.Parties{
		DebtorAccount:   strings.TrimSpace(r.DebtorAccount),
		DebtorName:      strings.TrimSpace(r.DebtorName),
		CreditorAccount: strings.TrimSpace(r.CreditorAccount),
		CreditorName:    strings.TrimSpace(r.CreditorName),
		Amount:          r.Amount,
	}
}

type QuickStatusRequest struct {
	StatusCode    string  `json:"status_code" form:"status_code"`
	DebtorAccount string  `json:"debtor_account" form:"debtor_account"`
	Amount        float64 `json:"amount" form:"amount"`
}

func (r *QuickStatusRequest) Validate() error {
	if strings.TrimSpace(r.StatusCode) == "" {
		r.StatusCode = string(iso20022.StatusAccepted)
	}
	return checkAmount(r.Amount)
}

func (r *QuickStatusRequest) Parties() payload.Parties {
	return payload.Parties{DebtorAccount: strings.TrimSpace(r.DebtorAccount), Amount: r.Amount}
}

type FullTransactionRequest struct {
	DebtorAccount string  `json:"debtor_account" form:"debtor_account"`
	Amount        float64 `json:"amount" form:"amount"`
}

func (r *FullTransactionRequest) Validate() error {
	return checkAmount(r.Amount)
}

func (r *FullTransactionRequest) Parties() payload.Parties {
	return payload.Parties{DebtorAccount: strings.TrimSpace(r.DebtorAccount), Amount: r.Amount}
}

// PainRequest is shared by pain.001 and pain.013.
type PainRequest = Pacs008Request
