package transaction

import (
	"context"

	"github.com/NeuralTrust/TMSHarness/pkg/app/payload"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/tms"
	"github.com/NeuralTrust/TMSHarness/pkg/iso20022"
)

// Confirmation is a pacs.008 followed, when the TMS accepted it, by a pacs.002.
type Confirmation struct {
	Pacs008       *iso20022.Pacs008
	Pacs008Result tms.Result
	Pacs002       *iso20022.Pacs002
	Pacs002Result *tms.Result
}

func (c Confirmation) Pacs002Status() *int {
	if c.Pacs002Result == nil {
		return nil
	}
	code := c.Pacs002Result.StatusCode
	return &code
}

// SendConfirmed sends a pacs.008 and, when it is accepted, the pacs.002 with
// status. Rules 901 and 902 only count transfers closed by a pacs.002.
func SendConfirmed(
	ctx context.Context,
	client tms.Client,
	gen *payload.Generator,
	parties payload.Parties,
	status iso20022.StatusCode,
) Confirmation {
	msg := gen.Pacs008(parties)
	c := Confirmation{
		Pacs008:       msg,
		Pacs008Result: client.SendPacs008(ctx, msg),
	}
	if !c.Pacs008Result.OK() {
		return c
	}
	c.Pacs002 = gen.Pacs002(msg.MessageID(), msg.EndToEndID(), status)
	res := client.SendPacs002(ctx, c.Pacs002)
	c.Pacs002Result = &res
	return c
}
