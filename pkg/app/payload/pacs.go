package payload

import (
	"strings"

	"github.com/NeuralTrust/TMSHarness/pkg/common"
	"github.com/NeuralTrust/TMSHarness/pkg/iso20022"
)

// Pacs008 builds a credit transfer. Debtor and creditor ids are derived from
// their accounts; MsgId and EndToEndId are fresh on every call.
func (g *Generator) Pacs008(p Parties) *iso20022.Pacs008 {
	now := g.now()
	timestamp := FormatTimestamp(now)
	expiry := FormatTimestamp(now.AddDate(1, 0, 0))

	debtorParts := g.nameParts(p.DebtorName, "User")
	creditorParts := g.nameParts(p.CreditorName, "Merchant")
	debtorName := strings.Join(debtorParts, " ")
	creditorName := strings.Join(creditorParts, " ")

	debtorAccount := orDefault(p.DebtorAccount, common.DefaultDebtorAccount)
	creditorAccount := orDefault(p.CreditorAccount, common.DefaultCreditorAccount)
	debtorID := AccountPhoneID(debtorAccount)
	creditorID := AccountPhoneID(creditorAccount)
	amount := g.amount(p.Amount)

	msg := &iso20022.Pacs008{TxTp: iso20022.MessageTypePacs008}
	body := &msg.FIToFICstmrCdtTrf
	body.GrpHdr = iso20022.Pacs008GroupHeader{
		MsgID:    g.newID(),
		CreDtTm:  timestamp,
		NbOfTxs:  1,
		SttlmInf: iso20022.SettlementInfo{SttlmMtd: "CLRG"},
	}
	body.CdtTrfTxInf = iso20022.Pacs008Transaction{
		PmtID:          iso20022.PaymentID{InstrID: InstructionID, EndToEndID: g.newID()},
		IntrBkSttlmAmt: iso20022.NewAmountBlock(amount, iso20022.CurrencyIDR),
		InstdAmt:       iso20022.NewAmountBlock(amount, iso20022.CurrencyIDR),
		XchgRate:       1.0,
		ChrgBr:         iso20022.ChargeBearerDebtor,
		ChrgsInf: iso20022.Charge{
			Amt: iso20022.Amount{Amt: 0, Ccy: iso20022.CurrencyIDR},
			Agt: iso20022.NewAgent(debtorAgentID),
		},
		InitgPty: iso20022.NewParty(debtorName, debtorID, iso20022.SchemeMSISDN, birth(debtorBirthDate)),
		Dbtr:     iso20022.NewParty(debtorName, debtorID, iso20022.SchemeMSISDN, birth(debtorBirthDate)),
		DbtrAcct: iso20022.NewAccount(debtorName, debtorAccount, iso20022.SchemeMSISDN),
		DbtrAgt:  iso20022.NewAgent(debtorAgentID),
		CdtrAgt:  iso20022.NewAgent(creditorAgentID),
		Cdtr:     iso20022.NewParty(creditorName, creditorID, iso20022.SchemeMSISDN, birth(creditorBirthDate)),
		CdtrAcct: iso20022.NewAccount(creditorName, creditorAccount, iso20022.SchemeMSISDN),
		Purp:     iso20022.Purpose{Cd: iso20022.PurposeP2P},
		SplmtryData: iso20022.Pacs008Supplementary{Envlp: iso20022.Pacs008Envelope{Doc: iso20022.Pacs008SupplementaryDoc{
			Xprtn:    expiry,
			InitgPty: iso20022.InitiatingPartyData{Glctn: geolocation()},
		}}},
	}
	body.RgltryRptg = iso20022.RegulatoryReporting{Dtls: iso20022.RegulatoryDetails{Tp: "BALANCE_OF_PAYMENTS", Cd: "100"}}
	body.RmtInf = iso20022.RemittanceInfo{Ustrd: "Payment Transaction"}
	body.SplmtryData = iso20022.Pacs008Supplementary{Envlp: iso20022.Pacs008Envelope{Doc: iso20022.Pacs008SupplementaryDoc{
		Xprtn:    expiry,
		InitgPty: iso20022.InitiatingPartyData{InitrTp: iso20022.InitiatorConsumer, Glctn: geolocation()},
	}}}
	return msg
}

// Pacs002 builds the status report closing a transfer. The original ids are echoed
// untouched; a rejection carries a status reason, any other status does not.
func (g *Generator) Pacs002(originalMsgID, endToEndID string, status iso20022.StatusCode) *iso20022.Pacs002 {
	if status == "" {
		status = iso20022.StatusAccepted
	}
	timestamp := FormatTimestamp(g.now())

	msg := &iso20022.Pacs002{TxTp: iso20022.MessageTypePacs002}
	msg.FIToFIPmtSts.GrpHdr = iso20022.Pacs002GroupHeader{MsgID: g.newID(), CreDtTm: timestamp}
	msg.FIToFIPmtSts.TxInfAndSts = iso20022.TxInfAndSts{
		OrgnlInstrID:    originalMsgID,
		OrgnlEndToEndID: endToEndID,
		TxSts:           status,
		ChrgsInf: []iso20022.Charge{
			zeroCharge(debtorAgentID),
			zeroCharge(debtorAgentID),
			zeroCharge(creditorAgentID),
		},
		AccptncDtTm: timestamp,
		InstgAgt:    iso20022.NewAgent(debtorAgentID),
		InstdAgt:    iso20022.NewAgent(creditorAgentID),
	}
	if status == iso20022.StatusRejected {
		msg.FIToFIPmtSts.TxInfAndSts.StsRsnInf = []iso20022.StatusReason{{
			Rsn:      iso20022.ReasonCode{Prtry: iso20022.RejectReasonAccountClosed},
			AddtlInf: []string{iso20022.RejectReasonText},
		}}
	}
	return msg
}

func zeroCharge(agent string) iso20022.Charge {
	return iso20022.Charge{
		Amt: iso20022.Amount{Amt: 0, Ccy: iso20022.CurrencyUSD},
		Agt: iso20022.NewAgent(agent),
	}
}
