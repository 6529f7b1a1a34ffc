package payload

import (
	"fmt"
	"strings"

	"github.com/NeuralTrust/TMSHarness/pkg/common"
	"github.com/NeuralTrust/TMSHarness/pkg/iso20022"
)

const (
	defaultInitiationPurpose = "TRANSFER"
	activationPurpose        = "TRANSFER BLANK"
	paymentMethodTransfer    = "TRA"
)

func requiredAdvice() iso20022.RequiredAdvice {
	return iso20022.RequiredAdvice{DbtAdvc: iso20022.DebitAdvice{
		Cd:    "ADWD",
		Prtry: "Advice with transaction details",
	}}
}

func instructedAmount(amount float64) iso20022.InstructedAmount {
	return iso20022.InstructedAmount{
		InstdAmt: iso20022.NewAmountBlock(amount, iso20022.CurrencyIDR),
		EqvtAmt: iso20022.EquivalentAmount{
			Amt:      iso20022.Amount{Amt: amount, Ccy: iso20022.CurrencyIDR},
			CcyOfTrf: iso20022.CurrencyIDR,
		},
	}
}

func initiatorData(initiatorType string) iso20022.InitiatorSupplementary {
	var s iso20022.InitiatorSupplementary
	s.Envlp.Doc.InitgPty = iso20022.InitiatingPartyData{InitrTp: initiatorType, Glctn: geolocation()}
	return s
}

// Pain001 builds a customer credit transfer initiation.
func (g *Generator) Pain001(p Parties) *iso20022.Pain001 {
	now := g.now()
	timestamp := FormatTimestamp(now)

	debtorParts := g.nameParts(p.DebtorName, "User")
	creditorParts := g.nameParts(p.CreditorName, "Merchant")
	debtorName := strings.Join(debtorParts, " ")
	creditorName := strings.Join(creditorParts, " ")
	debtorAccount := orDefault(p.DebtorAccount, common.DefaultDebtorAccount)
	creditorAccount := orDefault(p.CreditorAccount, common.DefaultCreditorAccount)
	amount := g.amount(p.Amount)

	msg := &iso20022.Pain001{TxTp: iso20022.MessageTypePain001}
	body := &msg.CstmrCdtTrfInitn
	body.GrpHdr = iso20022.InitiationGroupHeader{
		MsgID:    g.newID(),
		CreDtTm:  timestamp,
		NbOfTxs:  1,
		InitgPty: iso20022.NewParty(debtorName, initiationDebtorID, iso20022.SchemeMSISDN, birth(debtorBirthDate)),
	}

	tx := iso20022.Pain001Transaction{
		PmtID:       iso20022.PaymentID{EndToEndID: g.newID()},
		PmtTpInf:    iso20022.PaymentTypeInfo{CtgyPurp: iso20022.CategoryPurpose{Prtry: orDefault(p.Purpose, defaultInitiationPurpose)}},
		Amt:         instructedAmount(amount),
		XchgRateInf: iso20022.ExchangeRateInfo{UnitCcy: iso20022.CurrencyIDR, XchgRate: 1.0},
		ChrgBr:      iso20022.ChargeBearerDebtor,
		CdtrAgt:     iso20022.NewAgent(initCreditorAgent),
		Cdtr:        iso20022.NewParty(creditorName, initiationCreditorID, iso20022.SchemeTazamaEID, birth(creditorBirthDate)),
		CdtrAcct:    iso20022.NewAccount(creditorName, creditorAccount, iso20022.SchemeMSISDN),
		Purp:        iso20022.Purpose{Cd: iso20022.PurposeP2P},
		RgltryRptg:  iso20022.RegulatoryReporting{Dtls: iso20022.RegulatoryDetails{Tp: "BALANCE OF PAYMENTS", Cd: "100"}},
		RmtInf:      iso20022.RemittanceInfo{Ustrd: fmt.Sprintf("Payment initiated by %s", debtorName)},
	}
	tx.SplmtryData.Envlp.Doc = iso20022.Pain001SupplementaryDoc{
		Dbtr:                 splitName(debtorParts),
		Cdtr:                 splitName(creditorParts),
		DbtrFinSvcsPrvdrFees: iso20022.Amount{Amt: 0, Ccy: iso20022.CurrencyIDR},
		Xprtn:                FormatTimestamp(now.AddDate(1, 0, 0)),
	}

	body.PmtInf = iso20022.Pain001PaymentInfo{
		PmtInfID:    g.newID(),
		PmtMtd:      paymentMethodTransfer,
		ReqdAdvcTp:  requiredAdvice(),
		ReqdExctnDt: iso20022.DateTime{Dt: now.UTC().Format(dateLayout), DtTm: timestamp},
		Dbtr:        iso20022.NewParty(debtorName, initiationDebtorID, iso20022.SchemeTazamaEID, birth(debtorBirthDate)),
		DbtrAcct:    iso20022.NewAccount(debtorName, debtorAccount, iso20022.SchemeMSISDN),
		DbtrAgt:     iso20022.NewAgent(initDebtorAgent),
		CdtTrfTxInf: tx,
	}
	body.SplmtryData = initiatorData(iso20022.InitiatorConsumer)
	return msg
}

// Pain013 builds a creditor payment activation request. The creditor is the initiating party.
func (g *Generator) Pain013(p Parties) *iso20022.Pain013 {
	now := g.now()
	timestamp := FormatTimestamp(now)

	debtorParts := g.nameParts(p.DebtorName, "User")
	creditorParts := g.nameParts(p.CreditorName, "Merchant")
	debtorName := strings.Join(debtorParts, " ")
	creditorName := strings.Join(creditorParts, " ")
	debtorAccount := orDefault(p.DebtorAccount, common.DefaultDebtorAccount)
	creditorAccount := orDefault(p.CreditorAccount, common.DefaultCreditorAccount)
	amount := g.amount(p.Amount)

	msg := &iso20022.Pain013{TxTp: iso20022.MessageTypePain013}
	body := &msg.CdtrPmtActvtnReq
	body.GrpHdr = iso20022.InitiationGroupHeader{
		MsgID:    g.newID(),
		CreDtTm:  timestamp,
		NbOfTxs:  1,
		InitgPty: iso20022.NewParty(creditorName, initiationCreditorID, iso20022.SchemeMSISDN, birth(creditorBirthDate)),
	}

	tx := iso20022.Pain013Transaction{
		PmtID:      iso20022.PaymentID{EndToEndID: g.newID()},
		PmtTpInf:   iso20022.PaymentTypeInfo{CtgyPurp: iso20022.CategoryPurpose{Prtry: activationPurpose}},
		Amt:        instructedAmount(amount),
		ChrgBr:     iso20022.ChargeBearerDebtor,
		CdtrAgt:    iso20022.NewAgent(initCreditorAgent),
		Cdtr:       iso20022.NewParty(creditorName, initiationCreditorID, iso20022.SchemeTazamaEID, birth(creditorBirthDate)),
		CdtrAcct:   iso20022.NewAccount(creditorName, creditorAccount, iso20022.SchemeMSISDN),
		Purp:       iso20022.Purpose{Cd: iso20022.PurposeP2P},
		RgltryRptg: iso20022.RegulatoryReporting{Dtls: iso20022.RegulatoryDetails{Tp: "BALANCE OF PAYMENTS", Cd: "100"}},
	}
	tx.SplmtryData.Envlp.Doc = iso20022.Pain013SupplementaryDoc{
		PyeeRcvAmt:             iso20022.NewAmountBlock(0, iso20022.CurrencyIDR),
		PyeeFinSvcsPrvdrFee:    iso20022.NewAmountBlock(0, iso20022.CurrencyIDR),
		PyeeFinSvcsPrvdrComssn: iso20022.NewAmountBlock(0, iso20022.CurrencyIDR),
	}

	body.PmtInf = iso20022.Pain013PaymentInfo{
		PmtInfID:    g.newID(),
		PmtMtd:      paymentMethodTransfer,
		ReqdAdvcTp:  requiredAdvice(),
		ReqdExctnDt: iso20022.DateTime{DtTm: timestamp},
		XpryDt:      iso20022.DateTime{DtTm: FormatTimestamp(now.AddDate(1, 0, 0))},
		Dbtr:        iso20022.NewParty(debtorName, initiationDebtorID, iso20022.SchemeTazamaEID, birth(debtorBirthDate)),
		DbtrAcct:    iso20022.NewAccount(debtorName, debtorAccount, iso20022.SchemeMSISDN),
		DbtrAgt:     iso20022.NewAgent(initDebtorAgent),
		CdtTrfTxInf: tx,
	}
	body.SplmtryData = initiatorData("")
	return msg
}
