package iso20022

type Pain001 struct {
	TxTp             string           `json:"TxTp"`
	CstmrCdtTrfInitn CstmrCdtTrfInitn `json:"CstmrCdtTrfInitn"`
}

type CstmrCdtTrfInitn struct {
	GrpHdr      InitiationGroupHeader  `json:"GrpHdr"`
	PmtInf      Pain001PaymentInfo     `json:"PmtInf"`
	SplmtryData InitiatorSupplementary `json:"SplmtryData"`
}

type InitiationGroupHeader struct {
	MsgID    string `json:"MsgId"`
	CreDtTm  string `json:"CreDtTm"`
	NbOfTxs  int    `json:"NbOfTxs"`
	InitgPty Party  `json:"InitgPty"`
}

type DebitAdvice struct {
	Cd    string `json:"Cd"`
	Prtry string `json:"Prtry"`
}

type RequiredAdvice struct {
	DbtAdvc DebitAdvice `json:"DbtAdvc"`
}

type Pain001PaymentInfo struct {
	PmtInfID    string             `json:"PmtInfId"`
	PmtMtd      string             `json:"PmtMtd"`
	ReqdAdvcTp  RequiredAdvice     `json:"ReqdAdvcTp"`
	ReqdExctnDt DateTime           `json:"ReqdExctnDt"`
	Dbtr        Party              `json:"Dbtr"`
	DbtrAcct    Account            `json:"DbtrAcct"`
	DbtrAgt     Agent              `json:"DbtrAgt"`
	CdtTrfTxInf Pain001Transaction `json:"CdtTrfTxInf"`
}

type CategoryPurpose struct {
	Prtry string `json:"Prtry"`
}

type PaymentTypeInfo struct {
	CtgyPurp CategoryPurpose `json:"CtgyPurp"`
}

type EquivalentAmount struct {
	Amt      Amount `json:"Amt"`
	CcyOfTrf string `json:"CcyOfTrf"`
}

type InstructedAmount struct {
	InstdAmt AmountBlock      `json:"InstdAmt"`
	EqvtAmt  EquivalentAmount `json:"EqvtAmt"`
}

type ExchangeRateInfo struct {
	UnitCcy  string  `json:"UnitCcy"`
	XchgRate float64 `json:"XchgRate"`
}

type Pain001Transaction struct {
	PmtID       PaymentID            `json:"PmtId"`
	PmtTpInf    PaymentTypeInfo      `json:"PmtTpInf"`
	Amt         InstructedAmount     `json:"Amt"`
	XchgRateInf ExchangeRateInfo     `json:"XchgRateInf"`
	ChrgBr      string               `json:"ChrgBr"`
	CdtrAgt     Agent                `json:"CdtrAgt"`
	Cdtr        Party                `json:"Cdtr"`
	CdtrAcct    Account              `json:"CdtrAcct"`
	Purp        Purpose              `json:"Purp"`
	RgltryRptg  RegulatoryReporting  `json:"RgltryRptg"`
	RmtInf      RemittanceInfo       `json:"RmtInf"`
	SplmtryData Pain001Supplementary `json:"SplmtryData"`
}

type NameParts struct {
	FrstNm           string `json:"FrstNm"`
	MddlNm           string `json:"MddlNm"`
	LastNm           string `json:"LastNm"`
	MrchntClssfctnCd string `json:"MrchntClssfctnCd"`
}

type Pain001Supplementary struct {
	Envlp struct {
		Doc Pain001SupplementaryDoc `json:"Doc"`
	} `json:"Envlp"`
}

type Pain001SupplementaryDoc struct {
	Dbtr                 NameParts `json:"Dbtr"`
	Cdtr                 NameParts `json:"Cdtr"`
	DbtrFinSvcsPrvdrFees Amount    `json:"DbtrFinSvcsPrvdrFees"`
	Xprtn                string    `json:"Xprtn"`
}

type InitiatorSupplementary struct {
	Envlp struct {
		Doc struct {
			InitgPty InitiatingPartyData `json:"InitgPty"`
		} `json:"Doc"`
	} `json:"Envlp"`
}

func (p *Pain001) MessageID() string {
	return p.CstmrCdtTrfInitn.GrpHdr.MsgID
}

func (p *Pain001) EndToEndID() string {
	return p.CstmrCdtTrfInitn.PmtInf.CdtTrfTxInf.PmtID.EndToEndID
}
