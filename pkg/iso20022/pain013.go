package iso20022

type Pain013 struct {
	TxTp             string           `json:"TxTp"`
	CdtrPmtActvtnReq CdtrPmtActvtnReq `json:"CdtrPmtActvtnReq"`
}

type CdtrPmtActvtnReq struct {
	GrpHdr      InitiationGroupHeader  `json:"GrpHdr"`
	PmtInf      Pain013PaymentInfo     `json:"PmtInf"`
	SplmtryData InitiatorSupplementary `json:"SplmtryData"`
}

type Pain013PaymentInfo struct {
	PmtInfID    string             `json:"PmtInfId"`
	PmtMtd      string             `json:"PmtMtd"`
	ReqdAdvcTp  RequiredAdvice     `json:"ReqdAdvcTp"`
	ReqdExctnDt DateTime           `json:"ReqdExctnDt"`
	XpryDt      DateTime           `json:"XpryDt"`
	Dbtr        Party              `json:"Dbtr"`
	DbtrAcct    Account            `json:"DbtrAcct"`
	DbtrAgt     Agent              `json:"DbtrAgt"`
	CdtTrfTxInf Pain013Transaction `json:"CdtTrfTxInf"`
}

type Pain013Transaction struct {
	PmtID       PaymentID            `json:"PmtId"`
	PmtTpInf    PaymentTypeInfo      `json:"PmtTpInf"`
	Amt         InstructedAmount     `json:"Amt"`
	ChrgBr      string               `json:"ChrgBr"`
	CdtrAgt     Agent                `json:"CdtrAgt"`
	Cdtr        Party                `json:"Cdtr"`
	CdtrAcct    Account              `json:"CdtrAcct"`
	Purp        Purpose              `json:"Purp"`
	RgltryRptg  RegulatoryReporting  `json:"RgltryRptg"`
	SplmtryData Pain013Supplementary `json:"SplmtryData"`
}

type Pain013Supplementary struct {
	Envlp struct {
		Doc Pain013SupplementaryDoc `json:"Doc"`
	} `json:"Envlp"`
}

type Pain013SupplementaryDoc struct {
	PyeeRcvAmt             AmountBlock `json:"PyeeRcvAmt"`
	PyeeFinSvcsPrvdrFee    AmountBlock `json:"PyeeFinSvcsPrvdrFee"`
	PyeeFinSvcsPrvdrComssn AmountBlock `json:"PyeeFinSvcsPrvdrComssn"`
}

func (p *Pain013) MessageID() string {
	return p.CdtrPmtActvtnReq.GrpHdr.MsgID
}

func (p *Pain013) EndToEndID() string {
	return p.CdtrPmtActvtnReq.PmtInf.CdtTrfTxInf.PmtID.EndToEndID
}
