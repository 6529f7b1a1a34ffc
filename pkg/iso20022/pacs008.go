package iso20022

type Pacs008 struct {
	TxTp              string            `json:"TxTp"`
	FIToFICstmrCdtTrf FIToFICstmrCdtTrf `json:"FIToFICstmrCdtTrf"`
}

type FIToFICstmrCdtTrf struct {
	GrpHdr      Pacs008GroupHeader   `json:"GrpHdr"`
	CdtTrfTxInf Pacs008Transaction   `json:"CdtTrfTxInf"`
	RgltryRptg  RegulatoryReporting  `json:"RgltryRptg"`
	RmtInf      RemittanceInfo       `json:"RmtInf"`
	SplmtryData Pacs008Supplementary `json:"SplmtryData"`
}

type SettlementInfo struct {
	SttlmMtd string `json:"SttlmMtd"`
}

type Pacs008GroupHeader struct {
	MsgID    string         `json:"MsgId"`
	CreDtTm  string         `json:"CreDtTm"`
	NbOfTxs  int            `json:"NbOfTxs"`
	SttlmInf SettlementInfo `json:"SttlmInf"`
}

type PaymentID struct {
	InstrID    string `json:"InstrId,omitempty"`
	EndToEndID string `json:"EndToEndId"`
}

type Pacs008Transaction struct {
	PmtID          PaymentID            `json:"PmtId"`
	IntrBkSttlmAmt AmountBlock          `json:"IntrBkSttlmAmt"`
	InstdAmt       AmountBlock          `json:"InstdAmt"`
	XchgRate       float64              `json:"XchgRate"`
	ChrgBr         string               `json:"ChrgBr"`
	ChrgsInf       Charge               `json:"ChrgsInf"`
	InitgPty       Party                `json:"InitgPty"`
	Dbtr           Party                `json:"Dbtr"`
	DbtrAcct       Account              `json:"DbtrAcct"`
	DbtrAgt        Agent                `json:"DbtrAgt"`
	CdtrAgt        Agent                `json:"CdtrAgt"`
	Cdtr           Party                `json:"Cdtr"`
	CdtrAcct       Account              `json:"CdtrAcct"`
	Purp           Purpose              `json:"Purp"`
	SplmtryData    Pacs008Supplementary `json:"SplmtryData"`
}

type Pacs008Supplementary struct {
	Envlp Pacs008Envelope `json:"Envlp"`
}

type Pacs008Envelope struct {
	Doc Pacs008SupplementaryDoc `json:"Doc"`
}

type Pacs008SupplementaryDoc struct {
	Xprtn    string              `json:"Xprtn"`
	InitgPty InitiatingPartyData `json:"InitgPty"`
}

func (p *Pacs008) MessageID() string {
	return p.FIToFICstmrCdtTrf.GrpHdr.MsgID
}

func (p *Pacs008) EndToEndID() string {
	return p.FIToFICstmrCdtTrf.CdtTrfTxInf.PmtID.EndToEndID
}

func (p *Pacs008) Amount() float64 {
	return p.FIToFICstmrCdtTrf.CdtTrfTxInf.IntrBkSttlmAmt.Amt.Amt
}

func (p *Pacs008) DebtorAccount() string {
	return firstID(p.FIToFICstmrCdtTrf.CdtTrfTxInf.DbtrAcct.ID.Othr)
}

func (p *Pacs008) CreditorAccount() string {
	return firstID(p.FIToFICstmrCdtTrf.CdtTrfTxInf.CdtrAcct.ID.Othr)
}

func firstID(ids []GenericID) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[0].ID
}

func (p *Pacs008) DebtorName() string {
	return p.FIToFICstmrCdtTrf.CdtTrfTxInf.Dbtr.Nm
}
