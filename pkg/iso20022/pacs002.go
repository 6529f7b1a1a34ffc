package iso20022

type Pacs002 struct {
	TxTp         string       `json:"TxTp"`
	FIToFIPmtSts FIToFIPmtSts `json:"FIToFIPmtSts"`
}

type FIToFIPmtSts struct {
	GrpHdr      Pacs002GroupHeader `json:"GrpHdr"`
	TxInfAndSts TxInfAndSts        `json:"TxInfAndSts"`
}

type Pacs002GroupHeader struct {
	MsgID   string `json:"MsgId"`
	CreDtTm string `json:"CreDtTm"`
}

type TxInfAndSts struct {
	OrgnlInstrID    string         `json:"OrgnlInstrId"`
	OrgnlEndToEndID string         `json:"OrgnlEndToEndId"`
	TxSts           StatusCode     `json:"TxSts"`
	ChrgsInf        []Charge       `json:"ChrgsInf"`
	AccptncDtTm     string         `json:"AccptncDtTm"`
	InstgAgt        Agent          `json:"InstgAgt"`
	InstdAgt        Agent          `json:"InstdAgt"`
	StsRsnInf       []StatusReason `json:"StsRsnInf,omitempty"`
}

type ReasonCode struct {
	Prtry string `json:"Prtry"`
}

type StatusReason struct {
	Rsn      ReasonCode `json:"Rsn"`
	AddtlInf []string   `json:"AddtlInf"`
}

const (
	RejectReasonAccountClosed = "AC04"
	RejectReasonText          = "Simulated Rejection: Account Closed"
)

func (p *Pacs002) MessageID() string {
	return p.FIToFIPmtSts.GrpHdr.MsgID
}

func (p *Pacs002) Status() StatusCode {
	return p.FIToFIPmtSts.TxInfAndSts.TxSts
}
