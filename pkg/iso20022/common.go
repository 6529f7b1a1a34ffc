// Package iso20022 holds the subset of ISO 20022 message shapes the TMS evaluates.
// Field names follow the ISO tag names because the TMS matches on them verbatim.
package iso20022

const (
	CurrencyIDR = "IDR"
	CurrencyUSD = "USD"

	SchemeMSISDN    = "MSISDN"
	SchemeTazamaEID = "TAZAMA_EID"

	ChargeBearerDebtor = "DEBT"
	PurposeP2P         = "MP2P"
	InitiatorConsumer  = "CONSUMER"
)

type Amount struct {
	Amt float64 `json:"Amt"`
	Ccy string  `json:"Ccy"`
}

// AmountBlock is the {"Amt": {"Amt": n, "Ccy": c}} nesting used across messages.
type AmountBlock struct {
	Amt Amount `json:"Amt"`
}

type SchemeName struct {
	Prtry string `json:"Prtry"`
}

type GenericID struct {
	ID      string     `json:"Id"`
	SchmeNm SchemeName `json:"SchmeNm"`
}

type BirthInfo struct {
	BirthDt     string `json:"BirthDt"`
	CityOfBirth string `json:"CityOfBirth"`
	CtryOfBirth string `json:"CtryOfBirth"`
}

type PrivateID struct {
	DtAndPlcOfBirth *BirthInfo  `json:"DtAndPlcOfBirth,omitempty"`
	Othr            []GenericID `json:"Othr"`
}

type PartyID struct {
	PrvtID PrivateID `json:"PrvtId"`
}

type ContactDetails struct {
	MobNb string `json:"MobNb"`
}

type Party struct {
	Nm       string         `json:"Nm"`
	ID       PartyID        `json:"Id"`
	CtctDtls ContactDetails `json:"CtctDtls"`
}

type AccountID struct {
	Othr []GenericID `json:"Othr"`
}

type Account struct {
	ID AccountID `json:"Id"`
	Nm string    `json:"Nm"`
}

type ClearingMember struct {
	MmbID string `json:"MmbId"`
}

type FinancialInstitutionID struct {
	ClrSysMmbID ClearingMember `json:"ClrSysMmbId"`
}

type Agent struct {
	FinInstnID FinancialInstitutionID `json:"FinInstnId"`
}

type Charge struct {
	Amt Amount `json:"Amt"`
	Agt Agent  `json:"Agt"`
}

type Purpose struct {
	Cd string `json:"Cd"`
}

type RegulatoryDetails struct {
	Tp string `json:"Tp"`
	Cd string `json:"Cd"`
}

type RegulatoryReporting struct {
	Dtls RegulatoryDetails `json:"Dtls"`
}

type RemittanceInfo struct {
	Ustrd string `json:"Ustrd"`
}

type Geolocation struct {
	Lat  string `json:"Lat"`
	Long string `json:"Long"`
}

type InitiatingPartyData struct {
	InitrTp string      `json:"InitrTp,omitempty"`
	Glctn   Geolocation `json:"Glctn"`
}

type DateTime struct {
	Dt   string `json:"Dt,omitempty"`
	DtTm string `json:"DtTm"`
}

// NewAgent builds an agent identified by its clearing system member id.
func NewAgent(memberID string) Agent {
	return Agent{FinInstnID: FinancialInstitutionID{ClrSysMmbID: ClearingMember{MmbID: memberID}}}
}

// NewParty builds a private person identified by one scheme id that doubles as the mobile number.
func NewParty(name, id, scheme string, birth *BirthInfo) Party {
	return Party{
		Nm: name,
		ID: PartyID{PrvtID: PrivateID{
			DtAndPlcOfBirth: birth,
			Othr:            []GenericID{{ID: id, SchmeNm: SchemeName{Prtry: scheme}}},
		}},
		CtctDtls: ContactDetails{MobNb: id},
	}
}

func NewAccount(name, id, scheme string) Account {
	return Account{
		ID: AccountID{Othr: []GenericID{{ID: id, SchmeNm: SchemeName{Prtry: scheme}}}},
		Nm: name,
	}
}

func NewAmountBlock(amount float64, currency string) AmountBlock {
	return AmountBlock{Amt: Amount{Amt: amount, Ccy: currency}}
}
