package payload

import (
	"crypto/md5" // #nosec G501 -- used as a stable hash, not for security
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/iso20022"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	timestampLayout = "2006-01-02T15:04:05.000Z"
	dateLayout      = "2006-01-02"

	// InstructionID is the instruction id the TMS reference collection ships with.
	InstructionID = "5ab4fc7355de4ef8a75b78b00a681ed2"

	defaultPhoneID = "+62811111111"

	debtorAgentID     = "dfsp001"
	creditorAgentID   = "dfsp002"
	initDebtorAgent   = "fsp001"
	initCreditorAgent = "fsp002"

	initiationDebtorID   = "+27730975224"
	initiationCreditorID = "+27707650428"

	debtorBirthDate   = "1968-02-01"
	creditorBirthDate = "1935-05-08"

	geoLat  = "-6.2088"
	geoLong = "106.8456"

	minRandomAmount = 100
	maxRandomAmount = 10000
)

// Parties describes who pays whom. Zero values are replaced with generated data.
type Parties struct {
	DebtorAccount   string
	DebtorName      string
	CreditorAccount string
	CreditorName    string
	Amount          float64
	Purpose         string
}

type Generator struct {
	now   func() time.Time
	newID func() string
	faker *gofakeit.Faker
}

type Option func(*Generator)

func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func WithIDSource(newID func() string) Option {
	return func(g *Generator) {
		g.newID = newID
	}
}

// WithSeed makes names and random amounts reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.faker = gofakeit.New(seed)
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		now:   time.Now,
		newID: NewUUID,
		faker: gofakeit.New(0),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewUUID returns a v4 uuid without dashes.
func NewUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// AccountPhoneID maps an account to a stable +62 MSISDN so rule alerts can be
// attributed back to the account that produced them.
func AccountPhoneID(account string) string {
	if account == "" {
		return defaultPhoneID
	}
	sum := md5.Sum([]byte(account)) // #nosec G401
	prefix := hex.EncodeToString(sum[:])[:9]
	n, err := strconv.ParseUint(prefix, 16, 64)
	if err != nil {
		return defaultPhoneID
	}
	return fmt.Sprintf("+62%09d", n%1000000000)
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// RoundAmount rounds to two decimals the way the TMS stores amounts.
func RoundAmount(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

func (g *Generator) amount(requested float64) float64 {
	if requested > 0 {
		return requested
	}
	return RoundAmount(g.faker.Float64Range(minRandomAmount, maxRandomAmount))
}

// Digits returns n random decimal digits, used to make unique test accounts.
func (g *Generator) Digits(n int) string {
	return g.faker.Numerify(strings.Repeat("#", n))
}

func (g *Generator) nameParts(name, filler string) []string {
	if strings.TrimSpace(name) == "" {
		name = g.faker.Name()
	}
	parts := strings.Fields(name)
	if len(parts) < 2 {
		parts = append(parts, filler)
	}
	return parts
}

func splitName(parts []string) iso20022.NameParts {
	n := iso20022.NameParts{FrstNm: "Unknown", MrchntClssfctnCd: "BLANK"}
	if len(parts) > 0 {
		n.FrstNm = parts[0]
	}
	if len(parts) > 1 {
		n.MddlNm = parts[1]
	}
	if len(parts) > 2 {
		n.LastNm = parts[len(parts)-1]
	}
	return n
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func birth(date string) *iso20022.BirthInfo {
	return &iso20022.BirthInfo{BirthDt: date, CityOfBirth: "Unknown", CtryOfBirth: "ZZ"}
}

func geolocation() iso20022.Geolocation {
	return iso20022.Geolocation{Lat: geoLat, Long: geoLong}
}
