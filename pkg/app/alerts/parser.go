package alerts

import (
	"regexp"
	"strings"

	"github.com/NeuralTrust/TMSHarness/pkg/domain/alert"
	"github.com/valyala/fastjson"
)

const (
	maxDescLength    = 200
	maxSnippetLength = 500
	defaultTitle     = "Fraud Alert"
)

var (
	ruleIDPattern    = regexp.MustCompile(`(?i)rule[-_ ]?(\d{3})`)
	timestampPattern = regexp.MustCompile(`^\[?(\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(?:\.\d+)?Z?)`)

	keywords = []string{
		"fraud",
		"alert",
		"triggered",
		"suspicious",
		"breach",
		"interdiction",
	}
)

// Parser turns rule processor log output into alerts.
type Parser struct {
	catalog alert.Catalog
	pool    fastjson.ParserPool
}

func NewParser(catalog alert.Catalog) *Parser {
	return &Parser{catalog: catalog}
}

// Parse scans logs line by line. container is used to attribute lines that
// carry no rule id of their own. reqCtx may be nil.
func (p *Parser) Parse(container, logs string, reqCtx *alert.RequestContext) []alert.FraudAlert {
	out := make([]alert.FraudAlert, 0)
	for _, line := range strings.Split(logs, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		a, ok := p.parseLine(line)
		if !ok {
			continue
		}
		a.Container = container
		if a.RuleID == "" {
			a.RuleID = ruleFromText(container)
		}
		p.describe(&a)
		a.RequestContext = reqCtx
		out = append(out, a)
	}
	return out
}

func (p *Parser) parseLine(line string) (alert.FraudAlert, bool) {
	if strings.HasPrefix(line, "{") {
		if a, ok, parsed := p.parseJSON(line); parsed {
			return a, ok
		}
	}
	if !hasKeyword(line) {
		return alert.FraudAlert{}, false
	}
	a := alert.FraudAlert{
		Raw:    line,
		Desc:   truncate(line, maxDescLength),
		RuleID: ruleFromText(line),
	}
	if m := timestampPattern.FindStringSubmatch(line); m != nil {
		a.Timestamp = m[1]
	}
	return a, true
}

// parseJSON reports parsed=false when the line is not valid JSON so the
// caller can fall back to a text scan.
func (p *Parser) parseJSON(line string) (a alert.FraudAlert, ok bool, parsed bool) {
	parser := p.pool.Get()
	defer p.pool.Put(parser)

	v, err := parser.Parse(line)
	if err != nil {
		return alert.FraudAlert{}, false, false
	}

	msg := firstString(v, "message", "msg")
	subRule := firstString(v, "subRuleRef")
	if nested := v.Get("result"); nested != nil && subRule == "" {
		subRule = firstString(nested, "subRuleRef")
	}

	isRuleResult := subRule != "" && !strings.HasPrefix(subRule, ".x") && subRule != ".err"
	if !hasKeyword(msg) && !isRuleResult {
		return alert.FraudAlert{}, false, true
	}

	a = alert.FraudAlert{
		Raw:       line,
		Desc:      truncate(msg, maxDescLength),
		Timestamp: firstString(v, "time", "timestamp", "@timestamp"),
	}
	ruleRef := firstString(v, "ruleId", "ruleRef", "id")
	if ruleRef == "" {
		ruleRef = msg
	}
	a.RuleID = ruleFromText(ruleRef)
	if a.RuleID == "" {
		a.RuleID = ruleFromDigits(ruleRef)
	}
	if subRule != "" {
		if a.Desc == "" {
			a.Desc = "Rule result " + subRule
		} else {
			a.Desc += " (" + subRule + ")"
		}
	}
	return a, true, true
}

func (p *Parser) describe(a *alert.FraudAlert) {
	a.Title = defaultTitle
	a.LogSnippet = truncate(a.Raw, maxSnippetLength)
	rule, ok := p.catalog.Lookup(a.RuleID)
	if !ok {
		return
	}
	a.Title = rule.Name
	if a.Desc == "" {
		a.Desc = rule.TriggerCondition
	}
	a.RuleDetail = &rule
}

func hasKeyword(s string) bool {
	if s == "" {
		return false
	}
	lower := strings.ToLower(s)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func ruleFromText(s string) string {
	if m := ruleIDPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// ruleFromDigits handles refs like "901@1.0.0".
func ruleFromDigits(s string) string {
	if len(s) >= 3 && isDigits(s[:3]) && (len(s) == 3 || !isDigits(s[3:4])) {
		return s[:3]
	}
	return ""
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func firstString(v *fastjson.Value, keys ...string) string {
	for _, k := range keys {
		if b := v.GetStringBytes(k); len(b) > 0 {
			return string(b)
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
