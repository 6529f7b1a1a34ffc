package iso20022

import "strings"

// StatusCode is a pacs.002 transaction status.
type StatusCode string

const (
	StatusAccepted          StatusCode = "ACCC"
	StatusAcceptedSettled   StatusCode = "ACSC"
	StatusRejected          StatusCode = "RJCT"
	StatusAcceptedTechnical StatusCode = "ACTC"
)

// ValidStatusCodes lists the codes a pacs.002 may carry in this harness.
var ValidStatusCodes = []StatusCode{StatusAccepted, StatusAcceptedSettled, StatusRejected}

func IsValidStatusCode(code string) bool {
	for _, c := range ValidStatusCodes {
		if string(c) == code {
			return true
		}
	}
	return false
}

// ParseStatusCode normalizes case and validates the code.
func ParseStatusCode(code string) (StatusCode, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if !IsValidStatusCode(normalized) {
		return "", false
	}
	return StatusCode(normalized), true
}

func (s StatusCode) String() string {
	return string(s)
}

func ValidStatusCodeNames() []string {
	names := make([]string, len(ValidStatusCodes))
	for i, c := range ValidStatusCodes {
		names[i] = string(c)
	}
	return names
}
