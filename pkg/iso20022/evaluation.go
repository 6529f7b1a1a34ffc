package iso20022

// EvaluationResponse is what the mock TMS (and the ingestion layer of the real one) answers.
type EvaluationResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

const (
	MessageTypePacs008 = "pacs.008.001.10"
	MessageTypePacs002 = "pacs.002.001.12"
	MessageTypePain001 = "pain.001.001.11"
	MessageTypePain013 = "pain.013.001.09"
)
