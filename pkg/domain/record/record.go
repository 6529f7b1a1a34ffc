package record

import (
	"context"
	"time"
)

const timestampLayout = "2006-01-02T15:04:05.000000"

// TestRecord is one row of the harness history.
type TestRecord struct {
	Timestamp      string  `json:"timestamp"`
	Type           string  `json:"type"`
	Status         int     `json:"status"`
	ResponseTimeMs float64 `json:"response_time_ms"`
	Success        bool    `json:"success"`
	MessageID      string  `json:"message_id"`
	EndToEndID     string  `json:"end_to_end_id,omitempty"`
	DebtorAccount  string  `json:"debtor_account,omitempty"`
	Amount         float64 `json:"amount,omitempty"`
}

func New(now time.Time, testType string, status int, elapsedMs float64, success bool, messageID string) TestRecord {
	return TestRecord{
		Timestamp:      now.Format(timestampLayout),
		Type:           testType,
		Status:         status,
		ResponseTimeMs: elapsedMs,
		Success:        success,
		MessageID:      messageID,
	}
}

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Append(ctx context.Context, r TestRecord) error
	// List returns the last limit records in insertion order; limit <= 0 returns all of them.
	List(ctx context.Context, limit int) ([]TestRecord, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}
