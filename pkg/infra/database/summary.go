package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	summaryLimit        = 20
	defaultQueryTimeout = 10 * time.Second
)

type AccountSummary struct {
	Account     string  `json:"account"`
	TxCount     int     `json:"tx_count"`
	TotalAmount float64 `json:"total_amount"`
}

type Summary struct {
	TotalTransactions int              `json:"total_transactions"`
	Debtors           []AccountSummary `json:"debtors"`
	Creditors         []AccountSummary `json:"creditors"`
	Strategy          string           `json:"strategy"`
}

// SummaryError is returned for any failed summary query and names the strategy used.
type SummaryError struct {
	Message  string
	Strategy string
}

func (e *SummaryError) Error() string {
	return e.Message
}

// SummaryService aggregates the TMS transaction table per debtor and creditor.
type SummaryService struct {
	logger   *logrus.Logger
	strategy QueryStrategy
	table    string
	timeout  time.Duration
}

func NewSummaryService(logger *logrus.Logger, strategy QueryStrategy, table string, timeout time.Duration) *SummaryService {
	if table == "" {
		table = "transaction"
	}
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &SummaryService{
		logger:   logger,
		strategy: strategy,
		table:    table,
		timeout:  timeout,
	}
}

// SetStrategy swaps the query strategy at runtime.
func (s *SummaryService) SetStrategy(strategy QueryStrategy) {
	s.strategy = strategy
}

func (s *SummaryService) StrategyName() string {
	return s.strategy.Name()
}

func (s *SummaryService) accountQuery(column string) string {
	col := pq.QuoteIdentifier(column)
	return fmt.Sprintf(
		"SELECT %[1]s AS account, COUNT(*) AS tx_count, SUM(amt) AS total_amount FROM %[2]s "+
			"WHERE %[1]s IS NOT NULL AND %[1]s != '' GROUP BY %[1]s ORDER BY tx_count DESC LIMIT %[3]d;",
		col, pq.QuoteIdentifier(s.table), summaryLimit,
	)
}

func (s *SummaryService) totalQuery() string {
	return fmt.Sprintf("SELECT COUNT(*) AS total FROM %s;", pq.QuoteIdentifier(s.table))
}

func (s *SummaryService) GetTransactionSummary(ctx context.Context) (*Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	debtorOut, err := s.run(ctx, "Debtor", s.accountQuery("source"), true)
	if err != nil {
		return nil, err
	}
	creditorOut, err := s.run(ctx, "Creditor", s.accountQuery("destination"), true)
	if err != nil {
		return nil, err
	}
	totalOut, err := s.run(ctx, "Total", s.totalQuery(), false)
	if err != nil {
		return nil, err
	}

	debtors, err := ParseAccountRows(debtorOut)
	if err != nil {
		return nil, s.fail(err.Error())
	}
	creditors, err := ParseAccountRows(creditorOut)
	if err != nil {
		return nil, s.fail(err.Error())
	}
	total := 0
	if trimmed := strings.TrimSpace(totalOut); trimmed != "" {
		total, err = strconv.Atoi(trimmed)
		if err != nil {
			return nil, s.fail(fmt.Sprintf("invalid total count %q", trimmed))
		}
	}

	return &Summary{
		TotalTransactions: total,
		Debtors:           debtors,
		Creditors:         creditors,
		Strategy:          s.strategy.Name(),
	}, nil
}

func (s *SummaryService) run(ctx context.Context, label, query string, csv bool) (string, error) {
	res, err := s.strategy.Execute(ctx, query, csv)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", s.fail(fmt.Sprintf("Database query timeout (>%s)", s.timeout))
		}
		s.logger.WithError(err).WithField("strategy", s.strategy.Name()).Error("summary query failed")
		return "", s.fail(err.Error())
	}
	if res.ExitCode != 0 {
		return "", s.fail(fmt.Sprintf("%s query failed: %s", label, res.Stderr))
	}
	return res.Stdout, nil
}

func (s *SummaryService) fail(message string) error {
	return &SummaryError{Message: message, Strategy: s.strategy.Name()}
}

// ParseAccountRows reads `account,tx_count,total_amount` lines. Lines without
// a comma are skipped; empty numeric fields count as zero.
func ParseAccountRows(out string) ([]AccountSummary, error) {
	rows := make([]AccountSummary, 0)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, ",") {
			continue
		}
		parts := strings.Split(line, ",")
		row := AccountSummary{Account: parts[0]}
		if parts[1] != "" {
			count, err := strconv.Atoi(parts[1])
			if err != nil {
				return nil, fmt.Errorf("invalid tx_count %q for account %s", parts[1], parts[0])
			}
			row.TxCount = count
		}
		if len(parts) > 2 && parts[2] != "" {
			amount, err := decimal.NewFromString(parts[2])
			if err != nil {
				return nil, fmt.Errorf("invalid total_amount %q for account %s", parts[2], parts[0])
			}
			row.TotalAmount = amount.InexactFloat64()
		}
		rows = append(rows, row)
	}
	return rows, nil
}
