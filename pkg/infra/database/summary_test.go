package database_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/infra/database"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/database/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func isDebtorQuery(q string) bool   { return strings.Contains(q, `"source"`) }
func isCreditorQuery(q string) bool { return strings.Contains(q, `"destination"`) }
func isTotalQuery(q string) bool    { return strings.HasPrefix(q, "SELECT COUNT(*) AS total") }

func TestSummaryService_GetTransactionSummary(t *testing.T) {
	strategy := new(mocks.QueryStrategy)
	strategy.On("Name").Return("FullDocker(tazama-postgres-1:event_history)")
	strategy.On("Execute", mock.Anything, mock.MatchedBy(isDebtorQuery), true).
		Return(database.QueryResult{Stdout: "+62285357007,12,1500000.50\n+62354252967,3,\n"}, nil).Once()
	strategy.On("Execute", mock.Anything, mock.MatchedBy(isCreditorQuery), true).
		Return(database.QueryResult{Stdout: "+62811111111,15,99\n"}, nil).Once()
	strategy.On("Execute", mock.Anything, mock.MatchedBy(isTotalQuery), false).
		Return(database.QueryResult{Stdout: " 15 \n"}, nil).Once()

	svc := database.NewSummaryService(quietLogger(), strategy, "transaction", time.Second)
	summary, err := svc.GetTransactionSummary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 15, summary.TotalTransactions)
	assert.Equal(t, "FullDocker(tazama-postgres-1:event_history)", summary.Strategy)
	require.Len(t, summary.Debtors, 2)
	assert.Equal(t, database.AccountSummary{Account: "+62285357007", TxCount: 12, TotalAmount: 1500000.5}, summary.Debtors[0])
	assert.Equal(t, 0.0, summary.Debtors[1].TotalAmount)
	require.Len(t, summary.Creditors, 1)
	strategy.AssertExpectations(t)
}

func TestSummaryService_QueriesQuoteTable(t *testing.T) {
	strategy := new(mocks.QueryStrategy)
	strategy.On("Name").Return("test")
	strategy.On("Execute", mock.Anything, mock.MatchedBy(func(q string) bool {
		return strings.Contains(q, `FROM "tx""; drop"`)
	}), true).Return(database.QueryResult{}, nil)
	strategy.On("Execute", mock.Anything, mock.Anything, false).Return(database.QueryResult{Stdout: "0"}, nil)

	svc := database.NewSummaryService(quietLogger(), strategy, `tx"; drop`, time.Second)
	summary, err := svc.GetTransactionSummary(context.Background())

	require.NoError(t, err)
	assert.Empty(t, summary.Debtors)
	assert.NotNil(t, summary.Debtors)
}

func TestSummaryService_Errors(t *testing.T) {
	tests := []struct {
		name    string
		result  database.QueryResult
		err     error
		message string
	}{
		{
			name:    "non zero exit",
			result:  database.QueryResult{ExitCode: 2, Stderr: "relation \"transaction\" does not exist"},
			message: "Debtor query failed: relation \"transaction\" does not exist",
		},
		{
			name:    "timeout",
			err:     context.DeadlineExceeded,
			message: "Database query timeout (>10s)",
		},
		{
			name:    "exec error",
			err:     errors.New("exec: \"docker\": executable file not found in $PATH"),
			message: "exec: \"docker\": executable file not found in $PATH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := new(mocks.QueryStrategy)
			strategy.On("Name").Return("LocalPostgres(localhost:5430/event_history)")
			strategy.On("Execute", mock.Anything, mock.Anything, true).Return(tt.result, tt.err).Once()

			svc := database.NewSummaryService(quietLogger(), strategy, "", 0)
			_, err := svc.GetTransactionSummary(context.Background())

			var summaryErr *database.SummaryError
			require.ErrorAs(t, err, &summaryErr)
			assert.Equal(t, tt.message, summaryErr.Message)
			assert.Equal(t, "LocalPostgres(localhost:5430/event_history)", summaryErr.Strategy)
		})
	}
}

func TestParseAccountRows(t *testing.T) {
	rows, err := database.ParseAccountRows("a,1,2.5\nnoise\n\nb,,\n")
	require.NoError(t, err)
	assert.Equal(t, []database.AccountSummary{
		{Account: "a", TxCount: 1, TotalAmount: 2.5},
		{Account: "b"},
	}, rows)

	_, err = database.ParseAccountRows("a,many,1")
	assert.Error(t, err)
}
