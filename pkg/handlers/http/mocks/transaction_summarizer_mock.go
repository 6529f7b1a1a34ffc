package mocks

import (
	"context"

	"github.com/NeuralTrust/TMSHarness/pkg/infra/database"
	"github.com/stretchr/testify/mock"
)

type TransactionSummarizer struct {
	mock.Mock
}

func (m *TransactionSummarizer) GetTransactionSummary(ctx context.Context) (*database.Summary, error) {
	ret := m.Called(ctx)
	res, _ := ret.Get(0).(*database.Summary)
	return res, ret.Error(1)
}

func (m *TransactionSummarizer) StrategyName() string {
	ret := m.Called()
	return ret.String(0)
}
