package mocks

import (
	"context"

	"github.com/NeuralTrust/TMSHarness/pkg/infra/database"
	"github.com/stretchr/testify/mock"
)

type QueryStrategy struct {
	mock.Mock
}

func (m *QueryStrategy) Execute(ctx context.Context, query string, csv bool) (database.QueryResult, error) {
	ret := m.Called(ctx, query, csv)
	res, _ := ret.Get(0).(database.QueryResult) //nolint:errcheck
	return res, ret.Error(1)
}

func (m *QueryStrategy) Name() string {
	ret := m.Called()
	return ret.String(0)
}
