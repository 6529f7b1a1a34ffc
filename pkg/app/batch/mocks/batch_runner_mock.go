package mocks

import (
	"context"

	"github.com/NeuralTrust/TMSHarness/pkg/app/batch"
	"github.com/stretchr/testify/mock"
)

type Runner struct {
	mock.Mock
}

func (m *Runner) Run(ctx context.Context, scenarios []string) (*batch.Result, error) {
	ret := m.Called(ctx, scenarios)
	res, _ := ret.Get(0).(*batch.Result)
	return res, ret.Error(1)
}
