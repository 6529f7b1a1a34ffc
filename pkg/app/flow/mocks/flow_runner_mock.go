package mocks

import (
	"context"

	"github.com/NeuralTrust/TMSHarness/pkg/app/flow"
	"github.com/stretchr/testify/mock"
)

type Runner struct {
	mock.Mock
}

func (m *Runner) Run(ctx context.Context, req flow.Request) (*flow.Result, error) {
	ret := m.Called(ctx, req)
	res, _ := ret.Get(0).(*flow.Result)
	return res, ret.Error(1)
}
