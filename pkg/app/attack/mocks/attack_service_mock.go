package mocks

import (
	"context"

	"github.com/NeuralTrust/TMSHarness/pkg/app/attack"
	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) Velocity(ctx context.Context, req attack.VelocityRequest) (*attack.Result, error) {
	ret := m.Called(ctx, req)
	res, _ := ret.Get(0).(*attack.Result)
	return res, ret.Error(1)
}

func (m *Service) CreditorVelocity(ctx context.Context, req attack.CreditorRequest) (*attack.Result, error) {
	ret := m.Called(ctx, req)
	res, _ := ret.Get(0).(*attack.Result)
	return res, ret.Error(1)
}

func (m *Service) Scenario(ctx context.Context, req attack.ScenarioRequest) (*attack.Result, error) {
	ret := m.Called(ctx, req)
	res, _ := ret.Get(0).(*attack.Result)
	return res, ret.Error(1)
}

func (m *Service) FraudSimulation(ctx context.Context, req attack.SimulationRequest) (*attack.SimulationResult, error) {
	ret := m.Called(ctx, req)
	res, _ := ret.Get(0).(*attack.SimulationResult)
	return res, ret.Error(1)
}
