package mocks

import (
	"context"

	"github.com/NeuralTrust/TMSHarness/pkg/app/logs"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/docker"
	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) ContainerLogs(ctx context.Context, container string, tail int) logs.ContainerLogs {
	ret := m.Called(ctx, container, tail)
	return ret.Get(0).(logs.ContainerLogs) //nolint:errcheck
}

func (m *Service) Follow(ctx context.Context, container string, tail int) (docker.Stream, error) {
	ret := m.Called(ctx, container, tail)
	s, _ := ret.Get(0).(docker.Stream)
	return s, ret.Error(1)
}

func (m *Service) FraudAlerts(ctx context.Context) logs.FraudAlerts {
	ret := m.Called(ctx)
	return ret.Get(0).(logs.FraudAlerts) //nolint:errcheck
}
