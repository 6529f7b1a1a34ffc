package mocks

import (
	"context"

	"github.com/NeuralTrust/TMSHarness/pkg/infra/tms"
	"github.com/NeuralTrust/TMSHarness/pkg/iso20022"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (m *Client) SendPacs008(ctx context.Context, payload *iso20022.Pacs008) tms.Result {
	ret := m.Called(ctx, payload)
	return ret.Get(0).(tms.Result) //nolint:errcheck
}

func (m *Client) SendPacs002(ctx context.Context, payload *iso20022.Pacs002) tms.Result {
	ret := m.Called(ctx, payload)
	return ret.Get(0).(tms.Result) //nolint:errcheck
}

func (m *Client) SendPain001(ctx context.Context, payload *iso20022.Pain001) tms.Result {
	ret := m.Called(ctx, payload)
	return ret.Get(0).(tms.Result) //nolint:errcheck
}

func (m *Client) SendPain013(ctx context.Context, payload *iso20022.Pain013) tms.Result {
	ret := m.Called(ctx, payload)
	return ret.Get(0).(tms.Result) //nolint:errcheck
}

func (m *Client) CheckHealth(ctx context.Context) tms.HealthReport {
	ret := m.Called(ctx)
	return ret.Get(0).(tms.HealthReport) //nolint:errcheck
}

func (m *Client) BaseURL() string {
	ret := m.Called()
	return ret.String(0)
}
