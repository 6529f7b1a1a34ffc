package server

import (
	"github.com/NeuralTrust/TMSHarness/pkg/config"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/prometheus"
	"github.com/NeuralTrust/TMSHarness/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	MockServerDI struct {
		Config  *config.Config
		Logger  *logrus.Logger
		Routers []router.ServerRouter
	}
	// MockServer stands in for the TMS and approves every pacs.008.
	MockServer struct {
		*BaseServer
	}
)

func NewMockServer(di MockServerDI) *MockServer {
	prometheus.Initialize(prometheus.MetricsConfig{Enabled: di.Config.Metrics.Enabled})

	s := &MockServer{
		BaseServer: NewBaseServer(di.Config, di.Logger),
	}
	s.setupHealthCheck("tms-mock")
	s.WithRouters(di.Routers...)
	return s
}

func (s *MockServer) Run() error {
	s.setupMetricsEndpoint()
	return s.listen(s.Config.Server.MockPort)
}
