package server

import (
	"github.com/NeuralTrust/TMSHarness/pkg/config"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/prometheus"
	"github.com/NeuralTrust/TMSHarness/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	ClientServerDI struct {
		Config  *config.Config
		Logger  *logrus.Logger
		Routers []router.ServerRouter
	}
	// ClientServer is the API test client that drives the TMS.
	ClientServer struct {
		*BaseServer
	}
)

func NewClientServer(di ClientServerDI) *ClientServer {
	prometheus.Initialize(prometheus.MetricsConfig{Enabled: di.Config.Metrics.Enabled})

	s := &ClientServer{
		BaseServer: NewBaseServer(di.Config, di.Logger),
	}
	s.setupHealthCheck("tms-harness-client")
	s.WithRouters(di.Routers...)
	return s
}

func (s *ClientServer) Run() error {
	s.setupMetricsEndpoint()
	return s.listen(s.Config.Server.Port)
}
