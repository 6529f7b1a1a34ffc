package logs

import (
	"context"
	"errors"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/app/alerts"
	"github.com/NeuralTrust/TMSHarness/pkg/domain/alert"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/docker"
	"github.com/sirupsen/logrus"
)

const (
	DefaultTail = 50
	alertTail   = 50

	invalidContainerMessage = "Invalid container name"
)

// Docker is the part of the docker client the log utilities use.
type Docker interface {
	ValidateContainer(name string) error
	Logs(ctx context.Context, container string, tail int, since time.Duration) (string, error)
	FollowLogs(ctx context.Context, container string, tail int) (docker.Stream, error)
}

type ContainerLogs struct {
	Container string `json:"container"`
	Status    string `json:"status"`
	Logs      string `json:"logs,omitempty"`
	Message   string `json:"message,omitempty"`
}

type FraudAlerts struct {
	Status            string             `json:"status"`
	FraudAlerts       []alert.FraudAlert `json:"fraud_alerts"`
	CheckedContainers []string           `json:"checked_containers"`
}

//go:generate mockery --name=Service --dir=. --output=./mocks --filename=logs_service_mock.go --case=underscore --with-expecter
type Service interface {
	ContainerLogs(ctx context.Context, container string, tail int) ContainerLogs
	// Follow validates container and starts streaming its log. The caller closes the stream.
	Follow(ctx context.Context, container string, tail int) (docker.Stream, error)
	FraudAlerts(ctx context.Context) FraudAlerts
}

type service struct {
	logger     *logrus.Logger
	docker     Docker
	collector  *alerts.Collector
	containers []string
}

func NewService(logger *logrus.Logger, dockerClient Docker, collector *alerts.Collector, ruleContainers []string) Service {
	return &service{
		logger:     logger,
		docker:     dockerClient,
		collector:  collector,
		containers: ruleContainers,
	}
}

func (s *service) ContainerLogs(ctx context.Context, container string, tail int) ContainerLogs {
	out := ContainerLogs{Container: container, Status: "error"}
	if err := s.docker.ValidateContainer(container); err != nil {
		out.Message = invalidContainerMessage
		return out
	}
	if tail <= 0 {
		tail = DefaultTail
	}

	text, err := s.docker.Logs(ctx, container, tail, 0)
	if err != nil {
		var exitErr *docker.ExitError
		if errors.As(err, &exitErr) {
			out.Message = exitErr.Stderr
		} else {
			out.Message = err.Error()
		}
		s.logger.WithError(err).WithField("container", container).Warn("failed to read container logs")
		return out
	}
	out.Status = "success"
	out.Logs = text
	return out
}

func (s *service) Follow(ctx context.Context, container string, tail int) (docker.Stream, error) {
	if err := s.docker.ValidateContainer(container); err != nil {
		return nil, err
	}
	return s.docker.FollowLogs(ctx, container, tail)
}

// FraudAlerts scans every rule container and keeps one alert per log line.
func (s *service) FraudAlerts(ctx context.Context) FraudAlerts {
	found := s.collector.Collect(ctx, alerts.Query{
		Containers: s.containers,
		Tail:       alertTail,
	})
	return FraudAlerts{
		Status:            "success",
		FraudAlerts:       alert.DedupeByRaw(found),
		CheckedContainers: s.containers,
	}
}
