package logs

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/NeuralTrust/TMSHarness/pkg/app/alerts"
	"github.com/NeuralTrust/TMSHarness/pkg/config"
	"github.com/NeuralTrust/TMSHarness/pkg/domain/alert"
	domain "github.com/NeuralTrust/TMSHarness/pkg/domain/errors"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/docker"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/docker/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var ruleContainers = []string{"tazama-rule-901-1", "tazama-rule-902-1"}

func newService(runner *mocks.Runner) Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	client := docker.NewClient(runner, config.DockerConfig{Binary: "docker", ContainerPrefix: "tazama-"})
	collector := alerts.NewCollector(logger, client, alerts.NewParser(alert.NewCatalog(alert.Thresholds{})), false)
	return NewService(logger, client, collector, ruleContainers)
}

func TestService_ContainerLogs(t *testing.T) {
	tests := []struct {
		name      string
		container string
		tail      int
		setup     func(r *mocks.Runner)
		want      ContainerLogs
	}{
		{
			name:      "success with default tail",
			container: "tazama-tms",
			setup: func(r *mocks.Runner) {
				r.On("Run", mock.Anything, "docker", []string{"logs", "tazama-tms", "--tail", "50"}).
					Return(docker.CommandResult{Stdout: "started"}, nil).Once()
			},
			want: ContainerLogs{Container: "tazama-tms", Status: "success", Logs: "started"},
		},
		{
			name:      "invalid prefix",
			container: "postgres",
			want:      ContainerLogs{Container: "postgres", Status: "error", Message: "Invalid container name"},
		},
		{
			name:      "shell metacharacters",
			container: "tazama-x;rm",
			want:      ContainerLogs{Container: "tazama-x;rm", Status: "error", Message: "Invalid container name"},
		},
		{
			name:      "docker failure reports stderr",
			container: "tazama-gone",
			tail:      5,
			setup: func(r *mocks.Runner) {
				r.On("Run", mock.Anything, "docker", []string{"logs", "tazama-gone", "--tail", "5"}).
					Return(docker.CommandResult{ExitCode: 1, Stderr: "Error: No such container: tazama-gone"}, nil).Once()
			},
			want: ContainerLogs{Container: "tazama-gone", Status: "error", Message: "Error: No such container: tazama-gone"},
		},
		{
			name:      "docker missing",
			container: "tazama-tms",
			setup: func(r *mocks.Runner) {
				r.On("Run", mock.Anything, "docker", mock.Anything).
					Return(docker.CommandResult{}, errors.New(`exec: "docker": executable file not found in $PATH`)).Once()
			},
			want: ContainerLogs{Container: "tazama-tms", Status: "error", Message: `exec: "docker": executable file not found in $PATH`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := new(mocks.Runner)
			if tt.setup != nil {
				tt.setup(r)
			}

			got := newService(r).ContainerLogs(context.Background(), tt.container, tt.tail)

			assert.Equal(t, tt.want, got)
			r.AssertExpectations(t)
		})
	}
}

func TestService_Follow_RejectsInvalidContainer(t *testing.T) {
	r := new(mocks.Runner)

	_, err := newService(r).Follow(context.Background(), "redis", 20)

	require.ErrorIs(t, err, domain.ErrInvalidContainer)
	r.AssertNotCalled(t, "Stream", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_FraudAlerts_DedupesByLine(t *testing.T) {
	r := new(mocks.Runner)
	r.On("Run", mock.Anything, "docker", []string{"logs", "tazama-rule-901-1", "--tail", "50"}).
		Return(docker.CommandResult{Stdout: "rule 901 triggered\nrule 901 triggered\nhealthy"}, nil).Once()
	r.On("Run", mock.Anything, "docker", []string{"logs", "tazama-rule-902-1", "--tail", "50"}).
		Return(docker.CommandResult{ExitCode: 1, Stderr: "no such container"}, nil).Once()

	got := newService(r).FraudAlerts(context.Background())

	assert.Equal(t, "success", got.Status)
	assert.Equal(t, ruleContainers, got.CheckedContainers)
	require.Len(t, got.FraudAlerts, 1)
	assert.Equal(t, "tazama-rule-901-1", got.FraudAlerts[0].Container)
}
