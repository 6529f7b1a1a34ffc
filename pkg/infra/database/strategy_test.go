package database

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/config"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/docker"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/docker/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDockerExecStrategy(t *testing.T) {
	runner := new(mocks.Runner)
	runner.On("Run", context.Background(), "docker", []string{
		"exec", "-i", "tazama-postgres-1", "psql", "-U", "postgres", "-d", "event_history",
		"-t", "-A", "-F", ",", "-c", "SELECT 1",
	}).Return(docker.CommandResult{Stdout: "1\n"}, nil).Once()

	dockerClient := docker.NewClient(runner, config.DockerConfig{Binary: "docker", ContainerPrefix: "tazama-"})
	s := NewDockerExecStrategy(dockerClient, "tazama-postgres-1", "event_history")

	res, err := s.Execute(context.Background(), "SELECT 1", true)
	require.NoError(t, err)
	assert.Equal(t, "1\n", res.Stdout)
	assert.Equal(t, "FullDocker(tazama-postgres-1:event_history)", s.Name())
	runner.AssertExpectations(t)
}

func TestLocalPsqlStrategy(t *testing.T) {
	runner := new(mocks.Runner)
	runner.On("Run", context.Background(), "psql", []string{
		"-h", "localhost", "-p", "5430", "-U", "tazama", "-d", "event_history",
		"-t", "-A", "-c", "SELECT COUNT(*) FROM transaction;",
	}).Return(docker.CommandResult{ExitCode: 2, Stderr: "connection refused"}, nil).Once()

	s := NewLocalPsqlStrategy(runner, "", config.DatabaseConfig{
		Host: "localhost", Port: 5430, User: "tazama", DBName: "event_history",
	})

	res, err := s.Execute(context.Background(), "SELECT COUNT(*) FROM transaction;", false)
	require.NoError(t, err)
	assert.Equal(t, 2, res.ExitCode)
	assert.Equal(t, "LocalPostgres(localhost:5430/event_history)", s.Name())
}

func TestNewQueryStrategy(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	runner := new(mocks.Runner)
	dockerClient := docker.NewClient(runner, config.DockerConfig{})

	tests := []struct {
		strategy string
		want     interface{}
		wantErr  bool
	}{
		{strategy: "", want: &DockerExecStrategy{}},
		{strategy: StrategyDocker, want: &DockerExecStrategy{}},
		{strategy: StrategyLocal, want: &LocalPsqlStrategy{}},
		{strategy: StrategyNative, want: &NativeStrategy{}},
		{strategy: "mongo", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			cfg := &config.Config{Database: config.DatabaseConfig{Strategy: tt.strategy}}
			s, err := NewQueryStrategy(logger, cfg, runner, dockerClient)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, s)
		})
	}
}

func TestFormatRows(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	rows := [][]interface{}{
		{[]byte("+62285357007"), int64(12), nil},
		{"x", true, ts},
	}

	assert.Equal(t, "+62285357007,12,\nx,t,2025-03-14 09:26:53\n", formatRows(rows, ","))
	assert.Equal(t, "+62285357007|12|\nx|t|2025-03-14 09:26:53\n", formatRows(rows, "|"))
}
