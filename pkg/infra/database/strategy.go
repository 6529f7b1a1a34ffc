package database

import (
	"context"
	"fmt"
	"strconv"

	"github.com/NeuralTrust/TMSHarness/pkg/config"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/docker"
	"github.com/sirupsen/logrus"
)

const (
	StrategyDocker = "docker"
	StrategyLocal  = "local"
	StrategyNative = "native"

	dockerPsqlUser = "postgres"
)

// QueryResult carries psql style output: unaligned, tuples only, one row per line.
type QueryResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

//go:generate mockery --name=QueryStrategy --dir=. --output=./mocks --filename=query_strategy_mock.go --case=underscore --with-expecter
type QueryStrategy interface {
	// Execute runs query. csv switches the field separator to a comma.
	Execute(ctx context.Context, query string, csv bool) (QueryResult, error)
	Name() string
}

func psqlFormatArgs(csv bool) []string {
	if csv {
		return []string{"-t", "-A", "-F", ","}
	}
	return []string{"-t", "-A"}
}

// DockerExecStrategy runs psql inside the postgres container of the TMS stack.
type DockerExecStrategy struct {
	docker    *docker.Client
	container string
	database  string
}

func NewDockerExecStrategy(dockerClient *docker.Client, container, database string) *DockerExecStrategy {
	return &DockerExecStrategy{docker: dockerClient, container: container, database: database}
}

func (s *DockerExecStrategy) Execute(ctx context.Context, query string, csv bool) (QueryResult, error) {
	command := append([]string{"psql", "-U", dockerPsqlUser, "-d", s.database}, psqlFormatArgs(csv)...)
	command = append(command, "-c", query)
	res, err := s.docker.Exec(ctx, s.container, command...)
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{Stdout: res.Stdout, Stderr: res.Stderr, ExitCode: res.ExitCode}, nil
}

func (s *DockerExecStrategy) Name() string {
	return fmt.Sprintf("FullDocker(%s:%s)", s.container, s.database)
}

// LocalPsqlStrategy runs the host psql binary against a local postgres.
type LocalPsqlStrategy struct {
	runner   docker.Runner
	binary   string
	host     string
	port     int
	user     string
	database string
}

func NewLocalPsqlStrategy(runner docker.Runner, binary string, cfg config.DatabaseConfig) *LocalPsqlStrategy {
	if binary == "" {
		binary = "psql"
	}
	return &LocalPsqlStrategy{
		runner:   runner,
		binary:   binary,
		host:     cfg.Host,
		port:     cfg.Port,
		user:     cfg.User,
		database: cfg.DBName,
	}
}

func (s *LocalPsqlStrategy) Execute(ctx context.Context, query string, csv bool) (QueryResult, error) {
	args := []string{"-h", s.host, "-p", strconv.Itoa(s.port), "-U", s.user, "-d", s.database}
	args = append(args, psqlFormatArgs(csv)...)
	args = append(args, "-c", query)
	res, err := s.runner.Run(ctx, s.binary, args...)
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{Stdout: res.Stdout, Stderr: res.Stderr, ExitCode: res.ExitCode}, nil
}

func (s *LocalPsqlStrategy) Name() string {
	return fmt.Sprintf("LocalPostgres(%s:%d/%s)", s.host, s.port, s.database)
}

// NewQueryStrategy picks the strategy named by cfg.Database.Strategy.
func NewQueryStrategy(
	logger *logrus.Logger,
	cfg *config.Config,
	runner docker.Runner,
	dockerClient *docker.Client,
) (QueryStrategy, error) {
	switch cfg.Database.Strategy {
	case StrategyDocker, "":
		return NewDockerExecStrategy(dockerClient, cfg.Database.Container, cfg.Database.DBName), nil
	case StrategyLocal:
		return NewLocalPsqlStrategy(runner, cfg.Docker.PsqlBinary, cfg.Database), nil
	case StrategyNative:
		return NewNativeStrategy(logger, cfg.Database), nil
	default:
		return nil, fmt.Errorf("unknown database strategy %q", cfg.Database.Strategy)
	}
}
