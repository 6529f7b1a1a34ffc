package docker

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/config"
	domain "github.com/NeuralTrust/TMSHarness/pkg/domain/errors"
)

// ExitError is a docker command that ran but exited non-zero.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("docker %s exited with %d: %s", e.Command, e.Code, strings.TrimSpace(e.Stderr))
}

// Client wraps the docker CLI calls the harness needs.
type Client struct {
	runner Runner
	binary string
	prefix string
}

func NewClient(runner Runner, cfg config.DockerConfig) *Client {
	binary := cfg.Binary
	if binary == "" {
		binary = "docker"
	}
	return &Client{
		runner: runner,
		binary: binary,
		prefix: cfg.ContainerPrefix,
	}
}

// ValidateContainer only lets through names that belong to the TMS stack.
func (c *Client) ValidateContainer(name string) error {
	if name == "" || !strings.HasPrefix(name, c.prefix) || strings.ContainsAny(name, " ;|&$`") {
		return domain.ErrInvalidContainer
	}
	return nil
}

// ContainerStatus returns the `docker ps` status column for containers whose name matches filter.
func (c *Client) ContainerStatus(ctx context.Context, filter string) (string, error) {
	res, err := c.runner.Run(ctx, c.binary, "ps", "--filter", "name="+filter, "--format", "{{.Status}}")
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("docker ps exited with %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return strings.TrimSpace(res.Stdout), nil
}

// IsRunning reports whether any matching container is Up.
func (c *Client) IsRunning(ctx context.Context, filter string) (bool, string) {
	status, err := c.ContainerStatus(ctx, filter)
	if err != nil {
		return false, ""
	}
	return strings.Contains(status, "Up"), status
}

// Logs returns the last tail lines of a container log. since limits the
// window when positive.
func (c *Client) Logs(ctx context.Context, container string, tail int, since time.Duration) (string, error) {
	args := []string{"logs", container, "--tail", strconv.Itoa(tail)}
	if since > 0 {
		args = append(args, "--since", fmt.Sprintf("%ds", int(since.Seconds())))
	}
	res, err := c.runner.Run(ctx, c.binary, args...)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", &ExitError{Command: "logs " + container, Code: res.ExitCode, Stderr: res.Stderr}
	}
	return res.Combined(), nil
}

func (c *Client) FollowLogs(ctx context.Context, container string, tail int) (Stream, error) {
	return c.runner.Stream(ctx, c.binary, "logs", "--follow", "--tail", strconv.Itoa(tail), container)
}

// Exec runs a command inside a container with stdin attached, as `docker exec -i`.
func (c *Client) Exec(ctx context.Context, container string, command ...string) (CommandResult, error) {
	args := append([]string{"exec", "-i", container}, command...)
	return c.runner.Run(ctx, c.binary, args...)
}
