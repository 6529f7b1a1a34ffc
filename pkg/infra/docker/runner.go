package docker

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/sirupsen/logrus"
)

type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Combined returns stdout followed by stderr. docker logs writes container
// stderr to its own stderr, so both halves matter when scanning logs.
func (r CommandResult) Combined() string {
	if r.Stderr == "" {
		return r.Stdout
	}
	if r.Stdout == "" {
		return r.Stderr
	}
	return r.Stdout + "\n" + r.Stderr
}

// Stream is a running command whose merged output is delivered line by line.
type Stream interface {
	Lines() <-chan string
	// Wait blocks until the command exits.
	Wait() error
	// Close kills the command if it is still running.
	Close() error
}

//go:generate mockery --name=Runner --dir=. --output=./mocks --filename=runner_mock.go --case=underscore --with-expecter
type Runner interface {
	Run(ctx context.Context, binary string, args ...string) (CommandResult, error)
	Stream(ctx context.Context, binary string, args ...string) (Stream, error)
}

type execRunner struct {
	logger *logrus.Logger
}

func NewRunner(logger *logrus.Logger) Runner {
	return &execRunner{logger: logger}
}

// Run executes binary and collects its output. A non-zero exit is reported
// in ExitCode rather than as an error so callers can surface stderr.
func (r *execRunner) Run(ctx context.Context, binary string, args ...string) (CommandResult, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...) // #nosec G204 -- binaries come from config
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.WithFields(logrus.Fields{
		"binary": binary,
		"args":   args,
	}).Debug("running command")

	err := cmd.Run()
	result := CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("failed to run %s: %w", binary, err)
	}
	return result, nil
}

func (r *execRunner) Stream(ctx context.Context, binary string, args ...string) (Stream, error) {
	ctx, cancel := context.WithCancel(ctx)
	pr, pw := io.Pipe()

	cmd := exec.CommandContext(ctx, binary, args...) // #nosec G204 -- binaries come from config
	cmd.Stdout = pw
	cmd.Stderr = pw
	if err := cmd.Start(); err != nil {
		cancel()
		_ = pw.Close()
		return nil, fmt.Errorf("failed to start %s: %w", binary, err)
	}

	s := &execStream{
		lines:  make(chan string, 64),
		exited: make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		s.err = cmd.Wait()
		_ = pw.Close()
		close(s.exited)
	}()

	go func() {
		defer close(s.lines)
		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case s.lines <- scanner.Text():
			case <-ctx.Done():
				_ = pr.Close()
				return
			}
		}
	}()

	r.logger.WithField("args", args).Debug("command stream started")
	return s, nil
}

type execStream struct {
	lines  chan string
	exited chan struct{}
	cancel context.CancelFunc
	err    error
	once   sync.Once
}

func (s *execStream) Lines() <-chan string {
	return s.lines
}

func (s *execStream) Wait() error {
	<-s.exited
	return s.err
}

func (s *execStream) Close() error {
	s.once.Do(s.cancel)
	return nil
}
