package mocks

import (
	"context"
	"sync"

	"github.com/NeuralTrust/TMSHarness/pkg/infra/docker"
	"github.com/stretchr/testify/mock"
)

type Runner struct {
	mock.Mock
}

func (m *Runner) Run(ctx context.Context, binary string, args ...string) (docker.CommandResult, error) {
	ret := m.Called(ctx, binary, args)
	res, _ := ret.Get(0).(docker.CommandResult) //nolint:errcheck
	return res, ret.Error(1)
}

func (m *Runner) Stream(ctx context.Context, binary string, args ...string) (docker.Stream, error) {
	ret := m.Called(ctx, binary, args)
	s, _ := ret.Get(0).(docker.Stream) //nolint:errcheck
	return s, ret.Error(1)
}

// FakeStream replays fixed lines and then stays open until closed.
type FakeStream struct {
	lines  chan string
	closed chan struct{}
	once   sync.Once
}

func NewFakeStream(lines ...string) *FakeStream {
	ch := make(chan string, len(lines))
	for _, l := range lines {
		ch <- l
	}
	return &FakeStream{lines: ch, closed: make(chan struct{})}
}

func (s *FakeStream) Lines() <-chan string {
	return s.lines
}

func (s *FakeStream) Wait() error {
	<-s.closed
	return nil
}

func (s *FakeStream) Close() error {
	s.once.Do(func() {
		close(s.closed)
	})
	return nil
}

// Closed is done once Close has been called.
func (s *FakeStream) Closed() <-chan struct{} {
	return s.closed
}
