package websocket

import (
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	logsmocks "github.com/NeuralTrust/TMSHarness/pkg/app/logs/mocks"
	"github.com/NeuralTrust/TMSHarness/pkg/common"
	"github.com/NeuralTrust/TMSHarness/pkg/config"
	domain "github.com/NeuralTrust/TMSHarness/pkg/domain/errors"
	infraWebsocket "github.com/NeuralTrust/TMSHarness/pkg/infra/websocket"
	"github.com/gofiber/fiber/v2"
	gorilla "github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeStream struct {
	lines  chan string
	once   sync.Once
	closed chan struct{}
}

func newFakeStream(buffer int) *fakeStream {
	return &fakeStream{lines: make(chan string, buffer), closed: make(chan struct{})}
}

func (s *fakeStream) Lines() <-chan string { return s.lines }
func (s *fakeStream) Wait() error          { <-s.closed; return nil }
func (s *fakeStream) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}

func startServer(t *testing.T, h Handler, sem *infraWebsocket.Semaphore) string {
	t.Helper()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/ws/logs/:container", func(c *fiber.Ctx) error {
		if !sem.TryAcquire() {
			return fiber.ErrTooManyRequests
		}
		c.Locals(common.WsSemaphoreLocalsKey, sem)
		return c.Next()
	}, (&HandlerTransportDTO{LogStreamHandler: h}).LogStream())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = app.Shutdown()
	})
	return "ws://" + ln.Addr().String()
}

func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestLogStreamHandler_ForwardsLines(t *testing.T) {
	svc := new(logsmocks.Service)
	stream := newFakeStream(3)
	stream.lines <- "first line\n"
	stream.lines <- "  second line  "
	svc.On("Follow", mock.Anything, "tazama-rule-901-1", 20).Return(stream, nil).Once()

	sem := infraWebsocket.NewSemaphore(2)
	h := NewLogStreamHandler(newTestLogger(), svc, config.WebSocketConfig{TailLines: 20, PingPeriod: time.Minute})
	base := startServer(t, h, sem)

	conn, _, err := gorilla.DefaultDialer.Dial(base+"/ws/logs/tazama-rule-901-1", nil)
	require.NoError(t, err)

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, first, err := conn.ReadMessage()
	require.NoError(t, err)
	_, second, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "first line", string(first))
	assert.Equal(t, "second line", string(second))

	require.NoError(t, conn.Close())

	select {
	case <-stream.closed:
	case <-time.After(5 * time.Second):
		t.Fatal("stream was not closed after client disconnect")
	}
	assert.Eventually(t, func() bool { return sem.InUse() == 0 }, 5*time.Second, 20*time.Millisecond)
	svc.AssertExpectations(t)
}

func TestLogStreamHandler_EndsWhenStreamEnds(t *testing.T) {
	svc := new(logsmocks.Service)
	stream := newFakeStream(1)
	stream.lines <- "only line"
	close(stream.lines)
	svc.On("Follow", mock.Anything, "tazama-tms", 20).Return(stream, nil).Once()

	sem := infraWebsocket.NewSemaphore(1)
	base := startServer(t, NewLogStreamHandler(newTestLogger(), svc, config.WebSocketConfig{}), sem)

	conn, _, err := gorilla.DefaultDialer.Dial(base+"/ws/logs/tazama-tms", nil)
	require.NoError(t, err)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "only line", string(msg))

	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}

func TestLogStreamHandler_InvalidContainer(t *testing.T) {
	svc := new(logsmocks.Service)
	svc.On("Follow", mock.Anything, "postgres", 20).Return(nil, domain.ErrInvalidContainer).Once()

	sem := infraWebsocket.NewSemaphore(1)
	base := startServer(t, NewLogStreamHandler(newTestLogger(), svc, config.WebSocketConfig{}), sem)

	conn, _, err := gorilla.DefaultDialer.Dial(base+"/ws/logs/postgres", nil)
	require.NoError(t, err)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var payload map[string]string
	require.NoError(t, conn.ReadJSON(&payload))
	assert.Equal(t, "Invalid container name", payload["error"])

	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, gorilla.IsCloseError(err, gorilla.CloseNormalClosure, gorilla.CloseAbnormalClosure) ||
		strings.Contains(err.Error(), "EOF") || strings.Contains(err.Error(), "close"))
	assert.Eventually(t, func() bool { return sem.InUse() == 0 }, 5*time.Second, 20*time.Millisecond)
}
