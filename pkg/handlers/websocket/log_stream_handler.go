package websocket

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/app/logs"
	"github.com/NeuralTrust/TMSHarness/pkg/common"
	"github.com/NeuralTrust/TMSHarness/pkg/config"
	domain "github.com/NeuralTrust/TMSHarness/pkg/domain/errors"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/prometheus"
	infraWebsocket "github.com/NeuralTrust/TMSHarness/pkg/infra/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	writeWait         = 10 * time.Second
	defaultPingPeriod = 30 * time.Second
	defaultPongWait   = 45 * time.Second
	defaultTailLines  = 20
)

type logStreamHandler struct {
	logger     *logrus.Logger
	logs       logs.Service
	tail       int
	pingPeriod time.Duration
	pongWait   time.Duration
}

// NewLogStreamHandler follows a container log and forwards every line as a
// text frame until either side goes away.
func NewLogStreamHandler(logger *logrus.Logger, logsSvc logs.Service, cfg config.WebSocketConfig) Handler {
	h := &logStreamHandler{
		logger:     logger,
		logs:       logsSvc,
		tail:       cfg.TailLines,
		pingPeriod: cfg.PingPeriod,
		pongWait:   cfg.PongWait,
	}
	if h.tail <= 0 {
		h.tail = defaultTailLines
	}
	if h.pingPeriod <= 0 {
		h.pingPeriod = defaultPingPeriod
	}
	if h.pongWait <= h.pingPeriod {
		h.pongWait = h.pingPeriod + h.pingPeriod/2
		if h.pongWait <= 0 {
			h.pongWait = defaultPongWait
		}
	}
	return h
}

func (h *logStreamHandler) Handle(c *websocket.Conn) {
	if semaphore, ok := c.Locals(common.WsSemaphoreLocalsKey).(*infraWebsocket.Semaphore); ok {
		defer semaphore.Release()
	}
	defer func() {
		_ = c.Close()
	}()

	container := c.Params("container")
	log := h.logger.WithField("container", container)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := h.logs.Follow(ctx, container, h.tail)
	if err != nil {
		message := err.Error()
		if errors.Is(err, domain.ErrInvalidContainer) {
			message = "Invalid container name"
		}
		log.WithError(err).Warn("log stream rejected")
		_ = c.WriteJSON(fiber.Map{"error": message})
		return
	}
	defer func() {
		_ = stream.Close()
	}()

	prometheus.LogStreams.Inc()
	defer prometheus.LogStreams.Dec()
	log.Info("log stream opened")

	if err := c.SetReadDeadline(time.Now().Add(h.pongWait)); err != nil {
		log.WithError(err).Error("failed to set read deadline")
		return
	}
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(h.pongWait))
	})

	// The client never sends anything useful; reading only detects the disconnect.
	go func() {
		defer cancel()
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()

	lines := stream.Lines()
	for {
		select {
		case <-ctx.Done():
			log.Info("log stream client disconnected")
			return
		case line, ok := <-lines:
			if !ok {
				log.Info("log stream ended")
				return
			}
			if err := c.WriteMessage(websocket.TextMessage, []byte(strings.TrimSpace(line))); err != nil {
				log.WithError(err).Debug("failed to forward log line")
				return
			}
		case <-ticker.C:
			if err := c.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
