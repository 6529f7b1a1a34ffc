package middleware

import (
	"github.com/NeuralTrust/TMSHarness/pkg/common"
	infra "github.com/NeuralTrust/TMSHarness/pkg/infra/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type websocketMiddleware struct {
	logger    *logrus.Logger
	semaphore *infra.Semaphore
}

// NewWebsocketMiddleware rejects non-upgrade requests and caps concurrent
// streams. The handler releases the slot stored in Locals.
func NewWebsocketMiddleware(logger *logrus.Logger, semaphore *infra.Semaphore) Middleware {
	return &websocketMiddleware{
		logger:    logger,
		semaphore: semaphore,
	}
}

func (m *websocketMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if !m.semaphore.TryAcquire() {
			m.logger.WithField("max", m.semaphore.Capacity()).Warn("maximum websocket connections reached, rejecting connection")
			return fiber.ErrTooManyRequests
		}
		c.Locals(common.WsSemaphoreLocalsKey, m.semaphore)
		if err := c.Next(); err != nil {
			m.semaphore.Release()
			return err
		}
		return nil
	}
}
