package websocket

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

const handshakeTimeout = 10 * time.Second

type Handler interface {
	Handle(c *websocket.Conn)
}

type HandlerTransport interface {
	GetTransport() HandlerTransport
}

// HandlerTransportDTO carries the streaming handlers and the upgrade settings
// shared by every log stream.
type HandlerTransportDTO struct {
	LogStreamHandler Handler
	Origins          []string
}

func (t *HandlerTransportDTO) GetTransport() HandlerTransport {
	return t
}

// LogStream upgrades the request and hands the connection to LogStreamHandler.
func (t *HandlerTransportDTO) LogStream() fiber.Handler {
	return websocket.New(t.LogStreamHandler.Handle, websocket.Config{
		HandshakeTimeout: handshakeTimeout,
		Origins:          t.origins(),
	})
}

func (t *HandlerTransportDTO) origins() []string {
	if len(t.Origins) == 0 {
		return []string{"*"}
	}
	return t.Origins
}
