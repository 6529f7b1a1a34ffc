package router

import (
	handlers "github.com/NeuralTrust/TMSHarness/pkg/handlers/http"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/tms"
	"github.com/NeuralTrust/TMSHarness/pkg/server/middleware"
	"github.com/gofiber/fiber/v2"
)

type mockRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    handlers.HandlerTransport
}

// NewMockRouter exposes only the pacs.008 evaluation endpoint, so every other
// message type answers 404 the way a partial TMS deployment does.
func NewMockRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport handlers.HandlerTransport,
) ServerRouter {
	return &mockRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *mockRouter) BuildRoutes(router *fiber.App) error {
	handlerTransport, ok := r.handlerTransport.GetTransport().(*handlers.MockHandlerTransportDTO)
	if !ok {
		return ErrInvalidHandlerTransport
	}

	r.middlewareTransport.Apply(router)

	router.Get(tms.HealthPath, handlerTransport.StatusHandler.Handle)
	router.Post(tms.Pacs008Path, handlerTransport.EvaluatePacs008Handler.Handle)
	return nil
}
