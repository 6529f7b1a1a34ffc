package router

import (
	"github.com/NeuralTrust/TMSHarness/docs"
	"github.com/NeuralTrust/TMSHarness/pkg/config"
	handlers "github.com/NeuralTrust/TMSHarness/pkg/handlers/http"
	wsHandlers "github.com/NeuralTrust/TMSHarness/pkg/handlers/websocket"
	"github.com/NeuralTrust/TMSHarness/pkg/server/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/swaggo/swag"
)

const (
	SwaggerPath   = "/swagger.json"
	LogStreamPath = "/ws/logs/:container"
)

type clientRouter struct {
	middlewareTransport *middleware.Transport
	wsMiddleware        middleware.Middleware
	handlerTransport    handlers.HandlerTransport
	wsHandlerTransport  wsHandlers.HandlerTransport
	config              *config.Config
}

func NewClientRouter(
	middlewareTransport *middleware.Transport,
	wsMiddleware middleware.Middleware,
	handlerTransport handlers.HandlerTransport,
	wsHandlerTransport wsHandlers.HandlerTransport,
	cfg *config.Config,
) ServerRouter {
	return &clientRouter{
		middlewareTransport: middlewareTransport,
		wsMiddleware:        wsMiddleware,
		handlerTransport:    handlerTransport,
		wsHandlerTransport:  wsHandlerTransport,
		config:              cfg,
	}
}

func (r *clientRouter) BuildRoutes(router *fiber.App) error {
	handlerTransport, ok := r.handlerTransport.GetTransport().(*handlers.HandlerTransportDTO)
	if !ok {
		return ErrInvalidHandlerTransport
	}
	wsHandlerTransport, ok := r.wsHandlerTransport.GetTransport().(*wsHandlers.HandlerTransportDTO)
	if !ok {
		return ErrInvalidHandlerTransport
	}

	r.middlewareTransport.Apply(router)

	router.Get(SwaggerPath, func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	swaggerURL := r.config.Server.SwaggerURL
	if swaggerURL == "" {
		swaggerURL = SwaggerPath
	}
	router.Get("/docs/*", swagger.New(swagger.Config{
		URL: swaggerURL,
	}))

	router.Get("/version", handlerTransport.VersionHandler.Handle)

	router.Get(LogStreamPath,
		r.wsMiddleware.Middleware(),
		wsHandlerTransport.LogStream(),
	)

	api := router.Group("/api")
	{
		api.Get("/health", handlerTransport.HealthHandler.Handle)
		api.Get("/stats", handlerTransport.StatsHandler.Handle)
		api.Get("/history", handlerTransport.GetHistoryHandler.Handle)
		api.Delete("/history", handlerTransport.ClearHistoryHandler.Handle)

		api.Get("/logs/:container", handlerTransport.ContainerLogsHandler.Handle)
		api.Get("/fraud-alerts", handlerTransport.FraudAlertsHandler.Handle)

		tests := api.Group("/test")
		{
			tests.Post("/pacs008", handlerTransport.Pacs008Handler.Handle)
			tests.Post("/quick-status", handlerTransport.QuickStatusHandler.Handle)
			tests.Post("/full-transaction", handlerTransport.FullTransactionHandler.Handle)
			tests.Post("/pain001", handlerTransport.Pain001Handler.Handle)
			tests.Post("/pain013", handlerTransport.Pain013Handler.Handle)
			tests.Post("/e2e-flow", handlerTransport.E2EFlowHandler.Handle)
			tests.Post("/batch", handlerTransport.BatchHandler.Handle)

			tests.Post("/velocity", handlerTransport.VelocityHandler.Handle)
			tests.Post("/velocity-creditor", handlerTransport.CreditorVelocityHandler.Handle)
			tests.Post("/attack-scenario", handlerTransport.AttackScenarioHandler.Handle)
			tests.Post("/fraud-simulation", handlerTransport.FraudSimulationHandler.Handle)

			tests.Get("/db-summary", handlerTransport.DBSummaryHandler.Handle)
		}
	}
	return nil
}
