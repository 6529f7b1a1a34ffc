package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport interface {
	GetTransport() HandlerTransport
}

type HandlerTransportDTO struct {
	// Status
	HealthHandler       Handler
	StatsHandler        Handler
	GetHistoryHandler   Handler
	ClearHistoryHandler Handler
	VersionHandler      Handler

	// Single-message tests
	Pacs008Handler         Handler
	QuickStatusHandler     Handler
	FullTransactionHandler Handler
	Pain001Handler         Handler
	Pain013Handler         Handler

	// Flows
	E2EFlowHandler Handler
	BatchHandler   Handler

	// Attacks
	VelocityHandler         Handler
	CreditorVelocityHandler Handler
	AttackScenarioHandler   Handler
	FraudSimulationHandler  Handler

	// Utilities
	DBSummaryHandler     Handler
	ContainerLogsHandler Handler
	FraudAlertsHandler   Handler
}

func (t *HandlerTransportDTO) GetTransport() HandlerTransport {
	return t
}

// MockHandlerTransportDTO holds the mock TMS handlers.
type MockHandlerTransportDTO struct {
	EvaluatePacs008Handler Handler
	StatusHandler          Handler
}

func (t *MockHandlerTransportDTO) GetTransport() HandlerTransport {
	return t
}
