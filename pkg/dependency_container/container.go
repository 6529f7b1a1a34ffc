package dependency_container

import (
	"fmt"

	"github.com/NeuralTrust/TMSHarness/pkg/app/alerts"
	"github.com/NeuralTrust/TMSHarness/pkg/app/attack"
	"github.com/NeuralTrust/TMSHarness/pkg/app/batch"
	"github.com/NeuralTrust/TMSHarness/pkg/app/flow"
	"github.com/NeuralTrust/TMSHarness/pkg/app/history"
	"github.com/NeuralTrust/TMSHarness/pkg/app/logs"
	"github.com/NeuralTrust/TMSHarness/pkg/app/payload"
	"github.com/NeuralTrust/TMSHarness/pkg/app/transaction"
	"github.com/NeuralTrust/TMSHarness/pkg/common"
	"github.com/NeuralTrust/TMSHarness/pkg/config"
	"github.com/NeuralTrust/TMSHarness/pkg/domain/alert"
	"github.com/NeuralTrust/TMSHarness/pkg/domain/record"
	handlers "github.com/NeuralTrust/TMSHarness/pkg/handlers/http"
	wsHandlers "github.com/NeuralTrust/TMSHarness/pkg/handlers/websocket"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/cache"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/database"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/docker"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/httpx"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/repository"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/telemetry"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/telemetry/kafka"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/tms"
	infraWebsocket "github.com/NeuralTrust/TMSHarness/pkg/infra/websocket"
	"github.com/NeuralTrust/TMSHarness/pkg/server/middleware"
	"github.com/NeuralTrust/TMSHarness/pkg/version"
	"github.com/sirupsen/logrus"
)

const (
	HistoryBackendMemory = "memory"
	HistoryBackendRedis  = "redis"

	exportWorkers = 2
)

type Container struct {
	Cache                  cache.Client
	RecordExporter         *kafka.Exporter
	ExportWorker           telemetry.Worker
	HistoryRepository      record.Repository
	TMSClient              tms.Client
	DockerClient           *docker.Client
	HistoryService         history.Service
	TransactionService     transaction.Service
	FlowRunner             flow.Runner
	AttackService          attack.Service
	BatchRunner            batch.Runner
	LogsService            logs.Service
	SummaryService         *database.SummaryService
	HandlerTransport       handlers.HandlerTransport
	WSHandlerTransport     wsHandlers.HandlerTransport
	MockHandlerTransport   handlers.HandlerTransport
	WebSocketSemaphore     *infraWebsocket.Semaphore
	PanicRecoverMiddleware middleware.Middleware
	CORSMiddleware         middleware.Middleware
	MetricsMiddleware      middleware.Middleware
	WebSocketMiddleware    middleware.Middleware
}

type ContainerDI struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	// Sleep paces attack bursts and flow steps; nil uses the real clock.
	Sleep common.SleepFunc
}

func NewContainer(di ContainerDI) (*Container, error) {
	cfg := di.Cfg
	logger := di.Logger
	metricsEnabled := cfg.Metrics.Enabled

	c := &Container{}

	repo, err := c.historyRepository(cfg, logger)
	if err != nil {
		return nil, err
	}
	c.HistoryRepository = repo

	runner := docker.NewRunner(logger)
	c.DockerClient = docker.NewClient(runner, cfg.Docker)

	httpClient := httpx.NewFastHTTPClient(
		httpx.WithTimeout(cfg.TMS.Timeout),
		httpx.WithUserAgent(version.UserAgent()),
	)
	c.TMSClient = tms.NewClient(
		logger,
		httpClient,
		cfg.TMS,
		tms.WithContainerChecker(c.DockerClient),
		tms.WithMetrics(metricsEnabled),
	)

	catalog := alert.NewCatalog(alert.Thresholds{
		VelocityMinTx:        cfg.Rules.VelocityThreshold,
		StructuringMinTx:     cfg.Rules.StructuringMinTx,
		StructuringTolerance: 1 - cfg.Rules.StructuringSimilar,
		OutlierMultiplier:    cfg.Rules.OutlierMultiplier,
	})
	collector := alerts.NewCollector(logger, c.DockerClient, alerts.NewParser(catalog), metricsEnabled)
	generator := payload.NewGenerator()

	c.HistoryService = history.NewService(logger, repo, history.WithMetrics(metricsEnabled))
	c.TransactionService = transaction.NewService(
		logger,
		c.TMSClient,
		generator,
		c.HistoryService,
		collector,
		cfg,
		di.Sleep,
	)
	c.FlowRunner = flow.NewRunner(logger, c.TMSClient, generator, c.HistoryService, cfg.Flow.StepDelay, di.Sleep)
	c.AttackService = attack.NewService(
		logger,
		c.TMSClient,
		generator,
		c.HistoryService,
		collector,
		catalog,
		cfg.RuleContainer,
		cfg.Flow.AlertDelay,
		di.Sleep,
	)
	c.BatchRunner = batch.NewRunner(logger, c.TransactionService, c.AttackService, c.HistoryService, generator, batch.Sizes{
		Velocity:    cfg.Rules.VelocityBatchSize,
		Structuring: cfg.Rules.StructuringBatchSize,
		HighValue:   cfg.Rules.HighValueBatchSize,
	})
	c.LogsService = logs.NewService(logger, c.DockerClient, collector, cfg.RuleContainerNames())

	strategy, err := database.NewQueryStrategy(logger, cfg, runner, c.DockerClient)
	if err != nil {
		return nil, err
	}
	c.SummaryService = database.NewSummaryService(logger, strategy, cfg.Database.Table, cfg.Database.QueryTimeout)

	c.HandlerTransport = &handlers.HandlerTransportDTO{
		HealthHandler:           handlers.NewHealthHandler(logger, c.TMSClient),
		StatsHandler:            handlers.NewStatsHandler(logger, c.HistoryService),
		GetHistoryHandler:       handlers.NewGetHistoryHandler(logger, c.HistoryService),
		ClearHistoryHandler:     handlers.NewClearHistoryHandler(logger, c.HistoryService),
		VersionHandler:          handlers.NewGetVersionHandler(logger, c.TMSClient.BaseURL()),
		Pacs008Handler:          handlers.NewPacs008Handler(logger, c.TransactionService),
		QuickStatusHandler:      handlers.NewQuickStatusHandler(logger, c.TransactionService),
		FullTransactionHandler:  handlers.NewFullTransactionHandler(logger, c.TransactionService),
		Pain001Handler:          handlers.NewPain001Handler(logger, c.TransactionService),
		Pain013Handler:          handlers.NewPain013Handler(logger, c.TransactionService),
		E2EFlowHandler:          handlers.NewE2EFlowHandler(logger, c.FlowRunner),
		BatchHandler:            handlers.NewBatchHandler(logger, c.BatchRunner),
		VelocityHandler:         handlers.NewVelocityHandler(logger, c.AttackService),
		CreditorVelocityHandler: handlers.NewCreditorVelocityHandler(logger, c.AttackService),
		AttackScenarioHandler:   handlers.NewAttackScenarioHandler(logger, c.AttackService),
		FraudSimulationHandler:  handlers.NewFraudSimulationHandler(logger, c.AttackService),
		DBSummaryHandler:        handlers.NewDBSummaryHandler(logger, c.SummaryService),
		ContainerLogsHandler:    handlers.NewContainerLogsHandler(logger, c.LogsService),
		FraudAlertsHandler:      handlers.NewFraudAlertsHandler(logger, c.LogsService),
	}
	c.WSHandlerTransport = &wsHandlers.HandlerTransportDTO{
		LogStreamHandler: wsHandlers.NewLogStreamHandler(logger, c.LogsService, cfg.WebSocket),
		Origins:          cfg.Server.CORSOrigins,
	}
	c.MockHandlerTransport = &handlers.MockHandlerTransportDTO{
		EvaluatePacs008Handler: handlers.NewMockEvaluateHandler(logger),
		StatusHandler:          handlers.NewMockStatusHandler(),
	}

	c.WebSocketSemaphore = infraWebsocket.NewSemaphore(cfg.WebSocket.MaxConnections)
	c.PanicRecoverMiddleware = middleware.NewPanicRecoverMiddleware(logger)
	c.CORSMiddleware = middleware.NewCORSMiddleware(cfg.Server.CORSOrigins)
	c.MetricsMiddleware = middleware.NewMetricsMiddleware(logger, metricsEnabled)
	c.WebSocketMiddleware = middleware.NewWebsocketMiddleware(logger, c.WebSocketSemaphore)

	return c, nil
}

// historyRepository picks the configured store and wraps it with the Kafka
// exporter when export is enabled.
func (c *Container) historyRepository(cfg *config.Config, logger *logrus.Logger) (record.Repository, error) {
	var repo record.Repository
	switch cfg.History.Backend {
	case HistoryBackendMemory, "":
		repo = repository.NewMemoryHistoryRepository()
	case HistoryBackendRedis:
		client, err := cache.NewClient(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TLS:      cfg.Redis.TLS,
		}, logger)
		if err != nil {
			return nil, err
		}
		c.Cache = client
		repo = repository.NewRedisHistoryRepository(client.RedisClient(), cfg.History.Key)
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
	}

	if !cfg.Kafka.Enabled {
		return repo, nil
	}
	exporter, err := kafka.NewKafkaExporter().WithSettings(map[string]interface{}{
		"host":  cfg.Kafka.Host,
		"port":  cfg.Kafka.Port,
		"topic": cfg.Kafka.Topic,
	})
	if err != nil {
		c.closeCache(logger)
		return nil, err
	}
	c.RecordExporter = exporter
	c.ExportWorker = telemetry.NewWorker(logger, telemetry.DefaultQueueSize, exporter)
	c.ExportWorker.StartWorkers(exportWorkers)
	logger.WithField("topic", cfg.Kafka.Topic).Info("exporting test records to kafka")
	return repository.NewExportingHistoryRepository(repo, c.ExportWorker, logger), nil
}

func (c *Container) closeCache(logger *logrus.Logger) {
	if c.Cache == nil {
		return
	}
	if err := c.Cache.Close(); err != nil {
		logger.WithError(err).Warn("failed to close redis client")
	}
}

// Close releases the redis connection and flushes pending Kafka messages.
func (c *Container) Close(logger *logrus.Logger) {
	if c.ExportWorker != nil {
		c.ExportWorker.Shutdown()
	}
	if c.RecordExporter != nil {
		c.RecordExporter.Close()
	}
	c.closeCache(logger)
}
