package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NeuralTrust/TMSHarness/pkg/config"
	"github.com/NeuralTrust/TMSHarness/pkg/dependency_container"
	infraLogger "github.com/NeuralTrust/TMSHarness/pkg/infra/logger"
	"github.com/NeuralTrust/TMSHarness/pkg/server"
	"github.com/NeuralTrust/TMSHarness/pkg/server/middleware"
	"github.com/NeuralTrust/TMSHarness/pkg/server/router"
	"github.com/joho/godotenv"
)

const (
	serverTypeClient = "client"
	serverTypeMock   = "mock"
)

func main() {
	serverType := getServerType()
	envFile := os.Getenv("ENV_FILE")

	if envFile == "" {
		envFile = ".env"
	}
	err := godotenv.Load(envFile)
	if err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger(serverType)

	if err := config.Load(os.Getenv("CONFIG_PATH")); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	container, err := dependency_container.NewContainer(dependency_container.ContainerDI{
		Cfg:    cfg,
		Logger: logger,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer container.Close(logger)

	var srv server.Server
	switch serverType {
	case serverTypeMock:
		mockRouter := router.NewMockRouter(
			middleware.NewTransport(container.PanicRecoverMiddleware, container.MetricsMiddleware),
			container.MockHandlerTransport,
		)
		srv = server.NewMockServer(server.MockServerDI{
			Config:  cfg,
			Logger:  logger,
			Routers: []router.ServerRouter{mockRouter},
		})
	default:
		clientRouter := router.NewClientRouter(
			middleware.NewTransport(
				container.PanicRecoverMiddleware,
				container.CORSMiddleware,
				container.MetricsMiddleware,
			),
			container.WebSocketMiddleware,
			container.HandlerTransport,
			container.WSHandlerTransport,
			cfg,
		)
		srv = server.NewClientServer(server.ClientServerDI{
			Config:  cfg,
			Logger:  logger,
			Routers: []router.ServerRouter{clientRouter},
		})
		logger.WithField("tms_url", container.TMSClient.BaseURL()).Info("client configured")
	}

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		fmt.Println("error shutting down server:", err)
		container.Close(logger)
		os.Exit(1)
	}
	fmt.Println("server gracefully stopped")
}

func getServerType() string {
	if len(os.Args) > 1 && os.Args[1] == serverTypeMock {
		return serverTypeMock
	}
	return serverTypeClient
}
