package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/NeuralTrust/TMSHarness/pkg/config"
	"github.com/NeuralTrust/TMSHarness/pkg/dependency_container"
	infraLogger "github.com/NeuralTrust/TMSHarness/pkg/infra/logger"
	"github.com/NeuralTrust/TMSHarness/pkg/version"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	configPath string
	target     string
	tenant     string
	verbose    bool
	jsonOutput bool
}

// app is built lazily so --help never touches docker or the network.
type app struct {
	flags     globalFlags
	logger    *logrus.Logger
	closeLog  func()
	container *dependency_container.Container
}

func main() {
	_ = godotenv.Load(envFile())

	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "simulator",
		Short:         "Replay fraud patterns and message flows against a TMS",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "Directory holding config.yaml")
	pf.StringVarP(&a.flags.target, "target", "t", "", "TMS base URL (defaults to tms.base_url)")
	pf.StringVar(&a.flags.tenant, "tenant", "", "TMS tenant id (defaults to tms.tenant_id)")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "Log every TMS call")
	pf.BoolVar(&a.flags.jsonOutput, "json", false, "Print raw JSON results instead of tables")

	rootCmd.AddCommand(
		velocityCmd(a),
		moneyMuleCmd(a),
		structuringCmd(a),
		highValueCmd(a),
		fraudSimulationCmd(a),
		e2eCmd(a),
		batchCmd(a),
		dbSummaryCmd(a),
		healthCmd(a),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envFile() string {
	if f := os.Getenv("ENV_FILE"); f != "" {
		return f
	}
	return ".env"
}

func (a *app) init() error {
	cfg, err := config.LoadFrom(a.flags.configPath)
	if err != nil {
		return err
	}
	if a.flags.target != "" {
		cfg.TMS.BaseURL = a.flags.target
	}
	if a.flags.tenant != "" {
		cfg.TMS.TenantID = a.flags.tenant
	}
	cfg.History.Backend = dependency_container.HistoryBackendMemory
	cfg.Kafka.Enabled = false
	cfg.Metrics.Enabled = false

	a.logger, a.closeLog = infraLogger.NewConsoleLogger(256)
	if !a.flags.verbose {
		a.logger.SetLevel(logrus.WarnLevel)
	}

	a.container, err = dependency_container.NewContainer(dependency_container.ContainerDI{
		Cfg:    cfg,
		Logger: a.logger,
	})
	return err
}

func (a *app) close() {
	if a.container != nil {
		a.container.Close(a.logger)
	}
	if a.closeLog != nil {
		a.closeLog()
	}
}
