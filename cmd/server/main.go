// Package main - Entry point for the roaming cost simulation server
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"roaming-cost/api"
	"roaming-cost/core/catalog"
	"roaming-cost/core/engine"
	"roaming-cost/core/simulation"
	"roaming-cost/internal/config"
	"roaming-cost/internal/errors"
	"roaming-cost/internal/logging"
	"roaming-cost/internal/metrics"
	"roaming-cost/internal/reporting"
)

const version = "1.0.0"

var (
	cfgFile     string
	addr        string
	catalogFile string
)

var rootCmd = &cobra.Command{
	Use:          "roaming-cost-server",
	Short:        "Serve roaming cost simulations over HTTP",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	rootCmd.Flags().StringVar(&catalogFile, "catalog", "", "HCL catalog file (default is the built-in catalog)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithEnv(cfgFile)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if catalogFile != "" {
		cfg.Simulation.CatalogPath = catalogFile
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		return errors.Config("failed to initialize logging", err)
	}
	defer logging.Sync()
	logger := logging.Named("server")

	if err := reporting.Init(reporting.Options{
		DSN:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		Release:     "roaming-cost@" + version,
		SampleRate:  cfg.Sentry.SampleRate,
	}, logger); err != nil {
		return errors.Config("failed to initialize error reporting", err)
	}
	defer reporting.Flush()

	c, err := catalog.Open(cfg.Simulation.CatalogPath)
	if err != nil {
		logger.Error("catalog failed to load", errors.Fields(err)...)
		reporting.CaptureError(err, map[string]string{"phase": "startup"})
		return err
	}
	logger.Info("catalog loaded",
		zap.String("path", cfg.Simulation.CatalogPath),
		zap.Int("countries", len(c.Countries)),
		zap.Int("bundles", len(c.Bundles)),
		zap.Int("rates", len(c.Rates)))

	e := engine.New(cfg.EngineConfig(), logging.Named("engine"))
	service := simulation.NewService(c, e, version, logging.Named("simulation"))

	collector, err := metrics.NewCollector(nil)
	if err != nil {
		return errors.Internal("failed to register metrics", err)
	}

	server := api.NewServer(service, api.Options{
		Version:   version,
		Collector: collector,
		Logger:    logging.Named("api"),
	})

	logger.Info("starting roaming cost server",
		zap.String("version", version),
		zap.String("currency", string(cfg.Simulation.Currency)))

	return server.ListenAndServe(cfg.Server.Addr,
		time.Duration(cfg.Server.ReadTimeoutSeconds)*time.Second,
		time.Duration(cfg.Server.WriteTimeoutSeconds)*time.Second,
		cfg.Server.MaxRequestBodyBytes)
}
