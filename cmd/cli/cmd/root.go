// Package cmd provides the CLI commands for roaming-cost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"roaming-cost/core/catalog"
	"roaming-cost/core/engine"
	"roaming-cost/core/simulation"
	"roaming-cost/internal/config"
	"roaming-cost/internal/logging"
)

// Version is set at build time
var Version = "0.1.0"

var (
	cfgFile     string
	catalogFile string
	verbose     bool
	noColor     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "roaming-cost",
	Short: "Simulate roaming costs for a trip",
	Long: `roaming-cost compares roaming bundles against pay-as-you-go rates
for a trip and recommends the cheapest way to stay connected.

Examples:
  roaming-cost simulate --countries DE,FR --start 2026-07-01 --end 2026-07-14
  roaming-cost simulate --countries US --start 2026-07-01 --end 2026-07-07 --format json
  roaming-cost topup --countries DE --start 2026-07-01 --end 2026-07-07 --extra-data 2048
  roaming-cost catalog bundles`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.roaming-cost/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "HCL catalog file (default is the built-in catalog)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if catalogFile != "" {
		cfg.Simulation.CatalogPath = catalogFile
	}
	if noColor {
		cfg.Output.NoColor = true
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// newService opens the configured catalog and builds a simulation service
func newService() (*simulation.Service, error) {
	cfg := config.Get()
	c, err := catalog.Open(cfg.Simulation.CatalogPath)
	if err != nil {
		return nil, err
	}
	logging.Debug("catalog opened",
		zap.String("path", cfg.Simulation.CatalogPath),
		zap.Int("bundles", len(c.Bundles)),
		zap.Int("countries", len(c.Countries)))

	e := engine.New(cfg.EngineConfig(), logging.Named("engine"))
	return simulation.NewService(c, e, Version, logging.Named("simulation")), nil
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "roaming-cost version %s\n", Version)
	},
}
