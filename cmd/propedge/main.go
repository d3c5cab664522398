// Package main provides the prop-edge command line tool and API server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/prop-edge/internal/bankroll"
	"github.com/yourusername/prop-edge/internal/config"
	"github.com/yourusername/prop-edge/internal/datasource"
	"github.com/yourusername/prop-edge/internal/logger"
	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	logLevel   string
	jsonOutput bool

	cfg    *config.Config
	appLog *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")

	rootCmd.AddCommand(evaluateCmd, impliedCmd, kellyCmd, sharpeCmd, bankrollCmd, serveCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:           "propedge",
	Short:         "Player prop probability and edge engine",
	Long:          `Projects player statistics, prices props against market lines, sizes stakes and tracks a bankroll.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "propedge %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.App.LogLevel = logLevel
	}

	if config.SecretsEnabled() {
		region, secretName := config.SecretsLocation()
		if err := config.LoadSecretsFromAWS(ctx, cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	metrics.InitRegistry()
	return nil
}

func newPropService() (*service.PropService, datasource.PlayerSource, error) {
	source, err := datasource.NewSource(cfg, appLog)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create player source: %w", err)
	}
	return service.NewPropService(source, appLog), source, nil
}

func newBankrollService(now time.Time) (*service.BankrollService, error) {
	var (
		tracker *bankroll.Tracker
		err     error
	)
	if cfg.Bankroll.SampleData {
		tracker, err = bankroll.SampleTracker(now)
	} else {
		tracker, err = bankroll.NewTracker(bankroll.Options{
			StartingBankroll: decimal.NewFromFloat(cfg.Bankroll.StartingBankroll),
			CurrentBankroll:  decimal.NewFromFloat(cfg.Bankroll.CurrentBankroll),
			UnitSize:         decimal.NewFromFloat(cfg.Bankroll.UnitSize),
			StopLoss:         decimal.NewFromFloat(cfg.Bankroll.StopLoss),
			DailyTarget:      decimal.NewFromFloat(cfg.Bankroll.DailyTarget),
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create bankroll tracker: %w", err)
	}
	return service.NewBankrollService(tracker, appLog), nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
