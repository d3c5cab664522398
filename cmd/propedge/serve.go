package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/prop-edge/internal/api"
	"github.com/yourusername/prop-edge/internal/datasource"
	"github.com/yourusername/prop-edge/internal/health"
	"github.com/yourusername/prop-edge/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServer(ctx)
	},
}

func runServer(ctx context.Context) error {
	props, source, err := newPropService()
	if err != nil {
		return err
	}
	bank, err := newBankrollService(nowFunc())
	if err != nil {
		return err
	}

	checker := health.NewChecker(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Logger:      appLog,
	})
	checker.AddCheck("player_source", source)

	sched, err := startScheduler(ctx, source, bank)
	if err != nil {
		return err
	}
	if sched != nil {
		defer func() {
			if err := sched.Stop(); err != nil {
				appLog.WithError(err).Error("Failed to stop scheduler")
			}
		}()
	}

	server := api.NewServer(cfg, props, bank, checker, appLog).HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		appLog.WithFields(logrus.Fields{
			"addr":        server.Addr,
			"environment": cfg.App.Environment,
			"source":      source.Name(),
			"version":     Version,
		}).Info("prop-edge API starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	checker.SetReady(true)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLog.Info("Shutting down gracefully")
	checker.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	appLog.Info("prop-edge API stopped")
	return nil
}

// startScheduler runs the cache refresh and daily reset jobs when enabled.
func startScheduler(ctx context.Context, source datasource.PlayerSource, resetter scheduler.DayResetter) (*scheduler.Scheduler, error) {
	if !cfg.Scheduler.Enabled {
		return nil, nil
	}

	sched := scheduler.NewScheduler(appLog)

	if cached, ok := source.(*datasource.CachedSource); ok && len(cfg.Scheduler.WatchedPlayers) > 0 {
		if _, err := sched.ScheduleCacheRefresh(cfg.Scheduler.CacheRefreshCron, cached, cfg.Scheduler.WatchedPlayers); err != nil {
			return nil, err
		}
		// Warm the cache before the first scheduled run.
		warmCtx, cancel := context.WithTimeout(ctx, cfg.DataSourceTimeout())
		sched.RefreshNow(warmCtx, cached, cfg.Scheduler.WatchedPlayers)
		cancel()
	} else {
		appLog.Warn("Cache refresh disabled: cache is off or no watched players")
	}

	if cfg.Scheduler.DailyResetCron != "" {
		if _, err := sched.ScheduleDailyReset(cfg.Scheduler.DailyResetCron, resetter); err != nil {
			return nil, err
		}
	}

	if len(sched.Entries()) == 0 {
		return nil, nil
	}
	if err := sched.Start(); err != nil {
		return nil, err
	}
	return sched, nil
}

