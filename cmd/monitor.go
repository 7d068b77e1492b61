package cmd

import (
	"context"
	"log/slog"
	_ "net/http/pprof" // nolint:gosec // profiling endpoint listens on localhost.
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/equinix-labs/otel-init-go/otelinit"
	"github.com/spf13/cobra"

	"github.com/soc-toolbox/esmbridge/internal/configuration"
	"github.com/soc-toolbox/esmbridge/internal/log"
	"github.com/soc-toolbox/esmbridge/internal/metrics"
	"github.com/soc-toolbox/esmbridge/internal/model"
	"github.com/soc-toolbox/esmbridge/internal/monitor"
	"github.com/soc-toolbox/esmbridge/internal/profiling"
	"github.com/soc-toolbox/esmbridge/internal/store"
	"github.com/soc-toolbox/esmbridge/internal/version"
)

var monitorInterval time.Duration

// monitorCmd runs the long-lived connector health poller.
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Poll upstream connector health and export prometheus metrics",
	Run: func(cmd *cobra.Command, _ []string) {
		if err := runMonitor(cmd.Context()); err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	monitorCmd.Flags().
		DurationVar(&monitorInterval, "interval", 0, "poll interval, overrides the configured value")

	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(ctx context.Context) error {
	config, err := configuration.Load(args)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return err
	}

	slog.Info("Configuration loaded", config.AsLogFields()...)

	log.SetLevel(config.LogLevel)

	if monitorInterval > 0 {
		config.MonitorInterval = monitorInterval
	}

	// serve metrics endpoint
	metrics.ListenAndServe()
	version.ExportBuildInfoMetric()

	if config.EnableProfiling {
		profiling.Enable()
	}

	ctx, otelShutdown := otelinit.InitOpenTelemetry(ctx, model.AppName)
	defer otelShutdown(ctx)

	logger := log.NewLogrusLogger(config.LogLevel)

	repository, err := store.NewRepository(ctx, config, logger)
	if err != nil {
		slog.Error("Failed to create repository", "error", err)
		return err
	}

	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Cancel the context when we receive a termination signal.
	go func() {
		s := <-termChan
		slog.Info("Received signal for termination, exiting...", "signal", s.String())
		cancel()
	}()

	slog.With("version", version.Current()).Info("esmbridge health monitor running")

	return monitor.New(repository, config.MonitorInterval, logger).Run(ctx)
}
