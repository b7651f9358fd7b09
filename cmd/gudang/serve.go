package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petasbytes/gudang-bot/internal/discord"
	"github.com/petasbytes/gudang-bot/internal/dispatcher"
	"github.com/petasbytes/gudang-bot/internal/metrics"
	"github.com/petasbytes/gudang-bot/internal/ratelimit"
	"github.com/petasbytes/gudang-bot/internal/telemetry"
)

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetry.Configure(cfg.Telemetry.Enabled, cfg.Telemetry.EventsDir)

	catalog, ledger, err := openWarehouse(cfg, logger)
	if err != nil {
		return err
	}
	session, err := newSession(cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	registrar := discord.NewRegistrar(session, cfg.Discord.ApplicationID, cfg.Discord.GuildID, logger)
	d := dispatcher.New(catalog, ledger, registrar,
		dispatcher.WithLogger(logger),
		dispatcher.WithMetrics(m),
		dispatcher.WithRenderer(renderer(cfg)),
		dispatcher.WithLimiter(ratelimit.New(cfg.Limits.CommandsPerSecond, cfg.Limits.Burst, 10*time.Minute)),
	)

	handler := discord.NewHandler(d, logger)
	session.AddHandler(handler.OnInteraction)
	session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		logger.Info("connected to discord", zap.String("user", r.User.Username))
	})

	if err := session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("close discord session", zap.Error(err))
		}
	}()

	// Commands keep working with stale choices, so a failed startup
	// declaration is logged and retried after the next catalog change.
	if err := d.Declare(ctx); err != nil {
		logger.Error("initial command declaration failed", zap.Error(err))
	}

	var metricsErr chan error
	if cfg.Metrics.Addr != "" {
		metricsErr = make(chan error, 1)
		srv := metrics.NewServer(cfg.Metrics.Addr, reg)
		go func() { metricsErr <- srv.Run(ctx) }()
		logger.Info("metrics listening", zap.String("addr", cfg.Metrics.Addr))
	}

	logger.Info("bot running, press Ctrl-C to exit")
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		if metricsErr != nil {
			if err := <-metricsErr; err != nil {
				logger.Warn("metrics server shutdown", zap.Error(err))
			}
		}
		return nil
	case err := <-metricsErr:
		return fmt.Errorf("metrics server: %w", err)
	}
}
