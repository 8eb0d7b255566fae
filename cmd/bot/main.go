package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/limonericx/community-bot/internal/activity"
	httptransport "github.com/limonericx/community-bot/internal/api/http"
	"github.com/limonericx/community-bot/internal/api/http/handlers"
	"github.com/limonericx/community-bot/internal/bot"
	"github.com/limonericx/community-bot/internal/config"
	"github.com/limonericx/community-bot/internal/events"
	"github.com/limonericx/community-bot/internal/lifecycle"
	"github.com/limonericx/community-bot/internal/observability"
	"github.com/limonericx/community-bot/internal/persistence"
	"github.com/limonericx/community-bot/internal/platform/discord"
	"github.com/limonericx/community-bot/internal/service"
	"github.com/limonericx/community-bot/internal/worker"
	"github.com/limonericx/community-bot/internal/workspace"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Name)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	session, err := discord.NewAdapter(cfg.Discord.Token, logger)
	if err != nil {
		logger.Fatal("failed to create discord session", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	auditService := service.NewAuditService(dispatcher, metrics, logger)
	auditService.RegisterHandlers()

	provisioner := workspace.NewProvisioner(session, cfg.Discord, logger)
	archiveQueue := lifecycle.NewArchiveQueue(redis.Client, logger)
	controller := lifecycle.NewController(lifecycle.Dependencies{
		Client:      session,
		Provisioner: provisioner,
		Archiver:    archiveQueue,
		Dispatcher:  dispatcher,
		Config:      cfg,
		Logger:      logger,
	})

	monitor := activity.NewMonitor(activity.Dependencies{
		Client:        session,
		Config:        cfg.Activity,
		CommandPrefix: cfg.Discord.CommandPrefix,
		Logger:        logger,
	})

	b := bot.New(bot.Dependencies{
		Session:    session,
		Controller: controller,
		Monitor:    monitor,
		Greeter:    bot.NewGreeter(session, cfg.Discord, dispatcher, logger),
		Panels:     bot.NewPanels(session, cfg.Discord, logger),
		Config:     cfg,
		Metrics:    metrics,
		Logger:     logger,
	})
	if err := b.Start(ctx); err != nil {
		logger.Fatal("failed to start bot", zap.Error(err))
	}

	archiveWorker := worker.NewArchiveWorker(archiveQueue, session, dispatcher, cfg.Lifecycle.ArchivePollInterval, logger)
	go archiveWorker.Run(ctx)
	go monitor.Run(ctx)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, 10*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis, session),
		Status: handlers.NewStatusHandler(metrics, controller, archiveQueue),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
	if err := b.Stop(); err != nil {
		logger.Warn("gateway close failed", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
