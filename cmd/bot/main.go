package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	tele "gopkg.in/telebot.v3"

	"predlozhka/internal/config"
	"predlozhka/internal/domain"
	"predlozhka/internal/handler"
	"predlozhka/internal/metrics"
	"predlozhka/internal/repository/sqlstore"
	"predlozhka/internal/server"
	"predlozhka/internal/service"
	"predlozhka/internal/telegram"
)

const cleanupInterval = 24 * time.Hour

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Predlozhka Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("timezone", cfg.Location.String()),
		zap.Int("max_posts_per_day", cfg.MaxPostsPerDay),
	)

	// Connect to database with retries
	db, err := sqlstore.Open(cfg.Database.Driver, cfg.DSN(), sqlstore.DefaultConnectOptions, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := sqlstore.Migrate(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(registry); err != nil {
		logger.Fatal("Failed to register metrics", zap.Error(err))
	}

	// Initialize repositories
	banRepo := sqlstore.NewBanRepo(db)
	limitRepo := sqlstore.NewLimitRepo(db)
	queueRepo := sqlstore.NewQueueRepo(db)
	statsRepo := sqlstore.NewStatsRepo(db)
	recipientRepo := sqlstore.NewRecipientRepo(db)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil && c.Sender() != nil {
				fields = append(fields, zap.Int64("user_id", c.Sender().ID))
			}
			logger.Error("Unhandled bot error", fields...)
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	client := telegram.NewClient(bot)
	calendar := domain.NewCalendar(cfg.Location)
	channels := service.Channels{
		ReviewChatID: cfg.ReviewChannelID,
		PublicChatID: cfg.PublicChannelID,
		LogChatID:    cfg.LogChannelID,
	}

	// Initialize services
	audit := service.NewAuditLog(client, cfg.LogChannelID, logger)
	admissionService := service.NewAdmissionService(banRepo, limitRepo, calendar, cfg.OwnerID, cfg.MaxPostsPerDay, logger)
	moderationService := service.NewModerationService(queueRepo, admissionService, client, channels, calendar, audit, logger)
	broadcastService := service.NewBroadcastService(recipientRepo, client, cfg.BroadcastDelay, cfg.OwnerID, logger)
	statsService := service.NewStatsService(statsRepo, limitRepo, queueRepo, calendar, cfg.QueueEntryTTL, logger)
	conversationService := service.NewConversationService(
		service.NewSessionStore(),
		admissionService,
		moderationService,
		broadcastService,
		statsService,
		client,
		channels,
		audit,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize handler
	h := handler.NewHandler(ctx, bot, conversationService, moderationService, cfg.OwnerID, cfg.ReviewChannelID, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		runCleanupJob(gctx, statsService, logger)
		return nil
	})

	g.Go(func() error {
		return server.Run(gctx, cfg.HTTPAddr, server.NewMux(registry), logger)
	})

	g.Go(func() error {
		go func() {
			<-gctx.Done()
			logger.Info("Shutdown signal received, stopping bot...")
			bot.Stop()
		}()
		logger.Info("Bot started successfully")
		bot.Start()
		return nil
	})

	audit.Record("bot started")

	if err := g.Wait(); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
		return
	}

	logger.Info("Bot stopped gracefully")
}

// runCleanupJob runs periodic cleanup of old data
func runCleanupJob(ctx context.Context, statsService *service.StatsService, logger *zap.Logger) {
	// Run cleanup once at startup
	if err := statsService.CleanupOldData(); err != nil {
		logger.Error("Failed to run initial cleanup", zap.Error(err))
	}

	// Then run every 24 hours
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			logger.Info("Running scheduled cleanup")
			if err := statsService.CleanupOldData(); err != nil {
				logger.Error("Failed to run scheduled cleanup", zap.Error(err))
			}
		}
	}
}
