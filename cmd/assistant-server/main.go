package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"shoestore-assistant/internal/assistant/actions"
	"shoestore-assistant/internal/assistant/chat"
	"shoestore-assistant/internal/assistant/completion"
	"shoestore-assistant/internal/assistant/contextbuild"
	"shoestore-assistant/internal/assistant/matcher"
	"shoestore-assistant/internal/common/config"
	"shoestore-assistant/internal/common/database"
	"shoestore-assistant/internal/common/logger"
	"shoestore-assistant/internal/common/observability"
	"shoestore-assistant/internal/events"
	"shoestore-assistant/internal/httpapi"
	catalogstore "shoestore-assistant/internal/store/catalog"
	"shoestore-assistant/internal/store/userdata"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting assistant server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init event publisher ---
	var publisher actions.Publisher
	if cfg.Events.Enabled {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Events.Broker, cfg.Events.Topic, log)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		zapLog.Info("Kafka publisher initialized", zap.String("topic", cfg.Events.Topic))
	}

	// --- Assemble the assistant pipeline ---
	catalog := catalogstore.NewStore(pg.DB, log)
	users := userdata.NewStore(redis.Client, pg.DB, log)

	completer := completion.NewGeminiClient(
		cfg.GenAI.APIKey,
		cfg.GenAI.Model,
		config.GetDuration(cfg.GenAI.Timeout),
		log,
	)

	assembler := contextbuild.NewAssembler(catalog, users, contextbuild.Limits{
		FetchLimit:      cfg.Assistant.InventoryFetchLimit,
		InventoryLimit:  cfg.Assistant.InventoryContextLimit,
		CollectionLimit: cfg.Assistant.CollectionLimit,
	}, log)

	match := matcher.New(log, matcher.Limits{
		Display: cfg.Assistant.MentionedLimit,
		List:    cfg.Assistant.ListLimit,
	})

	executor := actions.NewExecutor(catalog, users, match, publisher, log)
	chatService := chat.NewService(catalog, assembler, match, executor, completer, log)

	apiServer := httpapi.NewServer(chatService, users, obs, log)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      apiServer.Handler(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// pprof stays on a loopback-only listener.
	go func() {
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			zapLog.Warn("pprof listener stopped", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}

	zapLog.Info("Assistant server stopped")
}
