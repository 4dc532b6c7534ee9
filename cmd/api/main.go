package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/proftafla/exam-service/internal/api/http"
	"github.com/proftafla/exam-service/internal/api/http/handlers"
	"github.com/proftafla/exam-service/internal/cache"
	"github.com/proftafla/exam-service/internal/config"
	"github.com/proftafla/exam-service/internal/events"
	"github.com/proftafla/exam-service/internal/extract"
	"github.com/proftafla/exam-service/internal/observability"
	"github.com/proftafla/exam-service/internal/persistence"
	"github.com/proftafla/exam-service/internal/service"
	"github.com/proftafla/exam-service/internal/upstream"
	"github.com/proftafla/exam-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redis, err := persistence.NewRedis(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Fatal("failed to configure redis", zap.Error(err))
	}
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartEventRecorder(dispatcher, metrics, logger)

	gateway := cache.NewRedisGateway(redis.Client, cfg.Cache.Namespace, cfg.Cache.TTL())
	fetcher := service.NewFetcher(gateway, upstream.NewClient(cfg.Upstream), dispatcher, logger.Named("fetcher"))
	examService := service.NewExamService(service.ExamDependencies{
		Fetcher:    fetcher,
		Extractor:  extract.NewExtractor(logger.Named("extract")),
		Cache:      gateway,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	worker.StartCacheWarmer(ctx, examService, cfg.Cache.WarmInterval(), logger.Named("warmer"))

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis),
		Exams:   handlers.NewExamsHandler(examService),
		Metrics: handlers.NewMetricsHandler(metrics),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
