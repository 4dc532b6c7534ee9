package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/proftafla/exam-service/internal/cache"
	"github.com/proftafla/exam-service/internal/config"
	"github.com/proftafla/exam-service/internal/extract"
	"github.com/proftafla/exam-service/internal/observability"
	"github.com/proftafla/exam-service/internal/persistence"
	"github.com/proftafla/exam-service/internal/service"
	"github.com/proftafla/exam-service/internal/upstream"
)

var (
	jsonOutput  bool
	redisHandle *persistence.Redis
	examService *service.ExamService
	logger      *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "proftafla",
	Short: "Exam schedules and statistics from the ugla portal",
	Long: `proftafla fetches the published exam schedule for each division of the
University of Iceland, caches the raw responses in Redis and prints exam
tables or aggregated student counts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.Logger.Level == "info" {
			cfg.Logger.Level = "warn"
		}
		logger, err = observability.NewLogger(cfg.Logger, cfg.App)
		if err != nil {
			return err
		}

		redisHandle, err = persistence.NewRedis(cmd.Context(), cfg.Redis, logger)
		if err != nil {
			return err
		}

		gateway := cache.NewRedisGateway(redisHandle.Client, cfg.Cache.Namespace, cfg.Cache.TTL())
		examService = service.NewExamService(service.ExamDependencies{
			Fetcher:   service.NewFetcher(gateway, upstream.NewClient(cfg.Upstream), nil, logger),
			Extractor: extract.NewExtractor(logger),
			Cache:     gateway,
			Logger:    logger,
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw JSON instead of tables")
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	redisHandle.Close()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
