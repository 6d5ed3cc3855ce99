package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/spapperi/ragserver/internal/ai"
	"github.com/spapperi/ragserver/internal/config"
	"github.com/spapperi/ragserver/internal/db"
	"github.com/spapperi/ragserver/internal/handler"
	"github.com/spapperi/ragserver/internal/ingest"
	"github.com/spapperi/ragserver/internal/job"
	"github.com/spapperi/ragserver/internal/middleware"
	"github.com/spapperi/ragserver/internal/repo"
	"github.com/spapperi/ragserver/internal/schedule"
	"github.com/spapperi/ragserver/internal/service"
)

const (
	serviceName    = "Spapperi RAG Agent API"
	serviceVersion = "1.0.0"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "ragserver",
		Short: "documentation RAG backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the RAG server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer conn.Close()
	if err := db.EnsureSchema(conn); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	provider, err := ai.NewProvider(cfg.AI.Provider, cfg.AI.Data)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	embedder := ai.NewEmbedder(provider, cfg.AI.EmbedModel)
	generator := ai.NewGenerator(provider, cfg.AI.Model)

	documents := repo.NewDocumentRepo(conn, cfg.AI.EmbedDim)
	loader := ingest.NewLoader(embedder, cfg.RAG, cfg.Company)
	corpusService := service.NewCorpusService(documents, loader)
	ragService := service.NewRAGService(embedder, generator, documents, cfg.RAG.TopK, cfg.Company.Name)

	if err := corpusService.Ingest(ctx); err != nil {
		if cfg.FailOnIngest() {
			return fmt.Errorf("startup ingestion: %w", err)
		}
		logutil.GetLogger(ctx).Error("startup ingestion failed, serving existing corpus", zap.Error(err))
	}

	deps := handler.RouterDeps{
		Query:  handler.NewQueryHandler(ragService),
		Corpus: handler.NewCorpusHandler(corpusService, serviceName, serviceVersion),
	}

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	engine, err := webapi.NewEngine(
		"/",
		addr,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	scheduler := schedule.NewCronScheduler()
	if cfg.StatsJobSpec != "" {
		if err := scheduler.AddJob(job.NewCorpusStatsJob(corpusService), cfg.StatsJobSpec); err != nil {
			return fmt.Errorf("schedule stats job: %w", err)
		}
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(ctx).Info("http server listening", zap.String("addr", addr))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
