package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/adapter"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/config"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/logger"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	once       = flag.Bool("once", false, "Run a single sweep cycle and exit")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting sweeper")

	db, err := store.Open(cfg.Database, cfg.Debug)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("driver", cfg.Database.Driver))
	}
	if cfg.Database.AutoMigrate {
		if err := store.Migrate(db); err != nil {
			logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
		}
	}

	staleTokenSweeper := sweeper.NewStaleTokenSweeper(sweeper.StaleTokenSweeperConfig{
		Interval:    cfg.Interval,
		MaxTokenAge: cfg.MaxTokenAge,
		BatchSize:   cfg.BatchSize,
	}, store.NewSQLStore(db), adapter.NewClock())

	if *once {
		cleared, err := staleTokenSweeper.RunOnce(ctx)
		if err != nil {
			logger.FatalCtx(ctx, "Sweep failed", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Sweep finished", zap.Int("cleared", cleared))
		return
	}

	if err := sweeper.Run(ctx, staleTokenSweeper, 2*time.Second); err != nil {
		logger.ErrorCtx(context.Background(), err)
	}

	logger.Info("Sweeper stopped")
}
