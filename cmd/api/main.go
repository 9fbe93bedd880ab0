package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/adapter"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/api/middleware"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/api/server"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/checkin"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/config"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/logger"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/messaging"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/ratelimit"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/providers/jetstream"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/rotation"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "checkin-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting check-in API")

	// Connect to database
	db, err := store.Open(cfg.Database, cfg.Debug)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("driver", cfg.Database.Driver))
	}
	if cfg.Database.AutoMigrate || strings.EqualFold(cfg.Database.Driver, "sqlite") {
		if err := store.Migrate(db); err != nil {
			logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
		}
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.String("driver", cfg.Database.Driver),
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
	)

	dataStore := store.NewSQLStore(db)
	clock := adapter.NewClock()

	// Attendance notifications are optional
	publisher := messaging.NewNopPublisher()
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), adapter.NewJSON())
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		logger.InfoCtx(ctx, "Connected to NATS JetStream", zap.String("stream", cfg.NATS.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, attendance notifications are disabled")
	}
	defer publisher.Close()

	checkinService := checkin.NewService(dataStore, publisher, clock, checkin.Config{
		StoreTimeout: cfg.Checkin.StoreTimeout,
		BatchWorkers: cfg.Checkin.BatchWorkers,
	})
	defer checkinService.Close()

	authority := rotation.NewAuthority(dataStore, clock, cfg.Rotation.Interval)

	authenticator, err := middleware.NewAuthenticator(middleware.AuthConfig{
		JWTPublicKey:  cfg.Auth.JWTPublicKey,
		APIKeys:       cfg.Auth.APIKeys,
		OperatorRoles: cfg.Auth.OperatorRoles,
		SessionCookie: cfg.Auth.SessionCookie,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize authenticator", zap.Error(err))
	}

	srv := server.New(server.Config{
		Debug:              cfg.Debug,
		Host:               cfg.Server.Host,
		Port:               cfg.Server.Port,
		ReadTimeout:        time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:       time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:        time.Duration(cfg.Server.IdleTimeout) * time.Second,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		RedemptionBaseURL:  cfg.Checkin.RedemptionBaseURL,
		RedeemLimit: ratelimit.Config{
			RequestsPerSecond: cfg.Checkin.RedeemRatePerSecond,
			Burst:             cfg.Checkin.RedeemBurst,
		},
	}, checkinService, authority, authenticator)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.Info("API server stopped")
}
