package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/adapter"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/api/middleware"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/api/rest"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/logger"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/ratelimit"
)

// Config holds the server configuration
type Config struct {
	Debug              bool
	Host               string
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	CORSAllowedOrigins []string
	RedemptionBaseURL  string

	// RedeemLimit throttles redemptions per caller; a zero rate disables it
	RedeemLimit ratelimit.Config
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	checkin    rest.CheckinService
	authority  rest.TokenAuthority
	auth       *middleware.Authenticator
	httpServer *http.Server
}

// New creates a new API server
func New(cfg Config, checkin rest.CheckinService, authority rest.TokenAuthority, auth *middleware.Authenticator) *Server {
	return &Server{
		config:    cfg,
		checkin:   checkin,
		authority: authority,
		auth:      auth,
	}
}

// Router builds the gin engine with middleware and routes
func (s *Server) Router() *gin.Engine {
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS(s.config.CORSAllowedOrigins))

	var redeemLimiter *ratelimit.KeyedLimiter
	if s.config.RedeemLimit.RequestsPerSecond > 0 {
		l, err := ratelimit.NewKeyedLimiter(s.config.RedeemLimit, adapter.NewClock())
		if err != nil {
			logger.Warn("Redemption rate limit disabled", zap.Error(err))
		} else {
			redeemLimiter = l
		}
	}

	restHandler := rest.NewHandler(s.checkin, s.authority, s.config.RedemptionBaseURL)
	rest.SetupRoutes(router, restHandler, s.auth, redeemLimiter)

	return router
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
