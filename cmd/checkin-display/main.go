package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/adapter"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/config"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/display"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/logger"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/tui"
	"github.com/Luthfisurya324/project-digcity-website-sub001/pkg/client"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	eventID    = flag.String("event", "", "Event to display, overrides event_id")
	title      = flag.String("title", "Scan to check in", "Heading shown above the code")
)

func main() {
	flag.Parse()

	config.ChdirRepoRoot()
	cfg, err := config.LoadDisplayConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if *eventID != "" {
		cfg.EventID = *eventID
	}

	// The terminal belongs to the UI, so logs go to a file
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "checkin-display",
		},
		OutputPaths: []string{cfg.LogFile},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	apiClient := client.New(cfg.APIURL,
		client.WithAPIKey(cfg.APIKey),
		client.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
	)

	changed, notify := tui.Notifier()
	d, err := display.New(apiClient, adapter.NewClock(), display.Config{
		EventID:  cfg.EventID,
		BaseURL:  cfg.RedemptionBaseURL,
		Interval: cfg.Interval,
		Tick:     cfg.Tick,
		OnChange: notify,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "checkin-display: %v\n", err)
		os.Exit(1)
	}
	logger.InfoCtx(ctx, "Starting check-in display",
		zap.String("eventID", cfg.EventID),
		zap.String("api_url", cfg.APIURL),
		zap.Duration("interval", cfg.Interval),
	)

	p := tea.NewProgram(tui.NewModel(ctx, d, *title, changed), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		d.Deactivate()
		logger.ErrorCtx(ctx, err)
		fmt.Fprintf(os.Stderr, "checkin-display: %v\n", err)
		os.Exit(1)
	}
	d.Deactivate()

	logger.InfoCtx(ctx, "Check-in display stopped")
}
