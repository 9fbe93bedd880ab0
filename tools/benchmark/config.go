package main

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultAPIURL = "http://localhost:8080"
	envPrefix     = "CHECKIN_BENCHMARK"
)

type Config struct {
	APIURL      string
	APIKey      string
	EventID     string
	Members     []string // member IDs to check in
	Names       []string // free-text names to check in
	Attempts    int      // Concurrent attempts per participant
	Concurrency int      // Number of concurrent workers
	Timeout     time.Duration
	OutputFile  string // Output markdown file path (optional)
}

func (c *Config) validate() error {
	if c.EventID == "" {
		return errors.New("event is required")
	}
	if len(c.Members)+len(c.Names) == 0 {
		return errors.New("at least one of members or names is required")
	}
	return nil
}

// profile is the target of a run, shared between runs through a file or CHECKIN_BENCHMARK_* variables
type profile struct {
	APIURL string
	APIKey string
}

// loadProfile reads the profile from path, if given; environment variables take precedence over the file
func loadProfile(path string) (*profile, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
		}
	}

	return &profile{
		APIURL: v.GetString("api_url"),
		APIKey: v.GetString("api_key"),
	}, nil
}

// apply fills the fields that were not set on the command line
func (p *profile) apply(cfg *Config, explicit map[string]bool) {
	if !explicit["api-url"] && p.APIURL != "" {
		cfg.APIURL = p.APIURL
	}
	if !explicit["api-key"] && p.APIKey != "" {
		cfg.APIKey = p.APIKey
	}
}

func parseFlags() (*Config, error) {
	cfg := &Config{}

	var members, names string
	flag.StringVar(&cfg.APIURL, "api-url", defaultAPIURL, "Check-in API base URL")
	flag.StringVar(&cfg.APIKey, "api-key", "", "Operator API key")
	flag.StringVar(&cfg.EventID, "event", "", "Event to check participants into (required)")
	flag.StringVar(&members, "members", "", "Comma separated member IDs")
	flag.StringVar(&names, "names", "", "Comma separated free-text names")
	flag.IntVar(&cfg.Attempts, "attempts", 20, "Concurrent attempts per participant")
	flag.IntVar(&cfg.Concurrency, "concurrency", 16, "Number of concurrent workers")
	flag.DurationVar(&cfg.Timeout, "timeout", 10*time.Second, "Timeout for each request")
	flag.StringVar(&cfg.OutputFile, "output", "", "Output markdown file path (optional)")

	profileFile := flag.String("profile", "", "Path to a YAML or JSON file with api_url and api_key (optional)")

	flag.Parse()

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	p, err := loadProfile(*profileFile)
	if err != nil {
		return nil, err
	}
	p.apply(cfg, explicit)

	cfg.Members = splitList(members)
	cfg.Names = splitList(names)

	if cfg.Attempts <= 0 {
		cfg.Attempts = 1
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 16
	}

	return cfg, cfg.validate()
}
