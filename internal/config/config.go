package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // "postgres" or "sqlite"
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	SQLitePath      string        `mapstructure:"sqlite_path"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // e.g. "5m", "1h"
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // e.g. "10m"
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds

	// CORSAllowedOrigins restricts browser origins; empty allows all
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey  string   `mapstructure:"jwt_public_key"`
	APIKeys       []string `mapstructure:"api_keys"`
	OperatorRoles []string `mapstructure:"operator_roles"`

	// SessionCookie lets GET /checkin read the member JWT from this cookie
	SessionCookie string `mapstructure:"session_cookie"`
}

// RotationConfig holds token rotation configuration
type RotationConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// CheckinConfig holds redemption configuration
type CheckinConfig struct {
	// RedemptionBaseURL is the address encoded in QR codes, e.g. https://portal.example.org/checkin
	RedemptionBaseURL string        `mapstructure:"redemption_base_url"`
	StoreTimeout      time.Duration `mapstructure:"store_timeout"`
	BatchWorkers      int           `mapstructure:"batch_workers"`

	// RedeemRatePerSecond throttles redemptions per caller; 0 disables it
	RedeemRatePerSecond float64 `mapstructure:"redeem_rate_per_second"`
	RedeemBurst         int     `mapstructure:"redeem_burst"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Rotation   RotationConfig `mapstructure:"rotation"`
	Checkin    CheckinConfig  `mapstructure:"checkin"`
}

// DisplayConfig holds configuration for the check-in display client
type DisplayConfig struct {
	BaseConfig        `mapstructure:",squash"`
	APIURL            string        `mapstructure:"api_url"`
	APIKey            string        `mapstructure:"api_key"`
	EventID           string        `mapstructure:"event_id"`
	RedemptionBaseURL string        `mapstructure:"redemption_base_url"`
	Interval          time.Duration `mapstructure:"interval"`
	Tick              time.Duration `mapstructure:"tick"`
	HTTPTimeout       time.Duration `mapstructure:"http_timeout"`
	LogFile           string        `mapstructure:"log_file"`
}

// SweeperConfig holds configuration for the stale token sweeper
type SweeperConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Database    DatabaseConfig `mapstructure:"database"`
	Interval    time.Duration  `mapstructure:"interval"`
	MaxTokenAge time.Duration  `mapstructure:"max_token_age"`
	BatchSize   int            `mapstructure:"batch_size"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)
	v.SetDefault("nats.stream_name", "CHECKIN_EVENTS")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", "checkin-api")
	v.SetDefault("auth.operator_roles", []string{"admin", "staff"})
	v.SetDefault("rotation.interval", "60s")
	v.SetDefault("checkin.redemption_base_url", "http://localhost:8080/checkin")
	v.SetDefault("checkin.store_timeout", "5s")
	v.SetDefault("checkin.batch_workers", 8)
	v.SetDefault("checkin.redeem_rate_per_second", 1)
	v.SetDefault("checkin.redeem_burst", 5)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Rotation.Interval <= 0 {
		return nil, errors.New("rotation.interval must be positive")
	}

	return &cfg, nil
}

// LoadDisplayConfig loads configuration for the check-in display
func LoadDisplayConfig(configFile string, envPath string) (*DisplayConfig, error) {
	v := configureViper("checkin-display", configFile, envPath)

	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("redemption_base_url", "http://localhost:8080/checkin")
	v.SetDefault("interval", "60s")
	v.SetDefault("tick", "1s")
	v.SetDefault("http_timeout", "10s")
	v.SetDefault("log_file", "checkin-display.log")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg DisplayConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Tick <= 0 || cfg.Interval < cfg.Tick {
		return nil, errors.New("interval must be at least one tick and tick must be positive")
	}

	return &cfg, nil
}

// LoadSweeperConfig loads configuration for the stale token sweeper
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	setDatabaseDefaults(v)
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("interval", "1m")
	v.SetDefault("max_token_age", "3m")
	v.SetDefault("batch_size", 100)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Driver == "postgres" {
		if cfg.Database.Host == "" {
			return nil, errors.New("database.host is required")
		}
		if cfg.Database.DBName == "" {
			return nil, errors.New("database.dbname is required")
		}
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.sqlite_path", "data/checkin.db")
}

// readConfig reads the config file, tolerating a missing one so env vars alone can configure a service
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search order: working dir, cmd/<service>/, config/
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("CHECKIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds every key so env vars map onto struct fields without a config file
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.driver",
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.sqlite_path",
		"database.auto_migrate",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.cors_allowed_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		"auth.operator_roles",
		"auth.session_cookie",
		// Check-in
		"rotation.interval",
		"checkin.redemption_base_url",
		"checkin.store_timeout",
		"checkin.batch_workers",
		"checkin.redeem_rate_per_second",
		"checkin.redeem_burst",
		// Display
		"api_url",
		"api_key",
		"event_id",
		"redemption_base_url",
		"interval",
		"tick",
		"http_timeout",
		"log_file",
		// Sweeper
		"max_token_age",
		"batch_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile)) // later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.SQLitePath
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
