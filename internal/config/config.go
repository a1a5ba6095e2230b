package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "FULFILLMENT"

var (
	ErrMissingWebhookToken  = errors.New("config: webhook token is required")
	ErrMissingCarrierURL    = errors.New("config: carrier base URL is required")
	ErrInvalidPlaceholder   = errors.New("config: quote placeholder price must be positive")
	ErrInvalidAuditSettings = errors.New("config: audit workers and batch size must be positive")
)

type Config struct {
	App      AppConfig
	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Carrier  CarrierConfig
	Payment  PaymentConfig
	Webhook  WebhookConfig
	Quote    QuoteConfig
	Audit    AuditConfig
}

type AppConfig struct {
	Name            string
	Env             string
	Port            string
	GRPCPort        string
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

// DatabaseConfig points at the Postgres database backing the tabular store.
// An empty Host switches the service to the in-memory store.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
	GroupID    string
}

func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

type CarrierConfig struct {
	BaseURL           string
	APIKey            string
	APISecret         string
	AccountID         string
	OriginID          string
	Country           string
	ResolvePath       string
	QuotePath         string
	ShipmentsPath     string
	Timeout           time.Duration
	RequestsPerSecond float64
}

type PaymentConfig struct {
	BaseURL     string
	AccessToken string
}

type WebhookConfig struct {
	Token string
}

type QuoteConfig struct {
	PlaceholderPrice  int64
	EstimatedFallback bool
	// ProbeDeclaredValue is sent with the throwaway quote used to resolve a zipcode.
	ProbeDeclaredValue float64
}

type AuditConfig struct {
	Workers      int
	BatchSize    int
	FlushTimeout time.Duration
}

// Load reads the configuration and validates the settings the HTTP service needs.
func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read reads configuration with the following priority:
// FULFILLMENT_* environment variables (a .env file is loaded into the environment first),
// then config.toml, then built-in defaults. Nothing is validated.
func Read() (*Config, error) {
	loadEnv()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:            v.GetString("app.name"),
			Env:             v.GetString("app.env"),
			Port:            v.GetString("app.port"),
			GRPCPort:        v.GetString("app.grpc_port"),
			ShutdownTimeout: v.GetDuration("app.shutdown_timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			DBName:   v.GetString("database.dbname"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		Kafka: KafkaConfig{
			Brokers:    splitList(v.GetString("kafka.brokers")),
			AuditTopic: v.GetString("kafka.audit_topic"),
			GroupID:    v.GetString("kafka.group_id"),
		},
		Carrier: CarrierConfig{
			BaseURL:           v.GetString("carrier.base_url"),
			APIKey:            v.GetString("carrier.api_key"),
			APISecret:         v.GetString("carrier.api_secret"),
			AccountID:         v.GetString("carrier.account_id"),
			OriginID:          v.GetString("carrier.origin_id"),
			Country:           v.GetString("carrier.country"),
			ResolvePath:       v.GetString("carrier.resolve_path"),
			QuotePath:         v.GetString("carrier.quote_path"),
			ShipmentsPath:     v.GetString("carrier.shipments_path"),
			Timeout:           v.GetDuration("carrier.timeout"),
			RequestsPerSecond: v.GetFloat64("carrier.requests_per_second"),
		},
		Payment: PaymentConfig{
			BaseURL:     v.GetString("payment.base_url"),
			AccessToken: v.GetString("payment.access_token"),
		},
		Webhook: WebhookConfig{
			Token: v.GetString("webhook.token"),
		},
		Quote: QuoteConfig{
			PlaceholderPrice:   v.GetInt64("quote.placeholder_price"),
			EstimatedFallback:  v.GetBool("quote.estimated_fallback"),
			ProbeDeclaredValue: v.GetFloat64("quote.probe_declared_value"),
		},
		Audit: AuditConfig{
			Workers:      v.GetInt("audit.workers"),
			BatchSize:    v.GetInt("audit.batch_size"),
			FlushTimeout: v.GetDuration("audit.flush_timeout"),
		},
	}

	if !v.IsSet("quote.estimated_fallback") {
		cfg.Quote.EstimatedFallback = true
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "fulfillment"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "9000"
	}
	if cfg.App.GRPCPort == "" {
		cfg.App.GRPCPort = "9001"
	}
	if cfg.App.ShutdownTimeout == 0 {
		cfg.App.ShutdownTimeout = 30 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.IsProduction() {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = 30 * 24 * time.Hour
	}
	if cfg.Kafka.AuditTopic == "" {
		cfg.Kafka.AuditTopic = "audit_logs"
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = "audit-log-consumer-group"
	}
	if cfg.Carrier.Country == "" {
		cfg.Carrier.Country = "AR"
	}
	if cfg.Carrier.ResolvePath == "" {
		cfg.Carrier.ResolvePath = "/resolve"
	}
	if cfg.Carrier.QuotePath == "" {
		cfg.Carrier.QuotePath = "/quote"
	}
	if cfg.Carrier.ShipmentsPath == "" {
		cfg.Carrier.ShipmentsPath = "/shipments"
	}
	if cfg.Carrier.Timeout == 0 {
		cfg.Carrier.Timeout = 15 * time.Second
	}
	if cfg.Carrier.RequestsPerSecond == 0 {
		cfg.Carrier.RequestsPerSecond = 10
	}
	if cfg.Quote.PlaceholderPrice == 0 {
		cfg.Quote.PlaceholderPrice = 5000
	}
	if cfg.Quote.ProbeDeclaredValue == 0 {
		cfg.Quote.ProbeDeclaredValue = 1000
	}
	if cfg.Audit.Workers == 0 {
		cfg.Audit.Workers = 2
	}
	if cfg.Audit.BatchSize == 0 {
		cfg.Audit.BatchSize = 5
	}
	if cfg.Audit.FlushTimeout == 0 {
		cfg.Audit.FlushTimeout = 500 * time.Millisecond
	}
}

func (c *Config) Validate() error {
	if c.Webhook.Token == "" {
		return ErrMissingWebhookToken
	}
	if c.Carrier.BaseURL == "" {
		return ErrMissingCarrierURL
	}
	if c.Quote.PlaceholderPrice < 0 {
		return ErrInvalidPlaceholder
	}
	if c.Audit.Workers <= 0 || c.Audit.BatchSize <= 0 {
		return ErrInvalidAuditSettings
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// loadEnv looks for a .env file next to the working directory and up to two levels above it.
// A missing file is not an error: the environment may already be populated.
func loadEnv() {
	wd, err := os.Getwd()
	if err != nil {
		log.Printf("config: cannot get working directory: %v", err)
		return
	}

	possiblePaths := []string{
		filepath.Join(wd, ".env"),
		filepath.Join(wd, "..", ".env"),
		filepath.Join(wd, "..", "..", ".env"),
	}

	for _, envPath := range possiblePaths {
		if err := godotenv.Load(envPath); err == nil {
			log.Printf("Loaded environment variables from %s", envPath)
			return
		}
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
