package gateway

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.temporal.io/sdk/client"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/platform/envflag"
	platformobservability "github.com/thegunfirm/Mag-Lock-sub017/internal/platform/observability"
)

// Config carries environment-driven settings for the gateway processes.
// It is built once at startup and passed by value.
type Config struct {
	Port        string
	LogLevel    string
	Telemetry   TelemetryConfig
	Distributor DistributorConfig
	Orders      OrdersConfig
	Images      ImagesConfig
	Storage     StorageConfig
	PostgresDSN string
	Redis       RedisConfig
	Temporal    TemporalConfig
	// JournalRetention is how long journal entries survive the purger.
	JournalRetention time.Duration
}

// TelemetryConfig feeds the OpenTelemetry resource and trace exporter.
type TelemetryConfig struct {
	Environment  string
	Version      string
	OTLPEndpoint string
	OTLPInsecure bool
}

type DistributorConfig struct {
	OrderURL string
	APIKey   string
	Timeout  time.Duration
}

type OrdersConfig struct {
	StoreName   string
	FFLFallback string
	AccountID   string
}

type ImagesConfig struct {
	UseBucket    bool
	BaseURL      string
	ProbeTimeout time.Duration
}

type StorageConfig struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// RedisConfig selects the shared idempotency key store. An empty Addr keeps
// keys in Postgres or memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// IdempotencyTTL bounds how long a remembered key replays.
	IdempotencyTTL time.Duration
}

type TemporalConfig struct {
	Address   string
	Namespace string
	Disabled  bool
}

const configFileName = "gateway"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("environment", "local")
	v.SetDefault("otel_exporter_otlp_insecure", "true")
	v.SetDefault("tgf_order_url", "https://engine.thegunfirm.com/api/orders")
	v.SetDefault("tgf_submit_timeout", "30s")
	v.SetDefault("ffl_fallback", "1-59-000-00-0A-00000")
	v.SetDefault("order_account_id", "99901")
	v.SetDefault("image_probe_timeout", "3s")
	v.SetDefault("s3_region", "us-east-1")
	v.SetDefault("temporal_address", client.DefaultHostPort)
	v.SetDefault("temporal_namespace", client.DefaultNamespace)
	v.SetDefault("journal_retention_hours", 720)
	v.SetDefault("redis_db", 0)
	v.SetDefault("idempotency_ttl", "24h")
	v.AutomaticEnv()
	return v
}

// LoadConfig reads gateway.toml when present, overlays environment variables,
// applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	v := newViper()
	v.SetConfigName(configFileName)
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:     str(v, "port"),
		LogLevel: str(v, "log_level"),
		Telemetry: TelemetryConfig{
			Environment:  str(v, "environment"),
			Version:      str(v, "service_version"),
			OTLPEndpoint: str(v, "otel_exporter_otlp_endpoint"),
			OTLPInsecure: envflag.Parse(v.GetString("otel_exporter_otlp_insecure")),
		},
		Distributor: DistributorConfig{
			OrderURL: str(v, "tgf_order_url"),
			APIKey:   str(v, "tgf_api_key"),
		},
		Orders: OrdersConfig{
			StoreName:   str(v, "store_name"),
			FFLFallback: str(v, "ffl_fallback"),
			AccountID:   str(v, "order_account_id"),
		},
		Images: ImagesConfig{
			UseBucket: envflag.Parse(v.GetString("use_bucket_images")),
			BaseURL:   str(v, "image_base_url"),
		},
		Storage: StorageConfig{
			Bucket:          str(v, "s3_bucket"),
			Region:          str(v, "s3_region"),
			Endpoint:        str(v, "s3_endpoint"),
			AccessKeyID:     str(v, "s3_access_key_id"),
			SecretAccessKey: str(v, "s3_secret_access_key"),
			UsePathStyle:    envflag.Parse(v.GetString("s3_use_path_style")),
		},
		PostgresDSN: str(v, "postgres_dsn"),
		Redis: RedisConfig{
			Addr:     str(v, "redis_addr"),
			Password: str(v, "redis_password"),
		},
		Temporal: TemporalConfig{
			Address:   str(v, "temporal_address"),
			Namespace: str(v, "temporal_namespace"),
			Disabled:  envflag.Parse(v.GetString("temporal_disabled")),
		},
	}

	var err error
	if cfg.Distributor.Timeout, err = positiveDuration(v, "tgf_submit_timeout"); err != nil {
		return Config{}, err
	}
	if cfg.Images.ProbeTimeout, err = positiveDuration(v, "image_probe_timeout"); err != nil {
		return Config{}, err
	}
	if cfg.Redis.IdempotencyTTL, err = positiveDuration(v, "idempotency_ttl"); err != nil {
		return Config{}, err
	}
	if cfg.Redis.DB, err = strconv.Atoi(str(v, "redis_db")); err != nil || cfg.Redis.DB < 0 {
		return Config{}, errors.New("REDIS_DB must be a non-negative integer")
	}
	hours, err := strconv.Atoi(str(v, "journal_retention_hours"))
	if err != nil || hours <= 0 {
		return Config{}, errors.New("JOURNAL_RETENTION_HOURS must be a positive integer")
	}
	cfg.JournalRetention = time.Duration(hours) * time.Hour

	if port, err := strconv.Atoi(cfg.Port); err != nil || port <= 0 || port > 65535 {
		return Config{}, errors.New("PORT must be a valid TCP port")
	}
	if u, err := url.Parse(cfg.Distributor.OrderURL); err != nil || !u.IsAbs() {
		return Config{}, errors.New("TGF_ORDER_URL must be an absolute URL")
	}
	if cfg.Images.BaseURL == "" && cfg.Storage.Bucket != "" {
		cfg.Images.BaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Storage.Bucket, cfg.Storage.Region)
	}
	return cfg, nil
}

// ObservabilityOptions describes serviceName for platform observability.
func (c Config) ObservabilityOptions(serviceName string) platformobservability.Options {
	return platformobservability.Options{
		ServiceName:    serviceName,
		ServiceVersion: c.Telemetry.Version,
		Environment:    c.Telemetry.Environment,
		Level:          platformobservability.ParseLevel(c.LogLevel),
		OTLPEndpoint:   c.Telemetry.OTLPEndpoint,
		OTLPInsecure:   c.Telemetry.OTLPInsecure,
	}
}

// Addr returns the listen address for Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

// SecretStatus reports presence of each secret without exposing its value.
func (c Config) SecretStatus() map[string]string {
	return map[string]string{
		"TGF_API_KEY":          presence(c.Distributor.APIKey),
		"S3_ACCESS_KEY_ID":     presence(c.Storage.AccessKeyID),
		"S3_SECRET_ACCESS_KEY": presence(c.Storage.SecretAccessKey),
		"REDIS_PASSWORD":       presence(c.Redis.Password),
	}
}

func presence(v string) string {
	if v == "" {
		return "missing"
	}
	return "set"
}

func str(v *viper.Viper, key string) string {
	return strings.TrimSpace(v.GetString(key))
}

// positiveDuration accepts Go durations ("30s") or bare seconds ("30").
func positiveDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := str(v, key)
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("%s must be positive", strings.ToUpper(key))
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration", strings.ToUpper(key))
	}
	return d, nil
}
