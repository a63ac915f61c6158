package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "TGF_API_KEY", "TGF_ORDER_URL", "TGF_SUBMIT_TIMEOUT", "USE_BUCKET_IMAGES", "S3_BUCKET", "IMAGE_BASE_URL", "STORE_NAME", "JOURNAL_RETENTION_HOURS", "REDIS_ADDR", "REDIS_DB", "IDEMPOTENCY_TTL", "ENVIRONMENT", "OTEL_EXPORTER_OTLP_INSECURE"} {
		t.Setenv(key, "")
	}
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, "https://engine.thegunfirm.com/api/orders", cfg.Distributor.OrderURL)
	require.Equal(t, 30*time.Second, cfg.Distributor.Timeout)
	require.Equal(t, "1-59-000-00-0A-00000", cfg.Orders.FFLFallback)
	require.Equal(t, "99901", cfg.Orders.AccountID)
	require.False(t, cfg.Images.UseBucket)
	require.Equal(t, 3*time.Second, cfg.Images.ProbeTimeout)
	require.Equal(t, 720*time.Hour, cfg.JournalRetention)
	require.Equal(t, "missing", cfg.SecretStatus()["TGF_API_KEY"])
	require.Equal(t, 24*time.Hour, cfg.Redis.IdempotencyTTL)
	require.True(t, cfg.Telemetry.OTLPInsecure)
	opts := cfg.ObservabilityOptions("order-gateway")
	require.Equal(t, "order-gateway", opts.ServiceName)
	require.Equal(t, "local", opts.Environment)
	require.Zero(t, cfg.Redis.DB)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TGF_API_KEY", "k")
	t.Setenv("TGF_SUBMIT_TIMEOUT", "5")
	t.Setenv("USE_BUCKET_IMAGES", "=Yes")
	t.Setenv("S3_BUCKET", "tgf-images")
	t.Setenv("S3_REGION", "us-west-2")
	t.Setenv("S3_USE_PATH_STYLE", "on")
	t.Setenv("IMAGE_BASE_URL", "")
	t.Setenv("TEMPORAL_DISABLED", "1")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("SERVICE_VERSION", "1.4.0")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("IDEMPOTENCY_TTL", "90m")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 5*time.Second, cfg.Distributor.Timeout)
	require.True(t, cfg.Images.UseBucket)
	require.True(t, cfg.Storage.UsePathStyle)
	require.True(t, cfg.Temporal.Disabled)
	require.Equal(t, "https://tgf-images.s3.us-west-2.amazonaws.com", cfg.Images.BaseURL)
	require.Equal(t, "set", cfg.SecretStatus()["TGF_API_KEY"])
	require.Equal(t, "redis:6379", cfg.Redis.Addr)
	require.Equal(t, 2, cfg.Redis.DB)
	require.Equal(t, 90*time.Minute, cfg.Redis.IdempotencyTTL)
	require.Equal(t, "staging", cfg.Telemetry.Environment)
	require.Equal(t, "1.4.0", cfg.ObservabilityOptions("order-gateway").ServiceVersion)
	require.False(t, cfg.Telemetry.OTLPInsecure)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("TGF_SUBMIT_TIMEOUT", "soon")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("TGF_SUBMIT_TIMEOUT", "")
	t.Setenv("TGF_ORDER_URL", "/api/orders")
	_, err = LoadConfig()
	require.ErrorContains(t, err, "TGF_ORDER_URL")

	t.Setenv("TGF_ORDER_URL", "")
	t.Setenv("PORT", "http")
	_, err = LoadConfig()
	require.ErrorContains(t, err, "PORT")

	t.Setenv("PORT", "")
	t.Setenv("REDIS_DB", "-1")
	_, err = LoadConfig()
	require.ErrorContains(t, err, "REDIS_DB")
}
