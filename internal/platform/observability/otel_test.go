package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warn "))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestInstrumentsNilSafe(t *testing.T) {
	var i *Instruments
	assert.NotNil(t, i.Tracer("x"))
	assert.NotNil(t, i.Meter("x"))
}

func TestNewResource_DescribesService(t *testing.T) {
	res, err := newResource(context.Background(), Options{ServiceName: "order-gateway", ServiceVersion: "1.2.3"})
	require.NoError(t, err)

	attrs := map[attribute.Key]string{}
	for _, kv := range res.Attributes() {
		attrs[kv.Key] = kv.Value.Emit()
	}
	assert.Equal(t, "order-gateway", attrs["service.name"])
	assert.Equal(t, ServiceNamespace, attrs["service.namespace"])
	assert.Equal(t, "1.2.3", attrs["service.version"])
	assert.Equal(t, "local", attrs["deployment.environment"])
}
