package obs

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func TestInitTracerDisabledExporter(t *testing.T) {
	for _, name := range []string{"none", "Off", " disabled "} {
		shutdown, err := InitTracer(context.Background(), TracingConfig{ServiceName: "foodgram-api", Exporter: name})
		require.NoError(t, err, name)
		require.NoError(t, shutdown(context.Background()))
	}
}

func TestInitTracerUnknownExporter(t *testing.T) {
	_, err := InitTracer(context.Background(), TracingConfig{ServiceName: "foodgram-api", Exporter: "zipkin"})
	require.EqualError(t, err, "unsupported tracing exporter: zipkin")
}

func TestNewResourceAttributes(t *testing.T) {
	res, err := newResource(context.Background(), TracingConfig{
		ServiceName:    "foodgram-api",
		ServiceVersion: "v1.4.0",
		Environment:    "staging",
		StoreDriver:    "sqlite",
	})
	require.NoError(t, err)

	got := map[attribute.Key]string{}
	for _, kv := range res.Attributes() {
		got[kv.Key] = kv.Value.Emit()
	}
	require.Equal(t, "foodgram-api", got[semconv.ServiceNameKey])
	require.Equal(t, "v1.4.0", got[semconv.ServiceVersionKey])
	require.Equal(t, "staging", got[semconv.DeploymentEnvironmentKey])
	require.Equal(t, "sqlite", got[StoreDriverKey])
}

func TestNewResourceSkipsEmptyAttributes(t *testing.T) {
	res, err := newResource(context.Background(), TracingConfig{ServiceName: "foodgram-api"})
	require.NoError(t, err)
	for _, kv := range res.Attributes() {
		require.NotEqual(t, StoreDriverKey, kv.Key)
		require.NotEqual(t, semconv.ServiceVersionKey, kv.Key)
	}
}

func TestNewSamplerClampsRatio(t *testing.T) {
	require.Contains(t, newSampler(0.25).Description(), "root:TraceIDRatioBased{0.25}")
	for _, ratio := range []float64{0, -1, 2, math.NaN()} {
		require.Contains(t, newSampler(ratio).Description(), "root:AlwaysOnSampler", ratio)
	}
}
