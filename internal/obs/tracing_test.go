package obs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func TestServiceResourceCarriesVersion(t *testing.T) {
	res, err := serviceResource(context.Background(), TracingConfig{
		ServiceName:    "toko-checkout",
		ServiceVersion: "1.4.2",
		Environment:    "staging",
	})
	require.NoError(t, err)
	set := res.Set()
	name, ok := set.Value(semconv.ServiceNameKey)
	require.True(t, ok)
	require.Equal(t, "toko-checkout", name.AsString())
	version, ok := set.Value(semconv.ServiceVersionKey)
	require.True(t, ok)
	require.Equal(t, "1.4.2", version.AsString())
	env, ok := set.Value(semconv.DeploymentEnvironmentKey)
	require.True(t, ok)
	require.Equal(t, "staging", env.AsString())
}

func TestServiceResourceOmitsBlankVersion(t *testing.T) {
	res, err := serviceResource(context.Background(), TracingConfig{ServiceName: "toko-checkout", ServiceVersion: "  "})
	require.NoError(t, err)
	_, ok := res.Set().Value(semconv.ServiceVersionKey)
	require.False(t, ok)
}

func TestInitTracerExporters(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), TracingConfig{ServiceName: "toko-checkout", Exporter: "none"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	_, err = InitTracer(context.Background(), TracingConfig{ServiceName: "toko-checkout", Exporter: "zipkin"})
	require.ErrorContains(t, err, "unsupported tracing exporter")
}

func TestSamplingRatioFallsBackToAlways(t *testing.T) {
	require.Equal(t, 1.0, TracingConfig{}.samplingRatio())
	require.Equal(t, 1.0, TracingConfig{SamplingRatio: 3}.samplingRatio())
	require.Equal(t, 0.25, TracingConfig{SamplingRatio: 0.25}.samplingRatio())
}
