package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecoatlas/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestSetupObservability_NoneEnabled(t *testing.T) {
	cfg := &config.OpenTelemetryConfig{
		ServiceName: "test-service",
		Protocol:    "grpc",
		Endpoint:    "localhost:4317",
		Insecure:    true,
	}
	tel, err := SetupObservability(cfg, "test-service", "info")
	require.NoError(t, err)
	assert.Nil(t, tel.TracerProvider)
	assert.Nil(t, tel.MeterProvider)
	assert.Nil(t, tel.MetricsHandler)
	require.NotNil(t, tel.Logger)
	require.NotNil(t, tel.Instruments)
	assert.Equal(t, "dev", cfg.ServiceVersion, "version defaults to the build stamp")

	// No-op instruments must be safe to use.
	tel.Instruments.RecordVote(context.Background())
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestSetupObservability_TracingAndPrometheus(t *testing.T) {
	cfg := &config.OpenTelemetryConfig{
		EnableTracing:   true,
		EnableMetrics:   true,
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Protocol:        "grpc",
		Endpoint:        "localhost:4317",
		Insecure:        true,
		MetricsExporter: "prometheus",
		SamplingRate:    1.0,
	}
	tel, err := SetupObservability(cfg, "", "debug")
	require.NoError(t, err)
	require.NotNil(t, tel.TracerProvider)
	require.NotNil(t, tel.MeterProvider)
	require.NotNil(t, tel.MetricsHandler)
	assert.Equal(t, "test-service", cfg.ServiceName)

	// Shutdown may fail to flush to the absent collector; only check it returns.
	_ = tel.Shutdown(context.Background())
}

func TestInitStandardTracing_Protocols(t *testing.T) {
	for _, protocol := range []string{"grpc", "http"} {
		t.Run(protocol, func(t *testing.T) {
			cfg := &config.OpenTelemetryConfig{
				ServiceName:  "test-service",
				Protocol:     protocol,
				Endpoint:     "localhost:4317",
				Insecure:     true,
				SamplingRate: 0.5,
			}
			tp, err := InitStandardTracing(cfg)
			require.NoError(t, err)
			require.NotNil(t, tp)
		})
	}
}

func TestInitStandardTracing_InvalidProtocol(t *testing.T) {
	cfg := &config.OpenTelemetryConfig{
		ServiceName: "test-service",
		Protocol:    "invalid",
		Endpoint:    "localhost:4317",
	}
	tp, err := InitStandardTracing(cfg)
	require.Error(t, err)
	require.Nil(t, tp)
	require.Contains(t, err.Error(), "unsupported otel protocol")
}

func TestInitMetrics_OTLP(t *testing.T) {
	cfg := &config.OpenTelemetryConfig{
		ServiceName:     "test-service",
		Protocol:        "http",
		Endpoint:        "localhost:4318",
		Insecure:        true,
		MetricsExporter: "otlp",
	}
	mp, handler, err := InitMetrics(cfg)
	require.NoError(t, err)
	require.NotNil(t, mp)
	assert.Nil(t, handler)

	_, _, err = InitMetrics(&config.OpenTelemetryConfig{Protocol: "smoke-signals"})
	assert.Error(t, err)
}

func TestInitMetrics_PrometheusServesDomainCounters(t *testing.T) {
	cfg := &config.OpenTelemetryConfig{
		ServiceName:     "test-service",
		MetricsExporter: "prometheus",
	}
	mp, handler, err := InitMetrics(cfg)
	require.NoError(t, err)
	require.NotNil(t, handler)

	inst, err := NewInstruments(mp)
	require.NoError(t, err)
	inst.RecordVote(context.Background())
	inst.RecordCreated(context.Background(), "ideas")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "eco_ideas_votes_total")
	assert.Contains(t, string(body), "eco_records_created_total")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestInstruments_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	inst, err := NewInstruments(mp)
	require.NoError(t, err)

	ctx := context.Background()
	inst.RecordVote(ctx)
	inst.RecordVote(ctx)
	inst.RecordCreated(ctx, "problems")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, m.Name)
			for _, dp := range sum.DataPoints {
				totals[m.Name] += dp.Value
			}
		}
	}
	assert.Equal(t, int64(2), totals["eco.ideas.votes"])
	assert.Equal(t, int64(1), totals["eco.records.created"])
}

func TestInstruments_NilReceiver(t *testing.T) {
	var inst *Instruments
	assert.NotPanics(t, func() {
		inst.RecordVote(context.Background())
		inst.RecordCreated(context.Background(), "ideas")
	})
}

func TestSamplingRatio(t *testing.T) {
	assert.Equal(t, 0.0, samplingRatio(-0.5))
	assert.Equal(t, 0.25, samplingRatio(0.25))
	assert.Equal(t, 1.0, samplingRatio(3))
}
