package observability

import (
	"context"
	"errors"
	"net/http"
	"os"

	"ecoatlas/internal/config"
	"ecoatlas/internal/version"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Telemetry bundles the providers created by SetupObservability.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *metric.MeterProvider
	// MetricsHandler serves Prometheus scrapes; nil unless the prometheus exporter is selected.
	MetricsHandler http.Handler
	Logger         *Logger
	Instruments    *Instruments
}

// SetupObservability initializes tracing, metrics, and logging for a service
func SetupObservability(cfg *config.OpenTelemetryConfig, serviceName, logLevel string) (result0 *Telemetry, err error) {
	if serviceName != "" {
		cfg.ServiceName = serviceName
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = version.Version
	}

	if err := os.Setenv("OTEL_SERVICE_NAME", cfg.ServiceName); err != nil {
		return nil, err
	}
	if err := os.Setenv("OTEL_SERVICE_VERSION", cfg.ServiceVersion); err != nil {
		return nil, err
	}

	t := &Telemetry{Logger: NewLoggerWithLevel(cfg, ParseLevel(logLevel))}

	InitTracing()

	if cfg.EnableTracing {
		tp, err := InitStandardTracing(cfg)
		if err != nil {
			return nil, err
		}
		otel.SetTracerProvider(tp)
		t.TracerProvider = tp

		t.Logger.Info(context.Background(), "Tracing enabled", map[string]interface{}{"service_name": cfg.ServiceName, "protocol": cfg.Protocol})
	}
	InitGlobalTracer()

	if cfg.EnableMetrics {
		mp, handler, err := InitMetrics(cfg)
		if err != nil {
			return nil, err
		}
		otel.SetMeterProvider(mp)
		t.MeterProvider = mp
		t.MetricsHandler = handler

		t.Logger.Info(context.Background(), "Metrics enabled", map[string]interface{}{"exporter": cfg.MetricsExporter})
	}

	if t.MeterProvider != nil {
		t.Instruments, err = NewInstruments(t.MeterProvider)
	} else {
		t.Instruments, err = NewInstruments(nil)
	}
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Shutdown flushes and stops the providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.TracerProvider != nil {
		errs = append(errs, t.TracerProvider.Shutdown(ctx))
	}
	if t.MeterProvider != nil {
		errs = append(errs, t.MeterProvider.Shutdown(ctx))
	}
	if t.Logger != nil {
		// Sync on stdout/stderr returns EINVAL on some platforms.
		_ = t.Logger.Sync()
	}
	return errors.Join(errs...)
}
