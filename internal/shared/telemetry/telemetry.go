package telemetry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/andrasnagy-data/careeradvisor/internal/shared/config"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
	"gopkg.in/natefinch/lumberjack.v2"
)

const instrumentationName = "careeradvisor"

// Telemetry bundles the tracer and meter handed to components.
type Telemetry struct {
	Tracer trace.Tracer
	Meter  metric.Meter

	shutdown func(context.Context) error
}

// Noop returns telemetry that records nothing.
func Noop() *Telemetry {
	return &Telemetry{
		Tracer:   tracenoop.NewTracerProvider().Tracer(instrumentationName),
		Meter:    metricnoop.NewMeterProvider().Meter(instrumentationName),
		shutdown: func(context.Context) error { return nil },
	}
}

// NewTelemetry sets up otel tracing and metrics exported to rotated files under TelemetryDir.
// Providers are flushed through the fx lifecycle.
func NewTelemetry(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (*Telemetry, error) {
	if !cfg.TelemetryEnabled {
		logger.Debug().Msg("Telemetry disabled, using noop providers")
		return Noop(), nil
	}

	t, err := newExporting(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			if err := t.shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("Failed to shut down telemetry providers")
				return err
			}
			return nil
		},
	})

	logger.Info().Str("dir", cfg.TelemetryDir).Msg("Telemetry initialized")
	return t, nil
}

func newExporting(ctx context.Context, cfg *config.Config) (*Telemetry, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(instrumentationName),
			semconv.ServiceVersion(cfg.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if err := os.MkdirAll(cfg.TelemetryDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create telemetry directory: %w", err)
	}

	traceFile := rotatingFile(filepath.Join(cfg.TelemetryDir, "traces.log"))
	traceExporter, err := stdouttrace.New(stdouttrace.WithWriter(traceFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	metricsFile := rotatingFile(filepath.Join(cfg.TelemetryDir, "metrics.log"))
	metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(metricsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(10*time.Second)),
		),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	return &Telemetry{
		Tracer: tp.Tracer(instrumentationName),
		Meter:  mp.Meter(instrumentationName),
		shutdown: func(ctx context.Context) error {
			if err := tp.Shutdown(ctx); err != nil {
				return fmt.Errorf("tracer provider: %w", err)
			}
			if err := mp.Shutdown(ctx); err != nil {
				return fmt.Errorf("meter provider: %w", err)
			}
			traceFile.Close()
			metricsFile.Close()
			return nil
		},
	}, nil
}

func rotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
}
