package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/grafana/pyroscope-go"
	"github.com/hlcomp/hanabi-competitions/internal/config"
	"github.com/hlcomp/hanabi-competitions/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// Telemetry owns the exporters and profilers started for one process.
type Telemetry struct {
	logger   *logging.Logger
	tracing  bool
	profiler *pyroscope.Profiler
	pprof    *http.Server
}

// Setup starts whatever cfg enables: OpenTelemetry export to Uptrace,
// continuous profiling with Pyroscope and a private pprof listener. Spans
// from the HTTP middleware, the use cases and the traced SQL driver flow
// through the global providers configured here.
func Setup(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger}

	switch {
	case !cfg.UptraceEnabled:
		logger.Info("tracing export disabled", "reason", "UPTRACE_ENABLED=false")
	case cfg.UptraceDSN == "":
		logger.Info("tracing export disabled", "reason", "UPTRACE_DSN empty")
	default:
		uptrace.ConfigureOpentelemetry(
			uptrace.WithDSN(cfg.UptraceDSN),
			uptrace.WithServiceName(cfg.ServiceName),
			uptrace.WithServiceVersion(cfg.ServiceVersion),
			uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		)
		t.tracing = true
		logger.Info("tracing export enabled", "backend", "uptrace")
	}

	if cfg.PyroscopeEnabled {
		profiler, err := pyroscope.Start(profilerConfig(cfg))
		if err != nil {
			_ = t.Shutdown(context.Background())
			return nil, fmt.Errorf("start pyroscope: %w", err)
		}
		t.profiler = profiler
		logger.Info("continuous profiling enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	}

	t.pprof = StartPprofServer(cfg, logger)
	return t, nil
}

func profilerConfig(cfg config.Config) pyroscope.Config {
	return pyroscope.Config{
		ApplicationName: cfg.PyroscopeAppName,
		ServerAddress:   cfg.PyroscopeServerAddress,
		AuthToken:       cfg.PyroscopeAuthToken,
		UploadRate:      cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
			"version": cfg.ServiceVersion,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	}
}

// Shutdown stops everything Setup started, flushing pending spans within ctx.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	if err := stopPprofServer(ctx, t.pprof, t.logger); err != nil {
		errs = append(errs, fmt.Errorf("stop pprof: %w", err))
	}
	if t.profiler != nil {
		if err := t.profiler.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop pyroscope: %w", err))
		}
	}
	if t.tracing {
		if err := uptrace.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("flush traces: %w", err))
		}
	}
	return errors.Join(errs...)
}
