package notebridge

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/notebridge/config"
	"github.com/zero-day-ai/notebridge/diag"
	"github.com/zero-day-ai/notebridge/hostinfo"
	"github.com/zero-day-ai/notebridge/launch"
	"github.com/zero-day-ai/notebridge/notify"
)

// Option configures New.
type Option func(*options)

type options struct {
	configPath    string
	config        *config.Config
	logger        *slog.Logger
	tracer        trace.Tracer
	meterProvider metric.MeterProvider
	launcher      launch.Launcher
	notifier      notify.Notifier
	sink          diag.Sink
	hostInfo      func(ctx context.Context) (hostinfo.Info, error)
}

// WithConfigFile loads the configuration from path. A directory is searched
// for one of config.FileNames.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configPath = path
	}
}

// WithConfig uses cfg as is. It takes precedence over WithConfigFile.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithLogger sets the operational logger.
// If not provided, one is built from the log section of the configuration.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTracer enables a span per dispatched operation.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// WithMeterProvider enables the invocation and launch counters.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}

// WithLauncher replaces the shell launcher.
func WithLauncher(l launch.Launcher) Option {
	return func(o *options) {
		o.launcher = l
	}
}

// WithNotifier replaces the desktop notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// WithDiagnosticSink writes diagnostic records to sink instead of the
// configured log file.
func WithDiagnosticSink(sink diag.Sink) Option {
	return func(o *options) {
		o.sink = sink
	}
}

// WithHostInfo replaces the host process lookup done on connect.
func WithHostInfo(fn func(ctx context.Context) (hostinfo.Info, error)) Option {
	return func(o *options) {
		o.hostInfo = fn
	}
}
