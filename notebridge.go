package notebridge

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/zero-day-ai/notebridge/addin"
	"github.com/zero-day-ai/notebridge/config"
	"github.com/zero-day-ai/notebridge/diag"
	"github.com/zero-day-ai/notebridge/fault"
	"github.com/zero-day-ai/notebridge/launch"
	"github.com/zero-day-ai/notebridge/notify"
	"github.com/zero-day-ai/notebridge/ribbon"
)

// MeterName is the instrumentation scope of the add-in's counters.
const MeterName = "github.com/zero-day-ai/notebridge"

// New builds an add-in from the configuration and options.
//
// Without WithConfig or WithConfigFile the built-in defaults are used, with
// environment overrides applied. The configuration is validated before any
// collaborator is built.
func New(opts ...Option) (*addin.AddIn, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fault.Configuration("notebridge.New", fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}

	logger := o.logger
	if logger == nil {
		logger = NewLogger(cfg)
	}

	builder, err := ribbon.NewBuilder(cfg.RibbonOptions())
	if err != nil {
		return nil, fault.Configuration("notebridge.New", err)
	}

	launcher := o.launcher
	if launcher == nil {
		launcher = launch.NewShellLauncher()
	}
	notifier := o.notifier
	if notifier == nil {
		notifier = notify.NewDesktop()
	}

	ac := addin.Config{
		Identity: addin.Identity{
			CLSID:        cfg.Identity.CLSID,
			ProgID:       cfg.Identity.ProgID,
			FriendlyName: cfg.Identity.FriendlyName,
			Description:  cfg.Identity.Description,
		},
		Ribbon:      builder,
		Launcher:    launcher,
		Request:     cfg.LaunchRequest(),
		Notifier:    notifier,
		NotifyTitle: cfg.Notify.Title,
		Recorder:    o.recorder(cfg, logger),
		Logger:      logger,
		Tracer:      o.tracer,
		HostInfo:    o.hostInfo,
	}
	if o.sink == nil && !cfg.Diagnostics.Disabled {
		ac.LogPath = cfg.Diagnostics.LogPath
	}
	if o.meterProvider != nil {
		ac.Meter = o.meterProvider.Meter(MeterName)
	}

	return addin.New(ac)
}

func (o *options) loadConfig() (*config.Config, error) {
	switch {
	case o.config != nil:
		return o.config, nil
	case o.configPath != "":
		cfg, err := config.Load(o.configPath)
		if err != nil {
			return nil, fault.Configuration("notebridge.New", err)
		}
		return cfg, nil
	default:
		cfg, err := config.FromEnv()
		if err != nil {
			return nil, fault.Configuration("notebridge.New", err)
		}
		return cfg, nil
	}
}

func (o *options) recorder(cfg *config.Config, logger *slog.Logger) *diag.Recorder {
	switch {
	case o.sink != nil:
		return diag.NewRecorder(diag.NewLineHandler(o.sink, nil), logger)
	case cfg.Diagnostics.Disabled:
		return diag.NewRecorder(nil, logger)
	default:
		return diag.NewFileRecorder(cfg.Diagnostics.LogPath, logger)
	}
}

// NewLogger returns the operational logger described by the log section of
// cfg: a text or JSON handler on stderr at the configured level.
func NewLogger(cfg *config.Config) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	if strings.EqualFold(cfg.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, handlerOpts))
}
