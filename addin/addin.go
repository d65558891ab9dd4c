package addin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/notebridge/diag"
	"github.com/zero-day-ai/notebridge/dispatch"
	"github.com/zero-day-ai/notebridge/fault"
	"github.com/zero-day-ai/notebridge/hostinfo"
	"github.com/zero-day-ai/notebridge/launch"
	"github.com/zero-day-ai/notebridge/lifecycle"
	"github.com/zero-day-ai/notebridge/notify"
	"github.com/zero-day-ai/notebridge/ribbon"
)

// Operation names the host resolves. They must match verbatim.
const (
	OpOnConnection      = "OnConnection"
	OpOnDisconnection   = "OnDisconnection"
	OpOnAddInsUpdate    = "OnAddInsUpdate"
	OpOnStartupComplete = "OnStartupComplete"
	OpOnBeginShutdown   = "OnBeginShutdown"
	OpGetCustomUI       = "GetCustomUI"
	OpExportToObsidian  = "ExportToObsidian"
)

// RequiredOperations lists every operation the host contract requires.
var RequiredOperations = []string{
	OpOnConnection,
	OpOnDisconnection,
	OpOnAddInsUpdate,
	OpOnStartupComplete,
	OpOnBeginShutdown,
	OpGetCustomUI,
	OpExportToObsidian,
}

// Config holds the collaborators of an AddIn.
type Config struct {
	Identity Identity

	// Ribbon renders the UI descriptor (required).
	Ribbon *ribbon.Builder

	// Launcher starts the external exporter (required).
	Launcher launch.Launcher

	// Request is issued on every activation.
	Request launch.Request

	// Notifier shows launch failures. Nil means notify.NewDesktop().
	Notifier notify.Notifier

	// NotifyTitle is the title of failure notifications.
	NotifyTitle string

	// Recorder writes the diagnostic side-channel. Nil drops records.
	Recorder *diag.Recorder

	// LogPath is the diagnostic log location, reported by Health.
	LogPath string

	// Logger is the operational logger. Nil means a text handler on stderr.
	Logger *slog.Logger

	// Tracer creates a span per dispatched operation. Nil means no tracing.
	Tracer trace.Tracer

	// Meter records invocation and launch counters. Nil means no metrics.
	Meter metric.Meter

	// HostInfo describes the host process on connect. Nil means
	// hostinfo.Current.
	HostInfo func(ctx context.Context) (hostinfo.Info, error)
}

// AddIn is a single add-in instance.
type AddIn struct {
	identity Identity
	machine  *lifecycle.Machine

	mu        sync.Mutex
	app       any
	addInInst any
	mode      lifecycle.ConnectMode
	host      hostinfo.Info

	table    *dispatch.Table
	ribbon   *ribbon.Builder
	launcher launch.Launcher
	request  launch.Request
	notifier notify.Notifier
	title    string
	recorder *diag.Recorder
	logPath  string
	logger   *slog.Logger
	hostInfo func(ctx context.Context) (hostinfo.Info, error)

	invocations    metric.Int64Counter
	launches       metric.Int64Counter
	launchFailures metric.Int64Counter
}

// New builds an AddIn and its dispatch table. It fails when a required
// collaborator is missing, when the identity is malformed, or when the
// descriptor's onAction does not name an exposed operation.
func New(cfg Config) (*AddIn, error) {
	if cfg.Ribbon == nil {
		return nil, fault.Configuration("addin.New", errors.New("ribbon builder is required"))
	}
	if cfg.Launcher == nil {
		return nil, fault.Configuration("addin.New", errors.New("launcher is required"))
	}
	if err := cfg.Identity.Validate(); err != nil {
		return nil, fault.Configuration("addin.New", err)
	}

	a := &AddIn{
		identity: cfg.Identity,
		machine:  lifecycle.NewMachine(),
		ribbon:   cfg.Ribbon,
		launcher: cfg.Launcher,
		request:  cfg.Request,
		notifier: cfg.Notifier,
		title:    cfg.NotifyTitle,
		recorder: cfg.Recorder,
		logPath:  cfg.LogPath,
		logger:   cfg.Logger,
		hostInfo: cfg.HostInfo,
	}
	if a.notifier == nil {
		a.notifier = notify.NewDesktop()
	}
	if a.recorder == nil {
		a.recorder = diag.NewRecorder(nil, nil)
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	a.logger = a.logger.With("component", "addin", "progid", cfg.Identity.ProgID)
	if a.hostInfo == nil {
		a.hostInfo = hostinfo.Current
	}

	if err := a.initMetrics(cfg.Meter); err != nil {
		return nil, fault.Configuration("addin.New", err)
	}

	table, err := a.buildTable(cfg.Tracer)
	if err != nil {
		return nil, fault.Integration("addin.New", err)
	}
	a.table = table

	if err := a.VerifyContract(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *AddIn) initMetrics(meter metric.Meter) error {
	if meter == nil {
		meter = metricnoop.NewMeterProvider().Meter("")
	}

	var err error
	a.invocations, err = meter.Int64Counter("addin.invocations",
		metric.WithDescription("Operations delivered by the host"),
		metric.WithUnit("{call}"))
	if err != nil {
		return fmt.Errorf("failed to create invocations counter: %w", err)
	}
	a.launches, err = meter.Int64Counter("addin.launches",
		metric.WithDescription("Exporter launch attempts"),
		metric.WithUnit("{launch}"))
	if err != nil {
		return fmt.Errorf("failed to create launches counter: %w", err)
	}
	a.launchFailures, err = meter.Int64Counter("addin.launch_failures",
		metric.WithDescription("Exporter launches that failed to start"),
		metric.WithUnit("{launch}"))
	if err != nil {
		return fmt.Errorf("failed to create launch failures counter: %w", err)
	}
	return nil
}

// VerifyContract checks that every required operation is exposed and that
// the descriptor's onAction resolves, with exact spelling, to one of them.
func (a *AddIn) VerifyContract() error {
	if err := a.table.Verify(RequiredOperations...); err != nil {
		return err
	}
	text, err := a.ribbon.Build("")
	if err != nil {
		return fault.Integration("addin.VerifyContract", err)
	}
	doc, err := ribbon.Parse(text)
	if err != nil {
		return fault.Integration("addin.VerifyContract", err)
	}
	return ribbon.Validate(doc, a.table.Has)
}

// Identity returns the add-in identity.
func (a *AddIn) Identity() Identity {
	return a.identity
}

// Dispatch returns the name-resolved operation table handed to the host.
func (a *AddIn) Dispatch() *dispatch.Table {
	return a.table
}

// State returns the lifecycle state.
func (a *AddIn) State() lifecycle.State {
	return a.machine.State()
}

// Counts returns how many connects and disconnects were delivered.
func (a *AddIn) Counts() (connects, disconnects int) {
	return a.machine.Counts()
}

// Host returns the application object delivered on connect, or nil while
// unloaded.
func (a *AddIn) Host() any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.app
}

// Instance returns the add-in instance object delivered on connect.
func (a *AddIn) Instance() any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.addInInst
}

// ConnectMode returns the mode of the last connect.
func (a *AddIn) ConnectMode() lifecycle.ConnectMode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// HostProcess returns what was learned about the host process on connect.
func (a *AddIn) HostProcess() hostinfo.Info {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.host
}

// Recorder returns the diagnostic recorder.
func (a *AddIn) Recorder() *diag.Recorder {
	return a.recorder
}

// call is the swallow boundary shared by every operation: it counts the
// invocation, runs fn under fault.Guard and writes exactly one diagnostic
// record carrying fn's attributes and, on failure, the error. Nothing
// escapes, not even a panic in the logger or the recorder.
func (a *AddIn) call(ctx context.Context, op string, kind fault.Kind, fn func(rec *record) error) {
	defer func() {
		_ = recover()
	}()

	a.invocations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))

	rec := &record{}
	err := fault.Guard(op, kind, func() error { return fn(rec) })
	if err != nil {
		rec.add("error", err.Error())
		if code := fault.CodeOf(err); code != "" {
			rec.add("code", code)
		}
		a.logger.WarnContext(ctx, "operation failed", "operation", op, "error", err)
	} else if rec.notConnected {
		a.logger.WarnContext(ctx, "operation delivered while not connected",
			"operation", op, "error", fault.Lifecycle(op, fault.ErrNotConnected))
	} else {
		a.logger.DebugContext(ctx, "operation delivered", "operation", op)
	}
	a.recorder.Record(op, rec.attrs...)
}

// record accumulates the key/value pairs of one diagnostic record.
type record struct {
	attrs []any

	// notConnected is set when the operation arrived while Unloaded.
	notConnected bool
}

func (r *record) add(kv ...any) {
	r.attrs = append(r.attrs, kv...)
}

func (r *record) transition(t lifecycle.Transition) {
	r.add("state", t.To.String())
	if t.Violation {
		r.add("violation", true)
		if t.From == lifecycle.Unloaded {
			r.notConnected = true
		}
	}
}
