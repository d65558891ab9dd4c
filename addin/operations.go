package addin

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/zero-day-ai/notebridge/fault"
	"github.com/zero-day-ai/notebridge/lifecycle"
	"github.com/zero-day-ai/notebridge/notify"
)

// OnConnection is delivered when the host loads the add-in. The application
// and add-in instance objects are kept until OnDisconnection; a repeated
// connect replaces them. custom is reserved and left untouched.
func (a *AddIn) OnConnection(app any, mode lifecycle.ConnectMode, addInInst any, custom *[]any) {
	a.onConnection(context.Background(), app, mode, addInInst, custom)
}

func (a *AddIn) onConnection(ctx context.Context, app any, mode lifecycle.ConnectMode, addInInst any, _ *[]any) {
	a.call(ctx, OpOnConnection, fault.KindLifecycle, func(rec *record) error {
		t := a.machine.Apply(lifecycle.EventConnect)

		a.mu.Lock()
		a.app = app
		a.addInInst = addInInst
		a.mode = mode
		a.mu.Unlock()

		rec.add("mode", mode.String())
		rec.transition(t)

		info, err := a.hostInfo(ctx)
		if err != nil {
			rec.add("host_error", err.Error())
			return nil
		}
		a.mu.Lock()
		a.host = info
		a.mu.Unlock()
		rec.add(info.Attrs()...)
		return nil
	})
}

// OnDisconnection is delivered when the host unloads the add-in. The host
// objects received on connect are released.
func (a *AddIn) OnDisconnection(mode lifecycle.DisconnectMode, custom *[]any) {
	a.onDisconnection(context.Background(), mode, custom)
}

func (a *AddIn) onDisconnection(ctx context.Context, mode lifecycle.DisconnectMode, _ *[]any) {
	a.call(ctx, OpOnDisconnection, fault.KindLifecycle, func(rec *record) error {
		t := a.machine.Apply(lifecycle.EventDisconnect)

		a.mu.Lock()
		a.app = nil
		a.addInInst = nil
		a.mu.Unlock()

		rec.add("mode", mode.String())
		rec.transition(t)
		return nil
	})
}

// OnAddInsUpdate is delivered when the host's add-in list changes.
func (a *AddIn) OnAddInsUpdate(custom *[]any) {
	a.notification(context.Background(), OpOnAddInsUpdate, lifecycle.EventAddInsUpdate)
}

// OnStartupComplete is delivered once the host has finished starting.
func (a *AddIn) OnStartupComplete(custom *[]any) {
	a.notification(context.Background(), OpOnStartupComplete, lifecycle.EventStartupComplete)
}

// OnBeginShutdown is delivered when the host starts shutting down.
func (a *AddIn) OnBeginShutdown(custom *[]any) {
	a.notification(context.Background(), OpOnBeginShutdown, lifecycle.EventBeginShutdown)
}

func (a *AddIn) notification(ctx context.Context, op string, e lifecycle.Event) {
	a.call(ctx, op, fault.KindLifecycle, func(rec *record) error {
		rec.transition(a.machine.Apply(e))
		return nil
	})
}

// GetCustomUI returns the ribbon descriptor. The same descriptor is returned
// for every ribbonID. If it cannot be rendered the host gets an empty
// string, which it treats as no UI contribution.
func (a *AddIn) GetCustomUI(ribbonID string) string {
	return a.getCustomUI(context.Background(), ribbonID)
}

func (a *AddIn) getCustomUI(ctx context.Context, ribbonID string) string {
	var out string
	a.call(ctx, OpGetCustomUI, fault.KindIntegration, func(rec *record) error {
		rec.add("ribbon_id", ribbonID)
		text, err := a.ribbon.Build(ribbonID)
		if err != nil {
			return err
		}
		out = text
		rec.add("bytes", len(text))
		return nil
	})
	return out
}

// ExportToObsidian is the activation callback named by the descriptor's
// onAction. It starts the configured exporter and returns without waiting
// for it. A launch failure is shown to the user and recorded; it never
// reaches the host. Every call launches, including repeated clicks and
// clicks delivered after disconnect.
func (a *AddIn) ExportToObsidian(control Control) {
	a.exportToObsidian(context.Background(), control)
}

func (a *AddIn) exportToObsidian(ctx context.Context, control Control) {
	a.call(ctx, OpExportToObsidian, fault.KindActivation, func(rec *record) error {
		rec.add("activation", uuid.NewString())
		if control != nil && control.ID() != "" {
			rec.add("control", control.ID())
		}
		state := a.machine.State()
		rec.add("state", state.String())
		rec.add("target", a.request.Target)
		rec.notConnected = state == lifecycle.Unloaded

		a.launches.Add(ctx, 1)
		handle, err := a.launcher.Launch(ctx, a.request)
		if err != nil {
			a.launchFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("code", fault.CodeOf(err))))
			if nerr := a.notifier.Notify(notify.LaunchFailure(a.title, err)); nerr != nil {
				rec.add("notify_error", nerr.Error())
			}
			return err
		}
		if handle != nil && handle.PID > 0 {
			rec.add("pid", handle.PID)
		}
		return nil
	})
}
