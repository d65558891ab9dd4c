package addin

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/notebridge/dispatch"
	"github.com/zero-day-ai/notebridge/lifecycle"
)

// buildTable exposes the operations by name with the argument shapes the
// host marshals.
func (a *AddIn) buildTable(tracer trace.Tracer) (*dispatch.Table, error) {
	cfg := dispatch.NewConfig()
	if tracer != nil {
		cfg.SetTracer(tracer)
	}

	cfg.AddMethod(OpOnConnection, "Host loaded the add-in",
		func(ctx context.Context, args []any) (any, error) {
			a.onConnection(ctx, args[0], lifecycle.ConnectMode(args[1].(int32)), args[2], args[3].(*[]any))
			return nil, nil
		},
		dispatch.Object("Application"),
		dispatch.Int("ConnectMode"),
		dispatch.Object("AddInInst"),
		dispatch.CustomArray("custom"),
	)

	cfg.AddMethod(OpOnDisconnection, "Host unloaded the add-in",
		func(ctx context.Context, args []any) (any, error) {
			a.onDisconnection(ctx, lifecycle.DisconnectMode(args[0].(int32)), args[1].(*[]any))
			return nil, nil
		},
		dispatch.Int("RemoveMode"),
		dispatch.CustomArray("custom"),
	)

	for _, n := range []struct {
		op    string
		desc  string
		event lifecycle.Event
	}{
		{OpOnAddInsUpdate, "Host add-in list changed", lifecycle.EventAddInsUpdate},
		{OpOnStartupComplete, "Host finished starting", lifecycle.EventStartupComplete},
		{OpOnBeginShutdown, "Host is shutting down", lifecycle.EventBeginShutdown},
	} {
		n := n
		cfg.AddMethod(n.op, n.desc,
			func(ctx context.Context, args []any) (any, error) {
				a.notification(ctx, n.op, n.event)
				return nil, nil
			},
			dispatch.CustomArray("custom"),
		)
	}

	cfg.AddMethod(OpGetCustomUI, "Ribbon descriptor",
		func(ctx context.Context, args []any) (any, error) {
			return a.getCustomUI(ctx, args[0].(string)), nil
		},
		dispatch.String("RibbonID"),
	)

	cfg.AddMethod(OpExportToObsidian, "Export the current page",
		func(ctx context.Context, args []any) (any, error) {
			a.exportToObsidian(ctx, controlOf(args[0]))
			return nil, nil
		},
		dispatch.Object("control"),
	)

	return dispatch.New(cfg)
}
