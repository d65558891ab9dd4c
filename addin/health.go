package addin

import (
	"context"
	"fmt"

	"github.com/zero-day-ai/notebridge/health"
	"github.com/zero-day-ai/notebridge/launch"
)

// Health reports whether activation can succeed and whether diagnostics are
// being written.
func (a *AddIn) Health(ctx context.Context) health.Status {
	diagnostics := health.Healthy("diagnostics disabled")
	if a.logPath != "" {
		diagnostics = health.LogTargetCheck(a.logPath)
	}
	if failures := a.recorder.Failures(); failures > 0 && diagnostics.IsHealthy() {
		diagnostics = health.Degraded(
			fmt.Sprintf("%d diagnostic record(s) dropped", failures),
			map[string]any{"dropped": failures},
		)
	}

	contract := health.Healthy("all operations exposed")
	if err := a.VerifyContract(); err != nil {
		contract = health.Unhealthy("host contract broken", map[string]any{"error": err.Error()})
	}

	checks := []health.Check{
		health.Named("launch_target", health.TargetCheck(a.request.Target)),
		health.Named("diagnostics", diagnostics),
		health.Named("contract", contract),
		health.Named("lifecycle", health.Healthy(a.State().String())),
	}
	if opener := a.openerCheck(); opener != nil {
		checks = append(checks, health.Named("desktop_opener", *opener))
	}
	return health.Combine(checks...)
}

// openerCheck checks the desktop opener a shell launcher hands
// non-executable targets to. Executable targets run without it, so a
// missing opener only degrades. It returns nil when no opener is involved.
func (a *AddIn) openerCheck() *health.Status {
	sl, ok := a.launcher.(*launch.ShellLauncher)
	if !ok {
		return nil
	}
	name := sl.OpenerName()
	if name == "" {
		return nil
	}
	status := health.BinaryCheck(name)
	if status.IsUnhealthy() {
		status = health.Degraded(status.Message, status.Details)
	}
	return &status
}
