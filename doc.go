// Package notebridge hosts a OneNote add-in that adds an "Export to
// Obsidian" button to the ribbon and starts an external exporter when it is
// clicked.
//
// The add-in is driven entirely by the host. The host resolves operations by
// name and invokes them late-bound; every exposed operation must exist
// verbatim and must never fault back into the host. The add-in keeps no
// meaningful state beyond a reference to the host application.
//
// # Getting Started
//
// Build an add-in from the configuration file, or from the defaults and the
// environment when no file is given:
//
//	a, err := notebridge.New(notebridge.WithConfigFile("notebridge.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	table := a.Dispatch() // hand this to the host bridge
//
// # Packages
//
//   - addin: the operations, their dispatch table and the lifecycle record.
//   - dispatch: name-to-id resolution and argument coercion for late binding.
//   - lifecycle: the Unloaded/Connected state machine and host mode values.
//   - ribbon: the UI descriptor, its builder and its validator.
//   - launch: fire-and-forget start of the external exporter.
//   - diag: the timestamped, append-only diagnostic log.
//   - config: YAML/TOML configuration with environment overrides.
//   - hosttest: an in-process host for tests and simulation.
//
// # Error Handling
//
// Errors returned by construction are *fault.Error values. Use errors.Is with
// the sentinels re-exported here, or CodeOf for activation failures:
//
//	if notebridge.CodeOf(err) == notebridge.CodeTargetNotFound {
//		// the exporter is missing
//	}
//
// Errors raised inside dispatched operations never reach the host; they are
// recorded in the diagnostic log and, for failed launches, shown to the user.
//
// # Observability
//
// Pass an OpenTelemetry tracer and meter provider to get a span per
// dispatched operation and counters for invocations and launches:
//
//	a, err := notebridge.New(
//		notebridge.WithTracer(otel.Tracer("notebridge")),
//		notebridge.WithMeterProvider(otel.GetMeterProvider()),
//	)
package notebridge
