package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zero-day-ai/notebridge"
	"github.com/zero-day-ai/notebridge/addin"
	"github.com/zero-day-ai/notebridge/diag"
	"github.com/zero-day-ai/notebridge/hosttest"
	"github.com/zero-day-ai/notebridge/launch"
	"github.com/zero-day-ai/notebridge/notify"
)

// NewSimulateCommand creates the simulate command. It plays the host: it
// resolves every operation by name and drives a full session through the
// dispatch table, printing the diagnostic records the add-in writes.
func NewSimulateCommand(load Loader) *cobra.Command {
	var (
		clicks  int
		dryRun  bool
		control string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Drive a simulated host session",
		Long: `Connect, load the ribbon, click the export button, shut down and
disconnect, exactly as the host would. With --dry-run the exporter is not
started; the launch request is printed instead. Failure notifications are
printed rather than shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			sink := diag.NewMemorySink()
			opts := []notebridge.Option{
				notebridge.WithDiagnosticSink(sink),
				notebridge.WithNotifier(notify.NewWriterNotifier(out)),
			}
			if dryRun {
				opts = append(opts, notebridge.WithLauncher(launch.LauncherFunc(
					func(ctx context.Context, req launch.Request) (*launch.Handle, error) {
						fmt.Fprintf(out, "launch %s %s\n", req.Target, strings.Join(req.Args, " "))
						return &launch.Handle{Target: req.Target}, nil
					})))
			}
			a, err := build(cfg, opts...)
			if err != nil {
				return err
			}

			host := hosttest.NewHost(a.Dispatch())
			if _, err := host.Session(cmd.Context(), clicks, addin.RibbonControl{ControlID: control}); err != nil {
				return fmt.Errorf("session failed: %w", err)
			}

			for _, rec := range sink.Records() {
				fmt.Fprint(out, rec)
			}
			connects, disconnects := a.Counts()
			fmt.Fprintf(out, "state=%s connects=%d disconnects=%d\n", a.State(), connects, disconnects)
			return nil
		},
	}
	cmd.Flags().IntVar(&clicks, "clicks", 1, "number of times to click the export button")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the launch request instead of starting the exporter")
	cmd.Flags().StringVar(&control, "control", "btnExportToObsidian", "id of the clicked control")

	return cmd
}
