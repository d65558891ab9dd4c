package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zero-day-ai/notebridge"
	"github.com/zero-day-ai/notebridge/diag"
)

// NewUICommand creates the ui command, which prints the descriptor returned
// to the host for a ribbon id.
func NewUICommand(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "ui [ribbon-id]",
		Short: "Print the ribbon descriptor",
		Long: `Print the ribbon XML the add-in returns from GetCustomUI. The ribbon id
is passed through to the add-in; the descriptor does not depend on it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			a, err := build(cfg, notebridge.WithDiagnosticSink(diag.Discard))
			if err != nil {
				return err
			}

			ribbonID := "Microsoft.OneNote.Notebook"
			if len(args) == 1 {
				ribbonID = args[0]
			}
			ui := a.GetCustomUI(ribbonID)
			if ui == "" {
				return fmt.Errorf("no descriptor for %q", ribbonID)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui)
			return nil
		},
	}
}
