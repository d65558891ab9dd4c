package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/notebridge"
	"github.com/zero-day-ai/notebridge/diag"
)

// ErrUnhealthy is returned by the health command when activation would fail.
var ErrUnhealthy = errors.New("add-in is unhealthy")

// NewHealthCommand creates the health command.
func NewHealthCommand(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the exporter target and the diagnostic log",
		Long: `Check that the configured exporter exists, that the diagnostic log can be
appended to, and that the host contract is intact. Exits non-zero when the
add-in is unhealthy.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			opts := []notebridge.Option{}
			if cfg.Diagnostics.Disabled {
				opts = append(opts, notebridge.WithDiagnosticSink(diag.Discard))
			}
			a, err := build(cfg, opts...)
			if err != nil {
				return err
			}

			status := a.Health(cmd.Context())
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(status); err != nil {
				return fmt.Errorf("failed to encode status: %w", err)
			}
			if err := enc.Close(); err != nil {
				return err
			}
			if status.IsUnhealthy() {
				return ErrUnhealthy
			}
			return nil
		},
	}
}
