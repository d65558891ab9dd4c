// Package cmd implements the notebridge command line: it prints the ribbon
// descriptor and identity, reports health, and drives a simulated host
// session against the add-in.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zero-day-ai/notebridge"
	"github.com/zero-day-ai/notebridge/addin"
	"github.com/zero-day-ai/notebridge/config"
)

// Version information
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// PrintVersion returns the version line.
func PrintVersion() string {
	return fmt.Sprintf("notebridge v%s (commit: %s, built on: %s)", Version, Commit, Date)
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "notebridge",
		Short: "Inspect and exercise the OneNote Obsidian export add-in",
		Long: `notebridge inspects the OneNote add-in that exports pages to Obsidian.
It prints the ribbon descriptor and the registered identity, checks that the
exporter and the diagnostic log are usable, and runs a simulated host session.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file or directory")

	load := func() (*config.Config, error) {
		if configPath != "" {
			return config.Load(configPath)
		}
		return config.FromEnv()
	}

	cmd.AddCommand(NewUICommand(load))
	cmd.AddCommand(NewIdentityCommand(load))
	cmd.AddCommand(NewHealthCommand(load))
	cmd.AddCommand(NewSimulateCommand(load))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), PrintVersion())
		},
	})

	return cmd
}

// Loader returns the configuration the command operates on.
type Loader func() (*config.Config, error)

// build creates the add-in from cfg with the given extra options.
func build(cfg *config.Config, opts ...notebridge.Option) (*addin.AddIn, error) {
	return notebridge.New(append([]notebridge.Option{notebridge.WithConfig(cfg)}, opts...)...)
}
