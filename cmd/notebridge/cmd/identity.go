package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type identityView struct {
	CLSID        string `yaml:"clsid"`
	ProgID       string `yaml:"progid"`
	FriendlyName string `yaml:"friendly_name"`
	Description  string `yaml:"description"`
}

// NewIdentityCommand creates the identity command.
func NewIdentityCommand(load Loader) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Print the identity the host registry knows the add-in by",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := cfg.Identity.Validate(); err != nil {
				return fmt.Errorf("invalid identity: %w", err)
			}

			out := cmd.OutOrStdout()
			if !asYAML {
				fmt.Fprintf(out, "%s %s\n", cfg.Identity.ProgID, cfg.Identity.CLSID)
				return nil
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(identityView(cfg.Identity)); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print all identity fields as YAML")

	return cmd
}
