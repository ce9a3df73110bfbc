package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ringgauge/pkg/config"
)

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Config.Encode(cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				p, err := config.Path()
				if err != nil {
					return fmt.Errorf("get config path: %w", err)
				}
				path = p
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			if _, err := os.Stat(path); os.IsNotExist(err) {
				printNextStep("Not found, create it with", appName+" config show > "+path)
			}
			return nil
		},
	})

	return cmd
}
