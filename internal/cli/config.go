package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tablegrid/pkg/config"
)

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the configuration after file and flag overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				path = config.DefaultPath(appName)
			}
			printKeyValue("config file", path)
			printKeyValue("source", sourceLabel(c.Config.Source))
			return c.Config.Write(cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the default config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath(appName)
			if path == "" {
				return fmt.Errorf("no user config directory")
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	return cmd
}

// sourceLabel describes where cell contents are read from.
func sourceLabel(s config.Source) string {
	switch {
	case s.Path != "":
		return s.Path
	case s.RedisAddr != "":
		return fmt.Sprintf("redis://%s/%s", s.RedisAddr, s.RedisKey)
	default:
		return "bundled sample text"
	}
}
