package cli

import (
	"reflect"

	"github.com/spf13/cobra"

	"github.com/phanxgames/worldview"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect worldview configuration files",
	}

	cmd.AddCommand(c.configDefaultCommand())
	cmd.AddCommand(c.configCheckCommand())

	return cmd
}

// configDefaultCommand creates the "config default" subcommand.
func (c *CLI) configDefaultCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "default",
		Short: "Print the built-in configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return worldview.DefaultConfig().Encode(cmd.OutOrStdout())
		},
	}
}

// configCheckCommand creates the "config check" subcommand.
func (c *CLI) configCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse and validate a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			path := args[0]
			loggerFromContext(cmd.Context()).Debug("checking config", "path", path)

			cfg, err := worldview.LoadConfig(path)
			if err != nil {
				printError(out, "%s is invalid", path)
				return err
			}
			printSuccess(out, "%s is valid", path)
			printDetail(out, "default scale %g, reset %s, paint budget %s",
				cfg.Viewport.DefaultScale, cfg.Viewport.ResetDuration, cfg.Viewport.PaintBudget)
			printDetail(out, "pan %g px/s, zoom %g steps/s, %d key aliases",
				cfg.Keys.PanSpeed, cfg.Keys.ZoomSpeed, len(cfg.Keys.Aliases))
			if reflect.DeepEqual(cfg, worldview.DefaultConfig()) {
				printInfo(out, "identical to the built-in defaults")
			}
			return nil
		},
	}
}
