package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/mirror/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [jobs...]",
		Short: "Run the configured jobs once, or only the named ones",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			trace, _ := cmd.Flags().GetBool("trace")

			return c.app.Run(cmd.Context(), app.RunOptions{
				ConfigPath: c.configPath,
				Jobs:       args,
				DryRun:     dryRun,
				Trace:      trace,
			})
		},
	}
	cmd.Flags().BoolP("dry-run", "n", false, "Print the edits instead of saving them, and leave the state untouched")
	cmd.Flags().Bool("trace", false, "Log the duration of every traced operation")
	return cmd
}
