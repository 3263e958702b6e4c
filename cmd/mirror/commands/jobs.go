package commands

import "github.com/spf13/cobra"

func (c *CLI) newJobsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "List the configured jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Jobs(cmd.Context(), c.configPath)
		},
	}
}
