package commands

import "github.com/spf13/cobra"

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the expansion cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show <title>",
		Short: "List the cached expansions of a source page, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.ShowCache(cmd.Context(), c.configPath, args[0])
		},
	})
	return cmd
}
