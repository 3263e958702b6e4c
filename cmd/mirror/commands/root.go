// Package commands implements the CLI commands of the mirror bot.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/mirror/internal/app"
	"go.trai.ch/mirror/internal/build"
	"go.trai.ch/mirror/internal/core/domain"
)

// CLI represents the command line interface for mirror.
type CLI struct {
	app     Application
	rootCmd *cobra.Command

	configPath string
	logFormat  string
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
	Jobs(ctx context.Context, configPath string) error
	ShowCache(ctx context.Context, configPath, title string) error
	SetLogFormat(flag string)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "mirror",
		Short:         "Copies expanded wiki pages into the bot sections of their targets",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", domain.ConfigFileName,
		"Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&c.logFormat, "log-format", "auto", "Log format: auto, pretty, or json")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		c.app.SetLogFormat(c.logFormat)
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newJobsCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
