// Package commands implements the CLI commands for natdeps.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/natdeps/internal/app"
	"go.trai.ch/natdeps/internal/build"
	"go.trai.ch/natdeps/internal/core/domain"
)

// CLI represents the command line interface for natdeps.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	ConfigureLogging(verbose, jsonLogs bool)
	Check(ctx context.Context, opts app.Options) error
	Install(ctx context.Context, opts app.Options) (domain.RunState, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "natdeps",
		Short:         "Install native C/C++ packages pinned in " + domain.ManifestFileName,
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

	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Show debug messages")
	flags.Bool("json-logs", false, "Write log messages as JSON")
	flags.StringP("config", "c", "", "Path to the configuration file (default "+domain.ConfigFileName+")")
	flags.StringP("manifest", "m", "", "Path to the manifest (default "+domain.ManifestFileName+")")
	flags.StringP("lock", "l", "", "Path to the lock file (default "+domain.LockFileName+")")
	flags.String("install-root", "", "Directory packages are installed into (default "+domain.DefaultInstallRoot+")")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		c.app.ConfigureLogging(verbose, jsonLogs)
	}

	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newInstallCmd())
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

func options(cmd *cobra.Command) app.Options {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	manifest, _ := flags.GetString("manifest")
	lock, _ := flags.GetString("lock")
	installRoot, _ := flags.GetString("install-root")

	return app.Options{
		ConfigPath:   configPath,
		ManifestPath: manifest,
		LockPath:     lock,
		InstallRoot:  installRoot,
	}
}
