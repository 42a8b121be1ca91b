package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the prodquery command line.
func Execute() {
	if err := newRootCmd(nil).execute(context.Background()); err != nil {
		os.Exit(1)
	}
}

// rootCmd couples the command tree with the app its pre-run builds, so
// components are stopped even when a subcommand fails.
type rootCmd struct {
	cmd *cobra.Command
	app *app
}

// newRootCmd builds the command tree. A nil logOut sends logs where the
// configuration says.
func newRootCmd(logOut io.Writer) *rootCmd {
	var flags globalFlags
	r := &rootCmd{}

	r.cmd = &cobra.Command{
		Use:          "prodquery",
		Short:        "Query an ordered product catalogue",
		Long:         "prodquery filters, projects, orders and selects products from a seed catalogue.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			a, err := newApp(cmd.Context(), flags, logOut)
			if err != nil {
				return err
			}
			r.app = a
			return nil
		},
	}

	pf := r.cmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "Config file (default: ./config.yml when present)")
	pf.StringVarP(&flags.seedFile, "seed", "s", "", "YAML or JSON product seed file (default: built-in catalogue)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format (console, json)")
	pf.BoolVar(&flags.trace, "trace", false, "Log a span for every query operation")
	pf.BoolVar(&flags.metrics, "metrics", false, "Log operation counts on exit")

	appFn := func() *app { return r.app }
	r.cmd.AddCommand(
		listCmd(appFn),
		sortCmd(appFn),
		filterCmd(appFn),
		selectCmd(appFn, "first", "Show the first matching product"),
		selectCmd(appFn, "last", "Show the last matching product"),
		selectCmd(appFn, "single", "Show the only matching product"),
		distinctCmd(appFn),
		anyCmd(appFn),
		demoCmd(appFn),
		versionCmd(),
	)
	return r
}

func (r *rootCmd) execute(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if r.app != nil {
		err = stderrors.Join(err, r.app.close())
		r.app = nil
	}
	return err
}
