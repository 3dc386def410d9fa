package cmd

import (
	"github.com/spf13/cobra"

	"bizviz/pkg/config"
	"bizviz/pkg/logging"
)

// app carries the resolved configuration from the persistent pre-run to
// the sub-command that runs.
type app struct {
	cfg config.Config
}

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "bizviz",
		Short: "bizviz renders a grouped box plot of synthetic marketing data.",
		Long: `bizviz generates a reproducible sample of marketing spend, customers
acquired and campaign type, then renders it as a grouped box plot PNG.

Without a sub-command it behaves like "bizviz render".

Settings are read, in increasing priority, from built-in defaults, an
optional YAML file passed with --config, BIZVIZ_* environment variables
and command line flags. Example file:

seed: 42
rows: 200
variant: spend-level
output: chart.png`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd)
		},
	}

	config.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		renderCmd(a),
		summaryCmd(a),
		previewCmd(a),
		exportCmd(a),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}
