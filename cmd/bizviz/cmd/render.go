package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bizviz/pkg/pipeline"
)

// Generate the data set and write the chart.
func renderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Generate the data set and write the box plot PNG.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd)
		},
	}
}

func (a *app) render(cmd *cobra.Command) error {
	p, err := pipeline.New(a.cfg, nil)
	if err != nil {
		return err
	}
	res, err := p.Run()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d, %d rows)\n",
		res.Output.Path, res.Output.Width, res.Output.Height, res.Table.Len())
	return nil
}
