package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"bizviz/pkg/pipeline"
)

// Print the box statistics behind each box of the chart.
func summaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print quartiles, whiskers and outlier counts for every box.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pipeline.New(a.cfg, nil)
			if err != nil {
				return err
			}
			tbl, err := p.Build()
			if err != nil {
				return err
			}
			summaries, err := p.Summarize(tbl)
			if err != nil {
				return err
			}
			shares, err := p.CampaignShares(tbl)
			if err != nil {
				return err
			}
			renderSummary(cmd.OutOrStdout(), p.Options().X, summaries)
			renderShares(cmd.OutOrStdout(), shares)
			return nil
		},
	}
}

func renderSummary(w io.Writer, x string, summaries []pipeline.GroupSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{x, "hue", "n", "mean", "std", "min", "q1", "median", "q3", "max", "outliers"})
	for _, s := range summaries {
		hue := s.Hue
		if hue == "" {
			hue = "-"
		}
		t.AppendRow(table.Row{
			s.X, hue, s.N,
			formatFloat(s.Mean), formatFloat(s.Std), formatFloat(s.Min),
			formatFloat(s.Q1), formatFloat(s.Median), formatFloat(s.Q3), formatFloat(s.Max),
			len(s.Outliers),
		})
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d groups)\n", len(summaries))
}

func renderShares(w io.Writer, shares []pipeline.Share) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"campaign", "rows", "share"})
	for _, s := range shares {
		t.AppendRow(table.Row{s.Campaign, s.Count, formatFloat(s.Fraction)})
	}
	t.Render()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
