package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"bizviz/pkg/pipeline"
	tbl "bizviz/pkg/table"
)

// Print the first rows of the generated table.
func previewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the first rows of the generated data set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return err
			}
			if limit < 0 {
				return errors.Errorf("limit must not be negative, got %d", limit)
			}
			p, err := pipeline.New(a.cfg, nil)
			if err != nil {
				return err
			}
			t, err := p.Build()
			if err != nil {
				return err
			}
			renderPreview(cmd.OutOrStdout(), t, limit)
			return nil
		},
	}
	cmd.Flags().Int("limit", 5, "number of rows to print")
	return cmd
}

func renderPreview(w io.Writer, t *tbl.Table, limit int) {
	n := min(limit, t.Len())

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	cols := t.Schema().FeatureNames
	header := make(table.Row, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	tw.AppendHeader(header)

	for i := 0; i < n; i++ {
		rec := t.Record(i)
		row := make(table.Row, len(rec))
		for j, v := range rec {
			row[j] = v
		}
		tw.AppendRow(row)
	}

	tw.Render()
	_, _ = fmt.Fprintf(w, "(%d of %d rows)\n", n, t.Len())
}
