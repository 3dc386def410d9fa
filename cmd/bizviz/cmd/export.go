package cmd

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bizviz/pkg/pipeline"
	"bizviz/pkg/table"
)

// Dump the generated table as CSV.
func exportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the generated data set as CSV to stdout or a file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("csv")
			if err != nil {
				return err
			}
			p, err := pipeline.New(a.cfg, nil)
			if err != nil {
				return err
			}
			t, err := p.Build()
			if err != nil {
				return err
			}
			if path == "" {
				return table.WriteCSV(cmd.OutOrStdout(), t)
			}
			return writeCSVFile(path, t)
		},
	}
	cmd.Flags().String("csv", "", "CSV output path (default stdout)")
	return cmd
}

func writeCSVFile(path string, t *table.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "closing %s", path)
		}
	}()
	if err = table.WriteCSV(f, t); err != nil {
		return err
	}
	log.WithFields(log.Fields{"file": path, "rows": t.Len()}).Info("exported table")
	return nil
}
