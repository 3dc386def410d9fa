package table

import (
	"bufio"
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
)

// WriteCSV writes the header and every row in schema order.
func WriteCSV(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)
	if err := cw.Write(t.schema.FeatureNames); err != nil {
		return errors.Wrap(err, "table: writing csv header")
	}
	for i := range t.rows {
		if err := cw.Write(t.Record(i)); err != nil {
			return errors.Wrapf(err, "table: writing csv row %d", i)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, "table: flushing csv")
	}
	return errors.Wrap(bw.Flush(), "table: flushing csv")
}
