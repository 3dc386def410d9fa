package table

import (
	"strconv"

	"github.com/pkg/errors"

	"bizviz/pkg/dataprep"
	"bizviz/pkg/synth"
)

// Row is one observation.
type Row struct {
	Spend      float64
	Acquired   float64
	Campaign   string
	SpendLevel string // empty unless the table was built with a binner
}

// Table is an immutable, ordered set of observations.
type Table struct {
	rows   []Row
	schema Schema
}

// Group holds the acquisition values of one (x, hue) cell.
type Group struct {
	X      string
	Hue    string
	Values []float64
}

// Build zips the generated columns into rows. A nil binner leaves the
// spend_level column out of the table.
func Build(cols synth.Columns, binner *dataprep.Binner) (*Table, error) {
	n := len(cols.Spend)
	if len(cols.Acquired) != n || len(cols.Campaign) != n {
		return nil, errors.Errorf("table: mismatched column lengths (spend %d, acquired %d, campaign %d)",
			n, len(cols.Acquired), len(cols.Campaign))
	}

	var levels []string
	if binner != nil {
		var err error
		if levels, err = binner.CutAll(cols.Spend); err != nil {
			return nil, errors.Wrap(err, "table: bucketing spend")
		}
	}

	t := &Table{
		rows: make([]Row, n),
		schema: Schema{
			FeatureNames: []string{ColSpend, ColAcquired, ColCampaign},
			Types:        []Kind{Numeric, Numeric, Categorical},
		},
	}
	if levels != nil {
		t.schema.FeatureNames = []string{ColSpend, ColSpendLevel, ColAcquired, ColCampaign}
		t.schema.Types = []Kind{Numeric, Categorical, Numeric, Categorical}
	}
	for i := range n {
		t.rows[i] = Row{
			Spend:    cols.Spend[i],
			Acquired: cols.Acquired[i],
			Campaign: cols.Campaign[i],
		}
		if levels != nil {
			t.rows[i].SpendLevel = levels[i]
		}
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns row i.
func (t *Table) Row(i int) Row { return t.rows[i] }

// Rows returns a copy of all rows.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Schema returns the table's column layout.
func (t *Table) Schema() Schema {
	return Schema{
		FeatureNames: append([]string(nil), t.schema.FeatureNames...),
		Types:        append([]Kind(nil), t.schema.Types...),
	}
}

// HasColumn reports whether the named column is present.
func (t *Table) HasColumn(name string) bool { return t.schema.Index(name) >= 0 }

// Float returns a copy of a numeric column.
func (t *Table) Float(col string) ([]float64, error) {
	if err := t.checkKind(col, Numeric); err != nil {
		return nil, err
	}
	out := make([]float64, len(t.rows))
	for i, r := range t.rows {
		switch col {
		case ColSpend:
			out[i] = r.Spend
		case ColAcquired:
			out[i] = r.Acquired
		}
	}
	return out, nil
}

// Strings returns a copy of a categorical column.
func (t *Table) Strings(col string) ([]string, error) {
	if err := t.checkKind(col, Categorical); err != nil {
		return nil, err
	}
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		switch col {
		case ColCampaign:
			out[i] = r.Campaign
		case ColSpendLevel:
			out[i] = r.SpendLevel
		}
	}
	return out, nil
}

// Categories returns the distinct values of a categorical column. Values
// listed in order come first, in that order, followed by any others in
// order of first appearance. Listed values absent from the column are
// dropped.
func (t *Table) Categories(col string, order []string) ([]string, error) {
	values, err := t.Strings(col)
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(values))
	for _, v := range values {
		present[v] = true
	}
	var out []string
	for _, v := range dataprep.Levels(values, order) {
		if present[v] {
			out = append(out, v)
		}
	}
	return out, nil
}

// Group splits a numeric column by the categorical x column and, when hue
// is not empty, by the hue column. Groups are ordered by x then hue, using
// the given orders; cells with no rows are omitted.
func (t *Table) Group(y, x, hue string, xOrder, hueOrder []string) ([]Group, error) {
	values, err := t.Float(y)
	if err != nil {
		return nil, err
	}
	xs, err := t.Strings(x)
	if err != nil {
		return nil, err
	}
	xLevels, err := t.Categories(x, xOrder)
	if err != nil {
		return nil, err
	}
	hues := make([]string, len(t.rows))
	hueLevels := []string{""}
	if hue != "" {
		if hues, err = t.Strings(hue); err != nil {
			return nil, err
		}
		if hueLevels, err = t.Categories(hue, hueOrder); err != nil {
			return nil, err
		}
	}

	cells := make(map[[2]string][]float64)
	for i, v := range values {
		k := [2]string{xs[i], hues[i]}
		cells[k] = append(cells[k], v)
	}
	var groups []Group
	for _, xv := range xLevels {
		for _, hv := range hueLevels {
			vs, ok := cells[[2]string{xv, hv}]
			if !ok {
				continue
			}
			groups = append(groups, Group{X: xv, Hue: hv, Values: vs})
		}
	}
	return groups, nil
}

// Record returns row i formatted as strings in schema order.
func (t *Table) Record(i int) []string {
	r := t.rows[i]
	out := make([]string, 0, len(t.schema.FeatureNames))
	for _, name := range t.schema.FeatureNames {
		switch name {
		case ColSpend:
			out = append(out, strconv.FormatFloat(r.Spend, 'f', 6, 64))
		case ColAcquired:
			out = append(out, strconv.FormatFloat(r.Acquired, 'f', 6, 64))
		case ColCampaign:
			out = append(out, r.Campaign)
		case ColSpendLevel:
			out = append(out, r.SpendLevel)
		}
	}
	return out
}

func (t *Table) checkKind(col string, want Kind) error {
	kind, ok := t.schema.KindOf(col)
	if !ok {
		return errors.Errorf("table: no column %q", col)
	}
	if kind != want {
		return errors.Errorf("table: column %q is %s, not %s", col, kind, want)
	}
	return nil
}
