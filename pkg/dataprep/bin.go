package dataprep

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// Spend level labels, lowest bucket first.
const (
	LowSpend    = "Low Spend"
	MediumSpend = "Medium Spend"
	HighSpend   = "High Spend"
)

// Binner maps continuous values onto labeled ranges. Bucket i covers
// (Edges[i], Edges[i+1]]; the first bucket also includes Edges[0].
type Binner struct {
	Edges  []float64
	Labels []string
}

// NewBinner checks that edges are strictly increasing and that there is
// one label per bucket.
func NewBinner(edges []float64, labels []string) (*Binner, error) {
	if len(edges) < 2 {
		return nil, errors.Errorf("dataprep: need at least two bin edges, got %d", len(edges))
	}
	if len(labels) != len(edges)-1 {
		return nil, errors.Errorf("dataprep: %d edges need %d labels, got %d", len(edges), len(edges)-1, len(labels))
	}
	for i := 1; i < len(edges); i++ {
		if !(edges[i] > edges[i-1]) {
			return nil, errors.Errorf("dataprep: bin edges not increasing at %d (%v <= %v)", i, edges[i], edges[i-1])
		}
	}
	b := &Binner{
		Edges:  append([]float64(nil), edges...),
		Labels: append([]string(nil), labels...),
	}
	return b, nil
}

// SpendLevels buckets marketing spend into low (10-40), medium (40-70)
// and high (70-100).
func SpendLevels() *Binner {
	b, err := NewBinner([]float64{10, 40, 70, 100}, []string{LowSpend, MediumSpend, HighSpend})
	if err != nil {
		panic(err)
	}
	return b
}

// Index returns the bucket index of v.
func (b *Binner) Index(v float64) (int, error) {
	lo, hi := b.Edges[0], b.Edges[len(b.Edges)-1]
	if math.IsNaN(v) || v < lo || v > hi {
		return -1, errors.Errorf("dataprep: value %v outside bins [%v, %v]", v, lo, hi)
	}
	if v == lo {
		return 0, nil
	}
	// First edge >= v closes the bucket that holds v.
	i := sort.SearchFloat64s(b.Edges, v)
	return i - 1, nil
}

// Cut returns the label of the bucket holding v.
func (b *Binner) Cut(v float64) (string, error) {
	i, err := b.Index(v)
	if err != nil {
		return "", err
	}
	return b.Labels[i], nil
}

// CutAll labels every value, failing on the first one outside the bins.
func (b *Binner) CutAll(x []float64) ([]string, error) {
	out := make([]string, len(x))
	for i, v := range x {
		label, err := b.Cut(v)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		out[i] = label
	}
	return out, nil
}
