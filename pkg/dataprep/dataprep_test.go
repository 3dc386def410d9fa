package dataprep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpendLevels_Cut(t *testing.T) {
	tests := map[string]struct {
		value    float64
		expected string
		err      bool
	}{
		"lowest edge is inclusive": {value: 10, expected: LowSpend},
		"low":                      {value: 25.5, expected: LowSpend},
		"low upper edge":           {value: 40, expected: LowSpend},
		"just above 40":            {value: 40.0000001, expected: MediumSpend},
		"medium upper edge":        {value: 70, expected: MediumSpend},
		"high":                     {value: 99.99, expected: HighSpend},
		"highest edge":             {value: 100, expected: HighSpend},
		"below range":              {value: 9.99, err: true},
		"above range":              {value: 100.5, err: true},
		"nan":                      {value: math.NaN(), err: true},
	}
	b := SpendLevels()
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			actual, err := b.Cut(tc.value)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestNewBinner_Invalid(t *testing.T) {
	tests := map[string]struct {
		edges  []float64
		labels []string
	}{
		"single edge":     {edges: []float64{1}, labels: nil},
		"label count":     {edges: []float64{1, 2, 3}, labels: []string{"a"}},
		"not increasing":  {edges: []float64{1, 3, 2}, labels: []string{"a", "b"}},
		"duplicated edge": {edges: []float64{1, 1}, labels: []string{"a"}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewBinner(tc.edges, tc.labels)
			assert.Error(t, err)
		})
	}
}

func TestBinner_CutAll(t *testing.T) {
	b := SpendLevels()
	labels, err := b.CutAll([]float64{12, 55, 88})
	require.NoError(t, err)
	assert.Equal(t, []string{LowSpend, MediumSpend, HighSpend}, labels)

	_, err = b.CutAll([]float64{12, 5})
	assert.ErrorContains(t, err, "row 1")
}

func TestLabelEncode(t *testing.T) {
	codes, mapping := LabelEncode([]string{"b", "z", "a", "z"}, []string{"a", "b"})
	assert.Equal(t, []int{1, 2, 0, 2}, codes)
	assert.Equal(t, map[string]int{"a": 0, "b": 1, "z": 2}, mapping)

	assert.Equal(t, []string{"a", "b", "z"}, Levels([]string{"z", "b"}, []string{"a", "b"}))
	assert.Equal(t, []string{"z", "b"}, Levels([]string{"z", "b", "z"}, nil))
}

func TestFrequencyEncode(t *testing.T) {
	out, freq := FrequencyEncode([]string{"x", "y", "x", "x"})
	assert.Equal(t, []float64{0.75, 0.25, 0.75, 0.75}, out)
	assert.Equal(t, map[string]float64{"x": 0.75, "y": 0.25}, freq)
}
