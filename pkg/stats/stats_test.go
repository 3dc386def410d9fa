package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile(t *testing.T) {
	x := []float64{4, 1, 3, 2, 5}
	tests := map[string]struct {
		p        float64
		expected float64
	}{
		"min":          {p: 0, expected: 1},
		"below zero":   {p: -5, expected: 1},
		"first quart":  {p: 25, expected: 2},
		"median":       {p: 50, expected: 3},
		"interpolated": {p: 10, expected: 1.4},
		"max":          {p: 100, expected: 5},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Percentile(x, tc.p), 1e-12)
		})
	}
	assert.Equal(t, []float64{4, 1, 3, 2, 5}, x, "input must not be reordered")
	assert.Equal(t, 0.0, Percentile(nil, 50))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 2.5, Median([]float64{4, 1, 3, 2}))
	assert.Equal(t, 3.0, Median([]float64{3}))
}

func TestDescribe(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 100}
	s := Describe(x)

	assert.Equal(t, 9, s.N)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 100.0, s.Max)
	assert.Equal(t, 3.0, s.Q1)
	assert.Equal(t, 5.0, s.Median)
	assert.Equal(t, 7.0, s.Q3)
	assert.Equal(t, 4.0, s.IQR())
	assert.Equal(t, -3.0, s.LowerFence)
	assert.Equal(t, 13.0, s.UpperFence)
	assert.Equal(t, []float64{100}, s.Outliers)
	assert.InDelta(t, 15.111111111111, s.Mean, 1e-9)
	assert.Greater(t, s.Std, 0.0)
}

func TestDescribe_Degenerate(t *testing.T) {
	assert.Equal(t, Summary{}, Describe(nil))

	s := Describe([]float64{42})
	assert.Equal(t, 1, s.N)
	assert.Equal(t, 42.0, s.Mean)
	assert.Equal(t, 0.0, s.Std)
	assert.Equal(t, 42.0, s.Median)
	assert.Empty(t, s.Outliers)
}

func TestOutliers(t *testing.T) {
	lo, hi := TukeyFences([]float64{1, 2, 3, 4, 5, 6, 7, 8, 100})
	assert.Equal(t, -3.0, lo)
	assert.Equal(t, 13.0, hi)

	assert.Equal(t, []float64{-50, 100}, Outliers([]float64{-50, 1, 2, 3, 4, 5, 6, 7, 8, 100}))
	assert.Empty(t, Outliers([]float64{1, 2, 3}))
}
