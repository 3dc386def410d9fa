package stats

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one box of a boxplot.
type Summary struct {
	N      int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64

	// LowerFence and UpperFence bound the whiskers; values outside are outliers.
	LowerFence, UpperFence float64
	Outliers               []float64
}

// IQR returns the interquartile range.
func (s Summary) IQR() float64 { return s.Q3 - s.Q1 }

// Describe summarizes x. An empty slice yields a zero Summary.
func Describe(x []float64) Summary {
	n := len(x)
	if n == 0 {
		return Summary{}
	}
	sorted := make([]float64, n)
	copy(sorted, x)
	sort.Float64s(sorted)

	s := Summary{
		N:      n,
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		Q1:     percentileSorted(sorted, 25),
		Median: percentileSorted(sorted, 50),
		Q3:     percentileSorted(sorted, 75),
	}
	if n > 1 {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	} else {
		s.Mean = sorted[0]
	}
	s.LowerFence, s.UpperFence = fences(s.Q1, s.Q3)
	s.Outliers = outside(sorted, s.LowerFence, s.UpperFence)
	return s
}

// Median returns the median value of the slice (allocates a copy).
func Median(x []float64) float64 {
	return Percentile(x, 50)
}

// Percentile returns the p-th percentile of x (0 <= p <= 100), linearly
// interpolating between the closest ranks.
func Percentile(x []float64, p float64) float64 {
	if len(x) == 0 {
		return 0
	}
	cp := make([]float64, len(x))
	copy(cp, x)
	sort.Float64s(cp)
	return percentileSorted(cp, p)
}

func percentileSorted(x []float64, p float64) float64 {
	n := len(x)
	if p <= 0 {
		return x[0]
	}
	if p >= 100 {
		return x[n-1]
	}
	rank := p / 100 * float64(n-1)
	lower := int(rank)
	upper := lower + 1
	weight := rank - float64(lower)
	if upper >= n {
		return x[lower]
	}
	return x[lower]*(1-weight) + x[upper]*weight
}
