package stats

// WhiskerFactor is the multiple of the IQR past the quartiles where the
// boxplot whiskers stop.
const WhiskerFactor = 1.5

// TukeyFences returns the lower and upper outlier fences of x.
func TukeyFences(x []float64) (float64, float64) {
	if len(x) == 0 {
		return 0, 0
	}
	return fences(Percentile(x, 25), Percentile(x, 75))
}

// Outliers returns the values of x outside the Tukey fences, in input order.
func Outliers(x []float64) []float64 {
	lo, hi := TukeyFences(x)
	return outside(x, lo, hi)
}

func fences(q1, q3 float64) (float64, float64) {
	iqr := q3 - q1
	return q1 - WhiskerFactor*iqr, q3 + WhiskerFactor*iqr
}

func outside(x []float64, lo, hi float64) []float64 {
	var out []float64
	for _, v := range x {
		if v < lo || v > hi {
			out = append(out, v)
		}
	}
	return out
}
