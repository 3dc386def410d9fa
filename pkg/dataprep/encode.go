package dataprep

// LabelEncode encodes categories as integers. Categories listed in order
// take positions 0..len(order)-1; any other category gets the next free
// position in order of first appearance.
func LabelEncode(data []string, order []string) ([]int, map[string]int) {
	unique := make(map[string]int, len(order))
	for _, v := range order {
		if _, ok := unique[v]; !ok {
			unique[v] = len(unique)
		}
	}
	out := make([]int, len(data))
	for i, v := range data {
		if _, ok := unique[v]; !ok {
			unique[v] = len(unique)
		}
		out[i] = unique[v]
	}
	return out, unique
}

// Levels returns the categories of data sorted by their LabelEncode position.
func Levels(data []string, order []string) []string {
	_, mapping := LabelEncode(data, order)
	levels := make([]string, len(mapping))
	for v, i := range mapping {
		levels[i] = v
	}
	return levels
}

// FrequencyEncode encodes categories by their frequency.
func FrequencyEncode(data []string) ([]float64, map[string]float64) {
	counts := map[string]float64{}
	for _, v := range data {
		counts[v]++
	}
	out := make([]float64, len(data))
	freq := make(map[string]float64, len(counts))
	for v, c := range counts {
		freq[v] = c / float64(len(data))
	}
	for i, v := range data {
		out[i] = freq[v]
	}
	return out, freq
}
