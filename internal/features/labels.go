package features

// Labels marks index i with 1 when the price k steps ahead is strictly higher.
// The last k entries have no future price and are always 0.
func Labels(closes []float64, k int) []float64 {
	labels := make([]float64, len(closes))

	for i := 0; i+k < len(closes); i++ {
		if k > 0 && closes[i+k] > closes[i] {
			labels[i] = 1
		}
	}

	return labels
}

// LabelMask reports which of n rows carry a real label for horizon k. Rows in
// [n-k, n) are false.
func LabelMask(n, k int) []bool {
	mask := make([]bool, n)
	for i := 0; i < n-k; i++ {
		mask[i] = true
	}

	return mask
}
