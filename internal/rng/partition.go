package rng

// Partition splits total into len(shares)+1 non-negative parts that sum to
// total exactly. Each share is applied as a floored proportion of total; the
// final part absorbs the rounding remainder. This is the single tie-break
// policy used anywhere an exhaustive split must reconcile with a known total
// (bot sub-categories, device split, source split).
//
// Shares must each be in [0, 1] and sum to at most 1, otherwise the remainder
// would go negative and the caller has a config bug.
func Partition(total int, shares []float64) []int {
	parts := make([]int, len(shares)+1)
	remaining := total
	for i, share := range shares {
		p := int(float64(total) * share)
		if p > remaining {
			p = remaining
		}
		parts[i] = p
		remaining -= p
	}
	parts[len(shares)] = remaining
	return parts
}

// Normalize scales shares so they sum to target. Used for the source split,
// where six channels are drawn independently and rescaled to 92% of traffic
// before the seventh absorbs the remainder.
func Normalize(shares []float64, target float64) []float64 {
	var sum float64
	for _, s := range shares {
		sum += s
	}
	if sum == 0 {
		return make([]float64, len(shares))
	}
	out := make([]float64, len(shares))
	for i, s := range shares {
		out[i] = s / sum * target
	}
	return out
}
