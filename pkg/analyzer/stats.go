package analyzer

import "math"

// countRange returns how many timestamps fall into [min, max]. Both edges are
// inclusive, so a timestamp sitting exactly on a shared bin edge is counted
// in both adjacent bins.
func countRange(ts []int64, min, max int64) int {
	counter := 0
	for _, t := range ts {
		if min <= t && t <= max {
			counter++
		}
	}
	return counter
}

// distribute walks [start, end] in steps of width seconds and returns the
// per-bin counts. The walk stops once a bin's upper edge passes end, so the
// last bin may cover less than a full width.
func distribute(ts []int64, start, end, width int64) []int {
	distribution := []int{}
	if width <= 0 || start >= end {
		return distribution
	}

	min := start
	max := start + width
	for {
		distribution = append(distribution, countRange(ts, min, max))
		min = max
		max += width
		if max > end {
			break
		}
	}

	return distribution
}

// stdev computes the sample standard deviation of the bin counts. It requires
// at least two bins; the caller treats shorter input as "no anomaly".
func stdev(distribution []int) float64 {
	n := float64(len(distribution))
	if n < 2 {
		return 0
	}

	var sum float64
	for _, c := range distribution {
		sum += float64(c)
	}
	mean := sum / n

	var ss float64
	for _, c := range distribution {
		d := float64(c) - mean
		ss += d * d
	}

	return math.Sqrt(ss / (n - 1))
}
