package random

import (
	"fmt"
	"math/rand"
)

// Sample draws one of values with the given weights. Weights must sum to 1 (+-0.05).
func Sample[T any](rng *rand.Rand, values []T, probs []float64) (T, error) {
	var zero T
	if len(values) == 0 || len(values) != len(probs) {
		return zero, fmt.Errorf("sample: %d values for %d probs", len(values), len(probs))
	}
	sum := 0.0
	for _, p := range probs {
		if !(p >= 0) {
			return zero, fmt.Errorf("sample: negative prob %v", p)
		}
		sum += p
	}
	if !(sum >= 0.95 && sum <= 1.05) {
		return zero, fmt.Errorf("invalid probs sum %v != 1", sum)
	}

	r := rng.Float64() * sum
	cumulativeProb := 0.0
	for i, p := range probs {
		cumulativeProb += p
		if r < cumulativeProb {
			return values[i], nil
		}
	}
	return values[len(values)-1], nil
}

// Choice picks uniformly. Panics on empty values.
func Choice[T any](rng *rand.Rand, values []T) T {
	return values[rng.Intn(len(values))]
}

// Roll is true with probability p
func Roll(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}
