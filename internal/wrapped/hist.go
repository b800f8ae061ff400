package wrapped

// bucketize places value using upper-bound-inclusive semantics: bucket i
// holds bounds[i-1] < value <= bounds[i]; everything above the last bound
// lands in the final bucket.
func bucketize(value float64, bounds []float64) int {
	for i, bound := range bounds {
		if value <= bound {
			return i
		}
	}
	return len(bounds)
}

func histogram(values []float64, bounds []float64) []int {
	buckets := make([]int, len(bounds)+1)
	for _, v := range values {
		buckets[bucketize(v, bounds)]++
	}
	return buckets
}
