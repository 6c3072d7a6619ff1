package contacts

// collect is the batch aggregator shared by creates, patches, mutation
// targets and group actions: a sequential fold that records one outcome per
// item and never lets a failing item abort the rest. Result order mirrors
// input order 1:1.
func collect[T, R any](items []T, do func(T) R) []R {
	results := make([]R, 0, len(items))
	for _, item := range items {
		results = append(results, do(item))
	}
	return results
}
