package automaton

// grow extends s with zero values until it has at least size elements.
func grow[T any](s []T, size int) []T {
	if len(s) >= size {
		return s
	}
	return append(s, make([]T, size-len(s))...)
}

// distinct drops repeated values, keeping first occurrences in order.
func distinct[T comparable](values []T) []T {
	seen := make(map[T]struct{}, len(values))
	result := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
