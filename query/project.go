package query

// All returns every element unchanged, in order, in a new slice.
func All[T any](src []T) []T {
	out := make([]T, len(src))
	copy(out, src)
	return out
}

// Select projects each element through fn, preserving order.
func Select[T, U any](src []T, fn func(T) U) []U {
	out := make([]U, len(src))
	for i, v := range src {
		out[i] = fn(v)
	}
	return out
}

// Where returns the ordered subsequence matching every predicate.
func Where[T any](src []T, preds ...Predicate[T]) []T {
	match := matcher(preds)
	out := make([]T, 0)
	for _, v := range src {
		if match(v) {
			out = append(out, v)
		}
	}
	return out
}

// Distinct returns the first occurrence of each value, in first-seen order.
func Distinct[T comparable](src []T) []T {
	return DistinctBy(src, func(v T) T { return v })
}

// DistinctBy returns the first element for each distinct key, in first-seen order.
func DistinctBy[T any, K comparable](src []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(src))
	out := make([]T, 0, len(src))
	for _, v := range src {
		k := key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Any reports whether at least one element matches.
func Any[T any](src []T, preds ...Predicate[T]) bool {
	match := matcher(preds)
	for _, v := range src {
		if match(v) {
			return true
		}
	}
	return false
}

// Every reports whether all elements match. It is true for an empty sequence.
func Every[T any](src []T, preds ...Predicate[T]) bool {
	match := matcher(preds)
	for _, v := range src {
		if !match(v) {
			return false
		}
	}
	return true
}

// Count returns the number of matching elements.
func Count[T any](src []T, preds ...Predicate[T]) int {
	match := matcher(preds)
	n := 0
	for _, v := range src {
		if match(v) {
			n++
		}
	}
	return n
}
