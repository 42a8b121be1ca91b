package query

// Predicate reports whether an element matches.
type Predicate[T any] func(T) bool

// And matches when every predicate matches. With no predicates it matches everything.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if p != nil && !p(v) {
				return false
			}
		}
		return true
	}
}

// Or matches when at least one predicate matches.
func Or[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if p != nil && p(v) {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate. A nil predicate matches everything, as in And,
// so Not(nil) matches nothing.
func Not[T any](p Predicate[T]) Predicate[T] {
	if p == nil {
		return func(T) bool { return false }
	}
	return func(v T) bool { return !p(v) }
}

// Equal matches elements whose selected value equals want.
func Equal[T any, K comparable](sel func(T) K, want K) Predicate[T] {
	return func(v T) bool { return sel(v) == want }
}

func matcher[T any](preds []Predicate[T]) Predicate[T] {
	if len(preds) == 1 && preds[0] != nil {
		return preds[0]
	}
	return And(preds...)
}
