package query

import "github.com/kbukum/prodquery/errors"

// Outcome tags the result of an element selection.
type Outcome int

const (
	Found Outcome = iota
	NotFound
	MultipleMatches
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case MultipleMatches:
		return "multiple_matches"
	default:
		return "unknown"
	}
}

// Result is the outcome of First, Last or Single selection.
type Result[T any] struct {
	Value   T
	Outcome Outcome
	op      string
}

// Found reports whether an element was selected.
func (r Result[T]) Found() bool { return r.Outcome == Found }

// Err returns the error for the outcome, or nil when an element was found.
func (r Result[T]) Err() error {
	switch r.Outcome {
	case NotFound:
		return errors.NotFound(r.op)
	case MultipleMatches:
		return errors.MultipleMatches(r.op)
	default:
		return nil
	}
}

// Get returns the selected element or the outcome's error.
func (r Result[T]) Get() (T, error) {
	if err := r.Err(); err != nil {
		var zero T
		return zero, err
	}
	return r.Value, nil
}

// OrElse substitutes def for NotFound. MultipleMatches is still an error.
func (r Result[T]) OrElse(def T) (T, error) {
	if r.Outcome == NotFound {
		return def, nil
	}
	return r.Get()
}

// OrDefault substitutes the zero value for NotFound.
func (r Result[T]) OrDefault() (T, error) {
	var zero T
	return r.OrElse(zero)
}

// FirstOf selects the first matching element in sequence order.
func FirstOf[T any](src []T, preds ...Predicate[T]) Result[T] {
	match := matcher(preds)
	for _, v := range src {
		if match(v) {
			return Result[T]{Value: v, Outcome: Found, op: "first"}
		}
	}
	return Result[T]{Outcome: NotFound, op: "first"}
}

// LastOf selects the last matching element in sequence order.
func LastOf[T any](src []T, preds ...Predicate[T]) Result[T] {
	match := matcher(preds)
	for i := len(src) - 1; i >= 0; i-- {
		if match(src[i]) {
			return Result[T]{Value: src[i], Outcome: Found, op: "last"}
		}
	}
	return Result[T]{Outcome: NotFound, op: "last"}
}

// SingleOf selects the only matching element. The scan stops at the second match.
func SingleOf[T any](src []T, preds ...Predicate[T]) Result[T] {
	match := matcher(preds)
	res := Result[T]{Outcome: NotFound, op: "single"}
	for _, v := range src {
		if !match(v) {
			continue
		}
		if res.Outcome == Found {
			return Result[T]{Outcome: MultipleMatches, op: "single"}
		}
		res.Value, res.Outcome = v, Found
	}
	return res
}

// First returns the first matching element or a NOT_FOUND error.
func First[T any](src []T, preds ...Predicate[T]) (T, error) {
	return FirstOf(src, preds...).Get()
}

// FirstOrDefault returns the first matching element or the zero value.
func FirstOrDefault[T any](src []T, preds ...Predicate[T]) T {
	return FirstOf(src, preds...).Value
}

// Last returns the last matching element or a NOT_FOUND error.
func Last[T any](src []T, preds ...Predicate[T]) (T, error) {
	return LastOf(src, preds...).Get()
}

// LastOrDefault returns the last matching element or the zero value.
func LastOrDefault[T any](src []T, preds ...Predicate[T]) T {
	return LastOf(src, preds...).Value
}

// Single returns the only matching element. It fails with NOT_FOUND on zero
// matches and MULTIPLE_MATCHES on more than one.
func Single[T any](src []T, preds ...Predicate[T]) (T, error) {
	return SingleOf(src, preds...).Get()
}

// SingleOrDefault is Single with the zero value for zero matches.
// More than one match is still reported as MULTIPLE_MATCHES.
func SingleOrDefault[T any](src []T, preds ...Predicate[T]) (T, error) {
	return SingleOf(src, preds...).OrDefault()
}
