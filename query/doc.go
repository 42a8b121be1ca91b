// Package query provides composable operators over ordered, in-memory
// sequences: projection, filtering, stable multi-key ordering, distinct and
// single-element selection.
//
// Every operator is pure. Input slices are never modified and slice results
// are always freshly allocated, so a result may be held or replaced without
// affecting the source.
//
// # Element selection
//
// First, Last and Single have three shapes:
//
//   - FirstOf / LastOf / SingleOf return a Result carrying the outcome
//     (Found, NotFound or MultipleMatches) for callers that branch on it.
//   - First / Last / Single return (T, error) with a NOT_FOUND or
//     MULTIPLE_MATCHES *errors.AppError.
//   - FirstOrDefault / LastOrDefault / SingleOrDefault substitute the zero
//     value for NotFound. SingleOrDefault still fails on MultipleMatches.
//
// # Ordering
//
//	byColor, _ := query.Field[Product]("color")
//	sorted, err := query.OrderBy(products, byColor.Desc(), query.By(func(p Product) string { return p.Name }))
//
// Keys built with By only accept cmp.Ordered selectors, so ordering by a whole
// record does not compile. Keys resolved at runtime (Field, ParseKeys) fail
// with INVALID_SORT_KEY instead.
package query
