// Package errors provides the structured error type shared by the query
// packages. Every failure carries a machine-readable code so callers can
// branch on the outcome (not found, ambiguous match, bad sort key) without
// parsing messages.
package errors
