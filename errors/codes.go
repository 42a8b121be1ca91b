package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Selection errors
const (
	// ErrCodeNotFound indicates no element matched where at least one was required.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeMultipleMatches indicates more than one element matched where exactly one was required.
	ErrCodeMultipleMatches ErrorCode = "MULTIPLE_MATCHES"
)

// Contract errors
const (
	// ErrCodeInvalidSortKey indicates a sort key that cannot be ordered.
	ErrCodeInvalidSortKey ErrorCode = "INVALID_SORT_KEY"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeDuplicateID indicates a seed record reuses an identifier.
	ErrCodeDuplicateID ErrorCode = "DUPLICATE_ID"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeSeedUnavailable indicates the seed source could not be read.
	ErrCodeSeedUnavailable ErrorCode = "SEED_UNAVAILABLE"
)

// contractCodes are raised by programmer error, not by data content.
var contractCodes = map[ErrorCode]bool{
	ErrCodeInvalidSortKey: true,
	ErrCodeInvalidInput:   true,
}

// IsContractCode reports whether the code signals a caller contract violation.
func IsContractCode(code ErrorCode) bool {
	return contractCodes[code]
}
