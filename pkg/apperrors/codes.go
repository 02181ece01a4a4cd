package apperrors

// Application error codes shared across layers.
const (
	CodeInternal        = "INTERNAL"
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeConflict        = "CONFLICT"
)
