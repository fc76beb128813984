package engine

import "fmt"

// SemanticError is a failure detected after syntax has already validated:
// a name that does not resolve, a missing scope, a type mismatch in a WHERE
// comparison. It is data, not a panic, and surfaces to the user as a failed
// QueryResult. The surrounding application keeps running.
type SemanticError struct {
	// Code identifies the error category.
	Code SemanticErrorCode

	// Message is a human-readable description.
	Message string
}

// SemanticErrorCode categorizes semantic errors.
type SemanticErrorCode string

const (
	// ErrCodeNameNotFound indicates a gene or feature name did not resolve.
	ErrCodeNameNotFound SemanticErrorCode = "NAME_NOT_FOUND"

	// ErrCodeTrackNotFound indicates a FROM or INTERSECT track does not exist.
	ErrCodeTrackNotFound SemanticErrorCode = "TRACK_NOT_FOUND"

	// ErrCodeNoSource indicates no loaded track matches the select target.
	ErrCodeNoSource SemanticErrorCode = "NO_SOURCE"

	// ErrCodeScopeRequired indicates a SELECT/COUNT arrived without an IN
	// clause that its evaluation needs.
	ErrCodeScopeRequired SemanticErrorCode = "SCOPE_REQUIRED"

	// ErrCodeTypeMismatch indicates a numeric operator met a non-numeric
	// field value.
	ErrCodeTypeMismatch SemanticErrorCode = "TYPE_MISMATCH"
)

func (e *SemanticError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// semErr builds a SemanticError with a formatted message.
func semErr(code SemanticErrorCode, format string, args ...any) *SemanticError {
	return &SemanticError{Code: code, Message: fmt.Sprintf(format, args...)}
}
