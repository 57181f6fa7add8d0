package wat

import (
	"errors"
	"fmt"
)

// LoweringError represents a failed translation.
//
// Lowering errors fall into three categories:
//   - Unsupported construct: IR node kinds with no target representation
//   - Shape violation: wrong arity, multi-binding declarations, malformed
//     switches, too many return bindings
//   - Unknown type: an IR type name outside the supported set
//
// None of these are recovered: the first violated precondition aborts the
// whole translation and the caller receives no output text.
type LoweringError struct {
	// Code identifies the error category.
	Code LoweringErrorCode

	// Message is a human-readable description.
	Message string

	// Construct names the offending node kind or value, when known.
	Construct string
}

// LoweringErrorCode categorizes lowering errors.
type LoweringErrorCode string

const (
	// ErrCodeUnsupportedConstruct indicates an IR node kind with no
	// representation in the target model.
	ErrCodeUnsupportedConstruct LoweringErrorCode = "UNSUPPORTED_CONSTRUCT"

	// ErrCodeBadShape indicates a node violating an arity or shape
	// precondition.
	ErrCodeBadShape LoweringErrorCode = "BAD_SHAPE"

	// ErrCodeUnknownType indicates an IR type name outside the
	// supported set.
	ErrCodeUnknownType LoweringErrorCode = "UNKNOWN_TYPE"
)

// Error implements the error interface.
func (e *LoweringError) Error() string {
	if e.Construct != "" {
		return fmt.Sprintf("%s: %s (construct=%s)", e.Code, e.Message, e.Construct)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnsupportedConstructError returns true for unsupported-construct
// errors. Uses errors.As to handle wrapped errors.
func IsUnsupportedConstructError(err error) bool {
	var le *LoweringError
	if errors.As(err, &le) {
		return le.Code == ErrCodeUnsupportedConstruct
	}
	return false
}

// IsShapeError returns true for arity/shape errors.
// Uses errors.As to handle wrapped errors.
func IsShapeError(err error) bool {
	var le *LoweringError
	if errors.As(err, &le) {
		return le.Code == ErrCodeBadShape
	}
	return false
}

// IsUnknownTypeError returns true for unknown-type errors.
// Uses errors.As to handle wrapped errors.
func IsUnknownTypeError(err error) bool {
	var le *LoweringError
	if errors.As(err, &le) {
		return le.Code == ErrCodeUnknownType
	}
	return false
}

// newUnsupportedError creates a LoweringError for a construct without a
// target representation.
func newUnsupportedError(construct, message string) *LoweringError {
	return &LoweringError{
		Code:      ErrCodeUnsupportedConstruct,
		Message:   message,
		Construct: construct,
	}
}

// newShapeError creates a LoweringError for a violated arity or shape
// precondition.
func newShapeError(construct, message string) *LoweringError {
	return &LoweringError{
		Code:      ErrCodeBadShape,
		Message:   message,
		Construct: construct,
	}
}

// newUnknownTypeError creates a LoweringError naming the offending type.
func newUnknownTypeError(typeName string) *LoweringError {
	return &LoweringError{
		Code:      ErrCodeUnknownType,
		Message:   fmt.Sprintf("type %q is not supported", typeName),
		Construct: typeName,
	}
}
