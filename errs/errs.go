// Package errs defines the sentinel errors returned by bdoc.
//
// Only two layers produce recoverable errors: the text parser and the
// checked loading path (document.Load / document.Validate). Everything else in
// the binary layer treats misuse as a programmer error and panics.
package errs

import "github.com/cockroachdb/errors"

// Document validation errors.
var (
	// ErrDocumentTooShort is returned when a byte region is smaller than the
	// minimum document size (4-byte size header plus the EOO byte).
	ErrDocumentTooShort = errors.New("document too short")
	// ErrInvalidDocumentSize is returned when the size header does not match the
	// available bytes or is below the minimum document size.
	ErrInvalidDocumentSize = errors.New("invalid document size header")
	// ErrMissingTerminator is returned when the byte at the end of a document is not EOO.
	ErrMissingTerminator = errors.New("document is not terminated by EOO")
	// ErrTruncatedField is returned when a field runs past the end of its document.
	ErrTruncatedField = errors.New("field exceeds document bounds")
	// ErrUnterminatedName is returned when a field name has no NUL terminator.
	ErrUnterminatedName = errors.New("field name is not NUL terminated")
	// ErrEmptyFieldName is returned when a field name has zero length.
	ErrEmptyFieldName = errors.New("empty field name")
	// ErrUnknownType is returned when a field carries a type tag outside the supported set.
	ErrUnknownType = errors.New("unknown field type")
	// ErrInvalidStringLength is returned when a string length prefix is not positive
	// or the string is not NUL terminated.
	ErrInvalidStringLength = errors.New("invalid string length")
	// ErrInvalidBoolean is returned when a boolean payload is neither 0 nor 1.
	ErrInvalidBoolean = errors.New("invalid boolean value")
	// ErrMaxDepthExceeded is returned when nested documents exceed the configured depth.
	ErrMaxDepthExceeded = errors.New("maximum nesting depth exceeded")
)

// Parser errors.
var (
	// ErrFailedToParse marks every error produced by the text parser.
	ErrFailedToParse = errors.New("failed to parse")
	// ErrDuplicateFieldName is returned by the parser when duplicate names are rejected.
	ErrDuplicateFieldName = errors.New("duplicate field name")
)

// Configuration errors.
var (
	// ErrInvalidOption is returned when a functional option receives an invalid value.
	ErrInvalidOption = errors.New("invalid option")
)
