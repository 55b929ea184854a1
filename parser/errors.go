package parser

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/arloliu/bdoc/errs"
)

// snippetLen is the number of input bytes quoted in a ParseError.
const snippetLen = 24

// ParseError represents an error that occurred during parsing.
type ParseError struct {
	// Message describes what the parser expected.
	Message string
	// Offset is the byte offset in the input where parsing failed.
	Offset int
	// Near is a short excerpt of the input starting at Offset.
	Near string
}

// newParseError returns a new instance of ParseError.
func newParseError(msg string, input []byte, offset int) error {
	end := min(offset+snippetLen, len(input))

	return errors.WithStack(&ParseError{
		Message: msg,
		Offset:  offset,
		Near:    string(input[offset:end]),
	})
}

// Error returns the string representation of the error.
func (e *ParseError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("%s at offset %d (end of input)", e.Message, e.Offset)
	}

	return fmt.Sprintf("%s at offset %d near %q", e.Message, e.Offset, e.Near)
}

// Is makes every ParseError match errs.ErrFailedToParse.
func (e *ParseError) Is(target error) bool {
	return target == errs.ErrFailedToParse
}

// AsParseError extracts the ParseError from err, if any.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}

	return nil, false
}
