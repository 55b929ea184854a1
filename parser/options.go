package parser

import (
	"github.com/cockroachdb/errors"

	"github.com/arloliu/bdoc/document"
	"github.com/arloliu/bdoc/errs"
	"github.com/arloliu/bdoc/internal/options"
)

type config struct {
	maxDepth         int
	rejectDuplicates bool
	unicodeEscapes   bool
}

func defaultConfig() *config {
	return &config{
		maxDepth:       document.MaxNestingDepth,
		unicodeEscapes: true,
	}
}

// Option configures the parser.
type Option = options.Option[*config]

// WithMaxDepth limits how deeply objects and arrays may nest below the root.
//
// Input nested deeper fails with a ParseError. Defaults to
// document.MaxNestingDepth, which keeps every parsed document loadable.
func WithMaxDepth(depth int) Option {
	return options.New(func(c *config) error {
		if depth < 0 {
			return errors.Wrapf(errs.ErrInvalidOption, "max depth must not be negative, got %d", depth)
		}
		c.maxDepth = depth

		return nil
	})
}

// WithRejectDuplicateNames makes a repeated field name within one object a
// parse error. By default duplicates are kept in input order, and lookups by
// name see the first one.
func WithRejectDuplicateNames() Option {
	return options.NoError(func(c *config) {
		c.rejectDuplicates = true
	})
}

// WithUnicodeEscapes controls \uXXXX decoding in quoted strings.
//
// When enabled (the default) escapes are decoded to UTF-8, including
// surrogate pairs. When disabled \u is treated like any other unknown escape:
// the backslash is dropped and the rest of the text is kept as is.
func WithUnicodeEscapes(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.unicodeEscapes = enabled
	})
}
