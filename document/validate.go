package document

import (
	"bytes"

	"github.com/cockroachdb/errors"

	"github.com/arloliu/bdoc/errs"
	"github.com/arloliu/bdoc/format"
)

// MaxNestingDepth is the deepest level of embedded documents Validate accepts.
// The top-level document is at depth 0.
const MaxNestingDepth = 100

// Validate checks that data holds a well-formed document.
//
// Every field of every nested document is checked: known type tags,
// NUL-terminated non-empty names, values within bounds, string length
// prefixes and terminators, boolean payloads of 0 or 1, nested size headers
// and a nesting depth of at most MaxNestingDepth. Bytes after the size
// declared in the header are ignored.
//
// Parameters:
//   - data: Bytes to check
//
// Returns:
//   - error: nil if the document is well formed, otherwise one of the errs
//     validation errors wrapped with the offending offset
func Validate(data []byte) error {
	return validateDocument(data, 0, 0)
}

func validateDocument(data []byte, base int, depth int) error {
	if len(data) < format.MinDocumentSize {
		return errors.Wrapf(errs.ErrDocumentTooShort, "%d bytes at offset %d", len(data), base)
	}

	size := int(readInt32(data, 0))
	if size < format.MinDocumentSize || size > len(data) {
		return errors.Wrapf(errs.ErrInvalidDocumentSize, "header %d with %d bytes available at offset %d", size, len(data), base)
	}
	data = data[:size]

	end := size - format.SizeTerminator
	if data[end] != byte(format.TypeEOO) {
		return errors.Wrapf(errs.ErrMissingTerminator, "document at offset %d", base)
	}

	pos := format.SizeHeader
	for pos < end {
		n, err := validateField(data, pos, end, base, depth)
		if err != nil {
			return err
		}
		pos += n
	}

	return nil
}

// validateField checks the field at pos and returns its size.
func validateField(data []byte, pos int, end int, base int, depth int) (int, error) {
	t := format.Type(data[pos])
	if t == format.TypeEOO {
		return 0, errors.Wrapf(errs.ErrInvalidDocumentSize, "terminator at offset %d before the end of the document", base+pos)
	}
	if !t.IsValid() {
		return 0, errors.Wrapf(errs.ErrUnknownType, "tag 0x%02x at offset %d", byte(t), base+pos)
	}

	nameOff := pos + format.SizeTag
	nameLen := bytes.IndexByte(data[nameOff:end], 0)
	if nameLen < 0 {
		return 0, errors.Wrapf(errs.ErrUnterminatedName, "field at offset %d", base+pos)
	}
	if nameLen == 0 {
		return 0, errors.Wrapf(errs.ErrEmptyFieldName, "field at offset %d", base+pos)
	}
	name := string(data[nameOff : nameOff+nameLen])

	valueOff := nameOff + nameLen + 1
	remaining := end - valueOff

	var vsize int
	switch t {
	case format.TypeString:
		if remaining < format.SizeLength {
			return 0, errors.Wrapf(errs.ErrTruncatedField, "string %q at offset %d", name, base+pos)
		}
		n := int(readInt32(data, valueOff))
		if n < 1 {
			return 0, errors.Wrapf(errs.ErrInvalidStringLength, "string %q has length %d", name, n)
		}
		vsize = format.SizeLength + n
		if vsize > remaining {
			return 0, errors.Wrapf(errs.ErrTruncatedField, "string %q at offset %d", name, base+pos)
		}
		if data[valueOff+vsize-1] != 0 {
			return 0, errors.Wrapf(errs.ErrInvalidStringLength, "string %q is not NUL terminated", name)
		}

	case format.TypeObject, format.TypeArray:
		if remaining < format.SizeHeader {
			return 0, errors.Wrapf(errs.ErrTruncatedField, "%s %q at offset %d", t, name, base+pos)
		}
		vsize = int(readInt32(data, valueOff))
		if vsize > remaining {
			return 0, errors.Wrapf(errs.ErrTruncatedField, "%s %q at offset %d", t, name, base+pos)
		}
		if depth+1 > MaxNestingDepth {
			return 0, errors.Wrapf(errs.ErrMaxDepthExceeded, "%s %q at offset %d", t, name, base+pos)
		}
		if vsize < format.MinDocumentSize {
			return 0, errors.Wrapf(errs.ErrInvalidDocumentSize, "%s %q declares %d bytes", t, name, vsize)
		}
		if err := validateDocument(data[valueOff:valueOff+vsize], base+valueOff, depth+1); err != nil {
			return 0, err
		}

	default:
		vsize = t.FixedValueSize()
		if vsize > remaining {
			return 0, errors.Wrapf(errs.ErrTruncatedField, "%s %q at offset %d", t, name, base+pos)
		}
		if t == format.TypeBoolean && data[valueOff] > 1 {
			return 0, errors.Wrapf(errs.ErrInvalidBoolean, "field %q holds 0x%02x", name, data[valueOff])
		}
	}

	return valueOff - pos + vsize, nil
}
