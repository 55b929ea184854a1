package document

import (
	"bytes"

	"github.com/arloliu/bdoc/endian"
	"github.com/arloliu/bdoc/format"
)

// The functions in this file decode structure without bounds validation
// beyond Go's slice checks. They are only called on documents that were
// produced by a Builder, loaded through Load, or handed to New by a caller
// that vouches for them.

// readInt32 reads a little-endian int32 at off.
func readInt32(buf []byte, off int) int32 {
	return endian.ReadNum[int32](endian.LittleEndianView(buf), off)
}

// nameEnd returns the offset of the NUL byte terminating the name that starts at off.
func nameEnd(buf []byte, off int) int {
	return off + bytes.IndexByte(buf[off:], 0)
}

// valueSize returns the size of the value of type t stored at valueOff.
func valueSize(t format.Type, buf []byte, valueOff int) int {
	switch t {
	case format.TypeString:
		return format.SizeLength + int(readInt32(buf, valueOff))
	case format.TypeObject, format.TypeArray:
		return int(readInt32(buf, valueOff))
	default:
		return t.FixedValueSize()
	}
}

// fieldSize returns the total size of the field whose tag is at off:
// tag, name including its NUL, and value.
func fieldSize(buf []byte, off int) int {
	t := format.Type(buf[off])
	if t == format.TypeEOO {
		return format.SizeTerminator
	}
	valueOff := nameEnd(buf, off+format.SizeTag) + 1

	return valueOff - off + valueSize(t, buf, valueOff)
}
