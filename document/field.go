package document

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/arloliu/bdoc/endian"
	"github.com/arloliu/bdoc/format"
)

// Field is a view of one field inside a Document.
//
// A Field stays valid as long as the bytes it was read from; it keeps them
// reachable. Typed accessors panic if the field holds a different type, check
// Type first when the type is not known.
type Field struct {
	buf      []byte // the enclosing document
	off      int    // offset of the type tag
	valueOff int    // offset of the first value byte
}

func newField(buf []byte, off int) Field {
	f := Field{buf: buf, off: off, valueOff: off + format.SizeTag}
	if format.Type(buf[off]) != format.TypeEOO {
		f.valueOff = nameEnd(buf, off+format.SizeTag) + 1
	}

	return f
}

// Type returns the type tag of the field.
func (f Field) Type() format.Type {
	if f.buf == nil {
		return format.TypeEOO
	}

	return format.Type(f.buf[f.off])
}

// IsEOO reports whether f is the terminator pseudo-field.
func (f Field) IsEOO() bool {
	return f.Type() == format.TypeEOO
}

// Offset returns the offset of the field's tag within its document.
func (f Field) Offset() int {
	return f.off
}

// RawName returns the field name without its NUL terminator.
//
// The returned slice aliases the document memory.
func (f Field) RawName() []byte {
	if f.IsEOO() {
		return nil
	}

	return f.buf[f.off+format.SizeTag : f.valueOff-1]
}

// Name returns the field name. The terminator pseudo-field has an empty name.
func (f Field) Name() string {
	return string(f.RawName())
}

// ValueSize returns the size of the value bytes.
func (f Field) ValueSize() int {
	if f.IsEOO() {
		return 0
	}

	return valueSize(f.Type(), f.buf, f.valueOff)
}

// Size returns the size of the whole field: tag, name with its NUL, and value.
func (f Field) Size() int {
	if f.IsEOO() {
		return format.SizeTerminator
	}

	return f.valueOff - f.off + f.ValueSize()
}

// RawValue returns the value bytes. The returned slice aliases the document memory.
func (f Field) RawValue() []byte {
	return f.buf[f.valueOff : f.valueOff+f.ValueSize()]
}

// RawField returns the encoded field, tag through value.
func (f Field) RawField() []byte {
	return f.buf[f.off : f.off+f.Size()]
}

func (f Field) mustBe(t format.Type) {
	if got := f.Type(); got != t {
		panic(errors.AssertionFailedf("field %q holds %s, not %s", f.Name(), got, t))
	}
}

func (f Field) view() endian.View {
	return endian.LittleEndianView(f.buf)
}

// Double returns the value of a Double field.
func (f Field) Double() float64 {
	f.mustBe(format.TypeDouble)
	return endian.ReadNum[float64](f.view(), f.valueOff)
}

// RawString returns the bytes of a String field without its NUL terminator.
//
// The returned slice aliases the document memory.
func (f Field) RawString() []byte {
	f.mustBe(format.TypeString)
	n := int(readInt32(f.buf, f.valueOff))

	return f.buf[f.valueOff+format.SizeLength : f.valueOff+format.SizeLength+n-1]
}

// StringValue returns the value of a String field.
func (f Field) StringValue() string {
	return string(f.RawString())
}

// Bool returns the value of a Boolean field.
func (f Field) Bool() bool {
	f.mustBe(format.TypeBoolean)
	return f.buf[f.valueOff] != 0
}

// IsNull reports whether f is a Null field.
func (f Field) IsNull() bool {
	return f.Type() == format.TypeNull
}

// Int32 returns the value of an Int32 field.
func (f Field) Int32() int32 {
	f.mustBe(format.TypeInt32)
	return endian.ReadNum[int32](f.view(), f.valueOff)
}

// Int64 returns the value of an Int64 field.
func (f Field) Int64() int64 {
	f.mustBe(format.TypeInt64)
	return endian.ReadNum[int64](f.view(), f.valueOff)
}

// Datetime returns the value of a Datetime field.
func (f Field) Datetime() Datetime {
	f.mustBe(format.TypeDatetime)
	return endian.ReadNum[Datetime](f.view(), f.valueOff)
}

// Time returns the value of a Datetime field as a UTC time.Time.
func (f Field) Time() time.Time {
	return f.Datetime().Time()
}

// Number returns the value of any numeric field as a float64.
//
// Int64 values beyond 2^53 lose precision.
func (f Field) Number() float64 {
	if !f.Type().IsNumeric() {
		panic(errors.AssertionFailedf("field %q holds %s, not a number", f.Name(), f.Type()))
	}

	switch f.Type() {
	case format.TypeInt32:
		return float64(f.Int32())
	case format.TypeInt64:
		return float64(f.Int64())
	default:
		return f.Double()
	}
}

// Document returns the embedded document of an Object field.
//
// The result shares memory with the enclosing document.
func (f Field) Document() Document {
	f.mustBe(format.TypeObject)
	return f.embedded()
}

// Array returns the embedded document of an Array field.
func (f Field) Array() Array {
	f.mustBe(format.TypeArray)
	return Array{f.embedded()}
}

// Embedded returns the embedded document of an Object or Array field.
func (f Field) Embedded() Document {
	if !f.Type().IsEmbedded() {
		panic(errors.AssertionFailedf("field %q holds %s, not an embedded document", f.Name(), f.Type()))
	}

	return f.embedded()
}

func (f Field) embedded() Document {
	size := int(readInt32(f.buf, f.valueOff))
	data := f.buf[f.valueOff : f.valueOff+size : f.valueOff+size]

	return Document{data: data, end: size - format.SizeTerminator}
}

// Value returns the value boxed in its natural Go type:
//
//	Double   -> float64
//	String   -> string
//	Object   -> Document
//	Array    -> Array
//	Boolean  -> bool
//	Null     -> nil
//	Int32    -> int32
//	Datetime -> Datetime
//	Int64    -> int64
//
// The terminator pseudo-field yields nil.
func (f Field) Value() any {
	switch f.Type() {
	case format.TypeDouble:
		return f.Double()
	case format.TypeString:
		return f.StringValue()
	case format.TypeObject:
		return f.Document()
	case format.TypeArray:
		return f.Array()
	case format.TypeBoolean:
		return f.Bool()
	case format.TypeInt32:
		return f.Int32()
	case format.TypeDatetime:
		return f.Datetime()
	case format.TypeInt64:
		return f.Int64()
	default:
		return nil
	}
}

// IsNaN reports whether f is a Double field holding NaN.
func (f Field) IsNaN() bool {
	return f.Type() == format.TypeDouble && math.IsNaN(f.Double())
}
