package document

import (
	"math"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/arloliu/bdoc/endian"
	"github.com/arloliu/bdoc/format"
	"github.com/arloliu/bdoc/internal/options"
	"github.com/arloliu/bdoc/internal/pool"
)

const minBuilderCapacity = format.MinDocumentSize

// Builder appends fields to a growing document buffer.
//
// The first four bytes are skipped for the size header and one byte of
// capacity is kept in reserve for the EOO terminator, so finishing the
// document never reallocates. Finishing writes the terminator and patches
// the size header; it happens exactly once.
//
// Append methods return the builder so calls can be chained. Appending after
// the document is finished panics.
//
// Builder is not safe for concurrent use.
type Builder struct {
	buf      *pool.ByteBuffer
	pooled   bool
	done     bool
	released bool
	doc      Document
}

// NewBuilder creates a builder holding an empty, unfinished document.
//
// Parameters:
//   - opts: Optional configuration (WithInitialCapacity, WithPooledBuffer)
//
// Returns:
//   - *Builder: Builder ready for appends
func NewBuilder(opts ...BuilderOption) *Builder {
	cfg := defaultBuilderConfig()
	options.MustApply(cfg, opts...)

	b := &Builder{pooled: cfg.pooled}
	b.init(cfg.initialCapacity)

	return b
}

func (b *Builder) init(capacity int) {
	if b.pooled {
		b.buf = pool.GetDocumentBuffer()
	} else {
		b.buf = pool.NewByteBuffer(capacity)
	}
	b.buf.Skip(format.SizeHeader)
	b.buf.ReserveBytes(format.SizeTerminator)
	b.done = false
	b.released = false
	b.doc = Document{}
}

// Reset discards any content and starts a new empty document.
//
// A builder whose document was already taken with Done or Obj gets a fresh
// buffer; the returned Document is unaffected.
func (b *Builder) Reset() {
	if b.buf != nil && !b.released {
		b.buf.Reset()
		b.buf.Skip(format.SizeHeader)
		b.buf.ReserveBytes(format.SizeTerminator)
		b.done = false
		b.doc = Document{}

		return
	}
	b.init(pool.DocumentBufferDefaultSize)
}

// Len returns the number of bytes written so far, including the size header.
// After the document is finished it equals the total size.
func (b *Builder) Len() int {
	if b.released {
		return b.doc.TotalSize()
	}

	return b.buf.Len()
}

// HasDone reports whether the document has been finished.
func (b *Builder) HasDone() bool {
	return b.done
}

// DoneFast finishes the document without handing it out: it appends the EOO
// terminator and writes the size header. Calling it again has no effect.
func (b *Builder) DoneFast() {
	if b.done {
		return
	}
	b.done = true

	b.buf.ClaimReservedBytes(format.SizeTerminator)
	b.buf.AppendByte(byte(format.TypeEOO))
	endian.WriteNum(endian.LittleEndianView(b.buf.B), 0, int32(b.buf.Len())) //nolint: gosec
}

// Done finishes the document if needed and returns it.
//
// The returned Document takes over the builder's buffer. Further appends
// panic; use Reset to build another document.
func (b *Builder) Done() Document {
	b.DoneFast()
	return b.Obj()
}

// Obj returns the finished document.
//
// Panics if the document has not been finished with Done or DoneFast.
func (b *Builder) Obj() Document {
	if !b.done {
		panic(errors.AssertionFailedf("document is not finished, call Done or DoneFast first"))
	}
	if !b.released {
		b.doc = New(b.buf.Release())
		b.released = true
	}

	return b.doc
}

// Bytes returns the finished encoding while the builder still owns it.
//
// The slice is only valid until Reset or Discard. Use Done to keep the bytes.
// Panics if the document is not finished.
func (b *Builder) Bytes() []byte {
	if !b.done {
		panic(errors.AssertionFailedf("document is not finished, call Done or DoneFast first"))
	}
	if b.released {
		return b.doc.RawData()
	}

	return b.buf.Bytes()
}

// Discard gives the buffer back to the pool when the builder was created with
// WithPooledBuffer. The builder must not be used afterwards except for Reset.
func (b *Builder) Discard() {
	if b.pooled && !b.released && b.buf != nil {
		pool.PutDocumentBuffer(b.buf)
	}
	b.buf = nil
	b.done = true
	b.released = true
	b.doc = Document{}
}

func (b *Builder) appendHeader(t format.Type, name string) {
	if b.done {
		panic(errors.AssertionFailedf("append of field %q to a finished document", name))
	}
	if name == "" {
		panic(errors.AssertionFailedf("field name must not be empty"))
	}
	if strings.IndexByte(name, 0) >= 0 {
		panic(errors.AssertionFailedf("field name %q contains a NUL byte", name))
	}

	b.buf.AppendByte(byte(t))
	b.buf.AppendCString(name)
}

// AppendDouble appends a Double field.
func (b *Builder) AppendDouble(name string, v float64) *Builder {
	b.appendHeader(format.TypeDouble, name)
	pool.AppendNum(b.buf, v)

	return b
}

// AppendString appends a String field.
func (b *Builder) AppendString(name string, v string) *Builder {
	b.appendHeader(format.TypeString, name)
	pool.AppendNum(b.buf, int32(len(v)+1)) //nolint: gosec
	b.buf.AppendCString(v)

	return b
}

// AppendStringBytes appends a String field from raw bytes.
func (b *Builder) AppendStringBytes(name string, v []byte) *Builder {
	b.appendHeader(format.TypeString, name)
	pool.AppendNum(b.buf, int32(len(v)+1)) //nolint: gosec
	b.buf.AppendCBytes(v)

	return b
}

// AppendObject appends an Object field holding a copy of doc.
func (b *Builder) AppendObject(name string, doc Document) *Builder {
	return b.appendEmbedded(format.TypeObject, name, docBytes(doc))
}

// AppendArray appends an Array field holding a copy of arr.
func (b *Builder) AppendArray(name string, arr Array) *Builder {
	return b.appendEmbedded(format.TypeArray, name, docBytes(arr.Document))
}

// AppendObjectBytes appends an Object field from a finished encoding, such as
// the result of another builder's Bytes.
func (b *Builder) AppendObjectBytes(name string, raw []byte) *Builder {
	return b.appendEmbedded(format.TypeObject, name, raw)
}

// AppendArrayBytes appends an Array field from a finished encoding.
func (b *Builder) AppendArrayBytes(name string, raw []byte) *Builder {
	return b.appendEmbedded(format.TypeArray, name, raw)
}

func (b *Builder) appendEmbedded(t format.Type, name string, raw []byte) *Builder {
	if len(raw) < format.MinDocumentSize || int(readInt32(raw, 0)) != len(raw) {
		panic(errors.AssertionFailedf("embedded %s %q is not a finished document", t, name))
	}
	b.appendHeader(t, name)
	b.buf.AppendBytes(raw)

	return b
}

func docBytes(doc Document) []byte {
	if doc.IsZero() {
		return emptyDocument[:]
	}

	return doc.RawData()
}

// AppendBool appends a Boolean field.
func (b *Builder) AppendBool(name string, v bool) *Builder {
	b.appendHeader(format.TypeBoolean, name)
	if v {
		b.buf.AppendByte(1)
	} else {
		b.buf.AppendByte(0)
	}

	return b
}

// AppendNull appends a Null field.
func (b *Builder) AppendNull(name string) *Builder {
	b.appendHeader(format.TypeNull, name)
	return b
}

// AppendInt32 appends an Int32 field.
func (b *Builder) AppendInt32(name string, v int32) *Builder {
	b.appendHeader(format.TypeInt32, name)
	pool.AppendNum(b.buf, v)

	return b
}

// AppendInt64 appends an Int64 field.
func (b *Builder) AppendInt64(name string, v int64) *Builder {
	b.appendHeader(format.TypeInt64, name)
	pool.AppendNum(b.buf, v)

	return b
}

// AppendDatetime appends a Datetime field.
func (b *Builder) AppendDatetime(name string, v Datetime) *Builder {
	b.appendHeader(format.TypeDatetime, name)
	pool.AppendNum(b.buf, int64(v))

	return b
}

// AppendTime appends a Datetime field, truncating t to the microsecond.
func (b *Builder) AppendTime(name string, t time.Time) *Builder {
	return b.AppendDatetime(name, DatetimeOf(t))
}

// AppendField copies an existing field, keeping its name and type.
func (b *Builder) AppendField(f Field) *Builder {
	if f.IsEOO() {
		panic(errors.AssertionFailedf("the terminator is not an appendable field"))
	}
	if b.done {
		panic(errors.AssertionFailedf("append of field %q to a finished document", f.Name()))
	}
	b.buf.AppendBytes(f.RawField())

	return b
}

// Append appends v with the field type matching its Go type.
//
// Supported values:
//
//	nil                          -> Null
//	bool                         -> Boolean
//	int8, int16, int32, uint8,
//	uint16                       -> Int32
//	int, int64, uint32, uint     -> Int32 if it fits, else Int64
//	uint64                       -> Int32/Int64 if it fits, else Double
//	float32, float64             -> Double
//	string, []byte               -> String
//	Datetime, time.Time          -> Datetime
//	Document                     -> Object
//	Array                        -> Array
//	map[string]any               -> Object, keys in sorted order
//	[]any                        -> Array
//
// Panics for any other type.
func (b *Builder) Append(name string, v any) *Builder {
	switch val := v.(type) {
	case nil:
		return b.AppendNull(name)
	case bool:
		return b.AppendBool(name, val)
	case int8:
		return b.AppendInt32(name, int32(val))
	case int16:
		return b.AppendInt32(name, int32(val))
	case int32:
		return b.AppendInt32(name, val)
	case uint8:
		return b.AppendInt32(name, int32(val))
	case uint16:
		return b.AppendInt32(name, int32(val))
	case int:
		return b.appendInteger(name, int64(val))
	case int64:
		return b.appendInteger(name, val)
	case uint32:
		return b.appendInteger(name, int64(val))
	case uint:
		if uint64(val) > math.MaxInt64 {
			return b.AppendDouble(name, float64(val))
		}

		return b.appendInteger(name, int64(val))
	case uint64:
		if val > math.MaxInt64 {
			return b.AppendDouble(name, float64(val))
		}

		return b.appendInteger(name, int64(val))
	case float32:
		return b.AppendDouble(name, float64(val))
	case float64:
		return b.AppendDouble(name, val)
	case string:
		return b.AppendString(name, val)
	case []byte:
		return b.AppendStringBytes(name, val)
	case Datetime:
		return b.AppendDatetime(name, val)
	case time.Time:
		return b.AppendTime(name, val)
	case Document:
		return b.AppendObject(name, val)
	case Array:
		return b.AppendArray(name, val)
	case map[string]any:
		return b.AppendObject(name, FromMap(val))
	case []any:
		return b.AppendArray(name, FromSlice(val))
	default:
		panic(errors.AssertionFailedf("field %q: unsupported value type %T", name, v))
	}
}

func (b *Builder) appendInteger(name string, v int64) *Builder {
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		return b.AppendInt32(name, int32(v))
	}

	return b.AppendInt64(name, v)
}
