package document

import (
	"iter"
	"strconv"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/arloliu/bdoc/format"
	"github.com/arloliu/bdoc/internal/hash"
)

// Document is a read-only view over an encoded document.
//
// The zero Document is empty: it has no fields, a TotalSize of 0 and a nil
// RawData. Use New or Load to obtain a Document over real bytes.
type Document struct {
	data []byte // exactly TotalSize bytes, data[end] is the EOO byte
	end  int
}

// emptyDocument is the encoding of a document without fields. It is only read.
var emptyDocument = [format.MinDocumentSize]byte{byte(format.MinDocumentSize), 0, 0, 0, byte(format.TypeEOO)}

// Empty returns a Document with no fields over its own five bytes.
func Empty() Document {
	data := emptyDocument

	return Document{data: data[:], end: format.SizeHeader}
}

// New wraps data as a Document without copying it.
//
// The size header at the start of data defines the document; trailing bytes
// beyond it are ignored. Field contents are not validated, use Load for
// untrusted input.
//
// Parameters:
//   - data: Encoded document bytes
//
// Returns:
//   - Document: View over data[:totalSize]
//
// Panics if data is shorter than the minimum document size or the size header
// is out of range.
func New(data []byte) Document {
	if len(data) < format.MinDocumentSize {
		panic(errors.AssertionFailedf("document needs at least %d bytes, got %d", format.MinDocumentSize, len(data)))
	}

	size := int(readInt32(data, 0))
	if size < format.MinDocumentSize || size > len(data) {
		panic(errors.AssertionFailedf("document size header %d out of range [%d, %d]", size, format.MinDocumentSize, len(data)))
	}

	return Document{data: data[:size:size], end: size - format.SizeTerminator}
}

// Load validates data and wraps it as a Document.
//
// Parameters:
//   - data: Encoded document bytes from an untrusted source
//
// Returns:
//   - Document: View over data[:totalSize]
//   - error: Validation error, see Validate
func Load(data []byte) (Document, error) {
	if err := Validate(data); err != nil {
		return Document{}, err
	}

	return New(data), nil
}

// IsZero reports whether d is the zero Document.
func (d Document) IsZero() bool {
	return d.data == nil
}

// Begin returns an iterator positioned at the first field.
func (d Document) Begin() Iterator {
	if d.data == nil {
		return Iterator{}
	}

	return newIterator(d, format.SizeHeader)
}

// End returns the past-the-end iterator, positioned at the EOO byte.
func (d Document) End() Iterator {
	return newIterator(d, d.end)
}

// IsEmpty reports whether the document has no fields.
func (d Document) IsEmpty() bool {
	return d.data == nil || d.end == format.SizeHeader
}

// TotalSize returns the encoded size in bytes, including header and terminator.
func (d Document) TotalSize() int {
	return len(d.data)
}

// RawData returns the encoded bytes of the document.
//
// The returned slice aliases the document memory and must not be modified.
func (d Document) RawData() []byte {
	return d.data
}

// NumFields counts the fields by walking the document.
func (d Document) NumFields() int {
	n := 0
	for pos := format.SizeHeader; pos < d.end; pos += fieldSize(d.data, pos) {
		n++
	}

	return n
}

// Find returns an iterator at the first field named name, or End if there is none.
//
// Parameters:
//   - name: Field name, compared byte for byte
//
// Returns:
//   - Iterator: Positioned at the match, or equal to End()
func (d Document) Find(name string) Iterator {
	for pos := format.SizeHeader; pos < d.end; pos += fieldSize(d.data, pos) {
		nameOff := pos + format.SizeTag
		if string(d.data[nameOff:nameEnd(d.data, nameOff)]) == name {
			return newIterator(d, pos)
		}
	}

	return d.End()
}

// Has reports whether a field named name exists.
func (d Document) Has(name string) bool {
	return d.Find(name).Valid()
}

// Get returns the first field named name.
func (d Document) Get(name string) (Field, bool) {
	it := d.Find(name)
	if !it.Valid() {
		return Field{}, false
	}

	return it.Field(), true
}

// Lookup descends through embedded documents following path and returns the
// field at its end. Array elements are addressed by their decimal position,
// independent of the names stored in the array.
//
// Returns false if any step is missing or an intermediate field is not an
// embedded document.
func (d Document) Lookup(path ...string) (Field, bool) {
	if len(path) == 0 {
		return Field{}, false
	}

	cur, inArray := d, false
	for i, step := range path {
		var f Field
		var ok bool
		if inArray {
			f, ok = lookupIndex(AsArray(cur), step)
		} else {
			f, ok = cur.Get(step)
		}
		if !ok {
			return Field{}, false
		}
		if i == len(path)-1 {
			return f, true
		}
		if !f.Type().IsEmbedded() {
			return Field{}, false
		}
		cur, inArray = f.Embedded(), f.Type() == format.TypeArray
	}

	return Field{}, false
}

// lookupIndex resolves a decimal index step by position, whatever the
// element names are.
func lookupIndex(a Array, step string) (Field, bool) {
	i, err := strconv.Atoi(step)
	if err != nil {
		return Field{}, false
	}

	return a.At(i)
}

// Fields returns an iterator over the fields in storage order.
func (d Document) Fields() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		for pos := format.SizeHeader; pos < d.end; pos += fieldSize(d.data, pos) {
			if !yield(newField(d.data, pos)) {
				return
			}
		}
	}
}

// All returns an iterator over (index, field) pairs in storage order.
func (d Document) All() iter.Seq2[int, Field] {
	return func(yield func(int, Field) bool) {
		i := 0
		for pos := format.SizeHeader; pos < d.end; pos += fieldSize(d.data, pos) {
			if !yield(i, newField(d.data, pos)) {
				return
			}
			i++
		}
	}
}

// Names returns the field names in storage order.
func (d Document) Names() []string {
	names := make([]string, 0, 8)
	for f := range d.Fields() {
		names = append(names, f.Name())
	}

	return names
}

// Equal reports whether d and other have identical encodings.
func (d Document) Equal(other Document) bool {
	return string(d.data) == string(other.data)
}

// Fingerprint returns a 64-bit xxHash of the encoded bytes.
//
// Equal documents have equal fingerprints, so it can key caches and
// deduplication sets.
func (d Document) Fingerprint() uint64 {
	return hash.Bytes(d.data)
}

// Clone returns a Document over a private copy of the bytes.
//
// Use it to keep a small embedded document alive without pinning the
// larger buffer it was read from.
func (d Document) Clone() Document {
	if d.data == nil {
		return Document{}
	}
	data := make([]byte, len(d.data))
	copy(data, d.data)

	return Document{data: data, end: d.end}
}

// sameMemory reports whether a and b view the same underlying bytes.
func sameMemory(a, b []byte) bool {
	return unsafe.SliceData(a) == unsafe.SliceData(b)
}
