// Package document implements the binary document layout: a self-sized list
// of typed fields that can be read in place without copying.
//
// # Wire Layout
//
//	Document ::= <int32 totalSize> Field* <byte EOO(=0)>
//	Field    ::= <byte typeTag> <cstring fieldName> <value>
//
// All multi-byte numbers are little-endian. totalSize counts itself and the
// terminating EOO byte. Embedded objects and arrays are complete documents
// spliced into their parent verbatim.
//
// # Reading
//
// A Document is a view over a byte slice. Copying a Document copies the view,
// never the bytes; every Document, Field and Iterator derived from the same
// slice shares it, and the memory is reclaimed when the last of them becomes
// unreachable.
//
//	doc := document.New(data)
//	for f := range doc.Fields() {
//	    fmt.Println(f.Name(), f.Type(), f.Value())
//	}
//
//	if f, ok := doc.Get("count"); ok {
//	    n := f.Int32()
//	}
//
// New trusts its input: field decoding is unchecked beyond Go's own slice
// bounds checks. Bytes from an untrusted source go through Load, which runs
// Validate over the whole document (including nested documents) first.
//
// # Writing
//
//	b := document.NewBuilder()
//	b.AppendString("name", "bdoc").
//	    AppendInt32("version", 1).
//	    AppendBool("stable", true)
//	doc := b.Done()
//
// Nested documents are built bottom-up: finish the inner document, then
// append it to the outer builder.
//
// # Contract Violations
//
// Reading a field as the wrong type, appending to a finished builder or
// reading a builder's document before it is finished are programming errors.
// They panic with an assertion failure instead of returning an error.
//
// # Thread Safety
//
// Documents are immutable and safe for concurrent reads. Builders and
// Iterators must be used by a single goroutine.
package document
