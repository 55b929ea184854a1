// Package bdoc provides a compact, self-describing binary document format with
// zero-copy read access and a JSON-like text grammar.
//
// A document is an ordered list of typed, named fields laid out as
//
//	<int32 totalSize> (<type> <name> NUL <value>)* EOO
//
// in little-endian byte order. Embedded objects and arrays are complete
// documents of their own, so any field can be handed out as a Document that
// shares memory with its parent.
//
// # Core Features
//
//   - Zero-copy reads: Documents, Fields and Iterators are views over one byte slice
//   - Append-only builder with a reserved terminator byte, finishing never reallocates
//   - Typed fields: Double, String, Object, Array, Boolean, Null, Int32, Int64, Datetime
//   - Text grammar with Datetime, NumberInt, NumberLong, NaN and Infinity literals
//   - Hardened loading path (Load) for bytes from untrusted sources
//   - 64-bit xxHash fingerprints for caching and deduplication
//
// # Basic Usage
//
// Building a document:
//
//	import "github.com/arloliu/bdoc"
//
//	b := bdoc.NewBuilder()
//	b.AppendString("host", "server1").
//	    AppendInt32("cpu", 4).
//	    AppendTime("booted", time.Now())
//	doc := b.Done()
//
// Parsing text:
//
//	doc, err := bdoc.FromText(`{host: "server1", cpu: 4, booted: Datetime("2024-05-01 12:00:00")}`)
//
// Reading fields:
//
//	if f, ok := doc.Get("cpu"); ok {
//	    fmt.Println(f.Int32())
//	}
//	for f := range doc.Fields() {
//	    fmt.Println(f.Name(), f.Type(), f.Value())
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the document and
// parser packages, simplifying the most common use cases. For advanced usage
// and fine-grained control, use those packages directly.
package bdoc

import (
	"github.com/arloliu/bdoc/document"
	"github.com/arloliu/bdoc/internal/hash"
	"github.com/arloliu/bdoc/parser"
)

// Document is a read-only view over an encoded document.
type Document = document.Document

// Field is a view of one field inside a Document.
type Field = document.Field

// Array is an embedded document read as a list.
type Array = document.Array

// Datetime is a point in time in microseconds since the Unix epoch.
type Datetime = document.Datetime

// NewBuilder creates a builder for a new document.
//
// Parameters:
//   - opts: Optional configuration (document.WithInitialCapacity, document.WithPooledBuffer)
//
// Returns:
//   - *document.Builder: Builder ready for appends
//
// Example:
//
//	doc := bdoc.NewBuilder().
//	    AppendString("name", "bdoc").
//	    AppendBool("stable", true).
//	    Done()
func NewBuilder(opts ...document.BuilderOption) *document.Builder {
	return document.NewBuilder(opts...)
}

// NewArrayBuilder creates a builder for an array whose elements are named
// "0", "1", ... automatically.
func NewArrayBuilder(opts ...document.BuilderOption) *document.ArrayBuilder {
	return document.NewArrayBuilder(opts...)
}

// New wraps trusted, already encoded bytes without validation.
//
// Use Load for bytes read from disk or the network. New panics if data is too
// short or its size header is out of range.
func New(data []byte) Document {
	return document.New(data)
}

// Load validates data and wraps it as a Document.
//
// Every nested document is checked: type tags, name terminators, value bounds,
// string lengths and nesting depth.
//
// Parameters:
//   - data: Encoded bytes from an untrusted source
//
// Returns:
//   - Document: View over the document bytes
//   - error: One of the errs validation errors
func Load(data []byte) (Document, error) {
	return document.Load(data)
}

// FromText parses the bdoc text grammar into a document.
//
// Parameters:
//   - text: Object or array in the text grammar
//   - opts: Optional parser configuration (parser.WithMaxDepth, parser.WithRejectDuplicateNames,
//     parser.WithUnicodeEscapes)
//
// Returns:
//   - Document: The parsed document
//   - error: A *parser.ParseError matching errs.ErrFailedToParse
//
// Example:
//
//	doc, err := bdoc.FromText(`{'a': 1, 'b': true, 'c': "x"}`)
func FromText(text string, opts ...parser.Option) (Document, error) {
	return parser.ParseString(text, opts...)
}

// MustFromText is like FromText but panics on error.
// It is meant for fixtures and constants known to be valid.
func MustFromText(text string, opts ...parser.Option) Document {
	doc, err := parser.ParseString(text, opts...)
	if err != nil {
		panic(err)
	}

	return doc
}

// FromJSON converts plain JSON into a document.
func FromJSON(data []byte) (Document, error) {
	return parser.FromJSON(data)
}

// FromMap builds a document from m with keys in sorted order.
func FromMap(m map[string]any) Document {
	return document.FromMap(m)
}

// NameID returns the 64-bit xxHash of a field name.
//
// It is the hash the parser's duplicate detection buckets names by, and is
// handy for keying external indexes of field names.
func NameID(name string) uint64 {
	return hash.ID(name)
}
