package document

import (
	"github.com/cockroachdb/errors"
)

// Iterator is a forward cursor over the fields of a Document.
//
// The Field at the current position is decoded on first access and cached
// until the iterator moves, so repeated calls to Field are free.
//
//	for it := doc.Begin(); it.Valid(); it.Next() {
//	    f := it.Field()
//	    ...
//	}
type Iterator struct {
	doc    Document
	pos    int
	cached Field
	hasFld bool
}

func newIterator(doc Document, pos int) Iterator {
	return Iterator{doc: doc, pos: pos}
}

// Valid reports whether the iterator points at a field, i.e. it is not at End.
func (it Iterator) Valid() bool {
	return it.pos < it.doc.end
}

// Offset returns the byte offset of the current position within the document.
func (it Iterator) Offset() int {
	return it.pos
}

// Field returns the field at the current position.
//
// At End it returns the terminator pseudo-field, whose Type is EOO.
func (it *Iterator) Field() Field {
	if !it.hasFld && it.doc.data != nil {
		it.cached = newField(it.doc.data, it.pos)
		it.hasFld = true
	}

	return it.cached
}

// Next advances to the following field.
//
// Panics when called at End.
func (it *Iterator) Next() {
	if !it.Valid() {
		panic(errors.AssertionFailedf("iterator advanced past the end of the document"))
	}

	if it.hasFld {
		it.pos += it.cached.Size()
	} else {
		it.pos += fieldSize(it.doc.data, it.pos)
	}
	it.hasFld = false
}

// Equal reports whether it and other point at the same byte of the same
// document memory.
func (it Iterator) Equal(other Iterator) bool {
	return it.pos == other.pos && sameMemory(it.doc.data, other.doc.data)
}
