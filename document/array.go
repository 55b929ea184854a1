package document

import (
	"iter"
)

// Array is an embedded document whose field names are positional ("0", "1", ...)
// and carry no meaning. Elements are read in storage order.
type Array struct {
	Document
}

// AsArray reinterprets d as an Array.
func AsArray(d Document) Array {
	return Array{d}
}

// Len returns the number of elements.
func (a Array) Len() int {
	return a.NumFields()
}

// At returns the element at index i, walking from the start.
func (a Array) At(i int) (Field, bool) {
	if i < 0 {
		return Field{}, false
	}
	for idx, f := range a.All() {
		if idx == i {
			return f, true
		}
	}

	return Field{}, false
}

// Values returns an iterator over the elements.
func (a Array) Values() iter.Seq[Field] {
	return a.Fields()
}

// Equal reports whether a and other have identical encodings.
func (a Array) Equal(other Array) bool {
	return a.Document.Equal(other.Document)
}
