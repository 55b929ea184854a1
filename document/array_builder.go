package document

import (
	"maps"
	"slices"
	"strconv"
	"time"
)

// ArrayBuilder builds an Array, naming elements by their decimal index.
type ArrayBuilder struct {
	b    *Builder
	next int
}

// NewArrayBuilder creates a builder for an empty array.
func NewArrayBuilder(opts ...BuilderOption) *ArrayBuilder {
	return &ArrayBuilder{b: NewBuilder(opts...)}
}

func (a *ArrayBuilder) name() string {
	name := strconv.Itoa(a.next)
	a.next++

	return name
}

// Count returns the number of elements appended so far.
func (a *ArrayBuilder) Count() int {
	return a.next
}

// Builder exposes the underlying document builder. Appending through it
// directly bypasses the index naming.
func (a *ArrayBuilder) Builder() *Builder {
	return a.b
}

// Append appends v using the same type mapping as Builder.Append.
func (a *ArrayBuilder) Append(v any) *ArrayBuilder {
	a.b.Append(a.name(), v)
	return a
}

// AppendDouble appends a Double element.
func (a *ArrayBuilder) AppendDouble(v float64) *ArrayBuilder {
	a.b.AppendDouble(a.name(), v)
	return a
}

// AppendString appends a String element.
func (a *ArrayBuilder) AppendString(v string) *ArrayBuilder {
	a.b.AppendString(a.name(), v)
	return a
}

// AppendObject appends an Object element.
func (a *ArrayBuilder) AppendObject(doc Document) *ArrayBuilder {
	a.b.AppendObject(a.name(), doc)
	return a
}

// AppendArray appends an Array element.
func (a *ArrayBuilder) AppendArray(arr Array) *ArrayBuilder {
	a.b.AppendArray(a.name(), arr)
	return a
}

// AppendBool appends a Boolean element.
func (a *ArrayBuilder) AppendBool(v bool) *ArrayBuilder {
	a.b.AppendBool(a.name(), v)
	return a
}

// AppendNull appends a Null element.
func (a *ArrayBuilder) AppendNull() *ArrayBuilder {
	a.b.AppendNull(a.name())
	return a
}

// AppendInt32 appends an Int32 element.
func (a *ArrayBuilder) AppendInt32(v int32) *ArrayBuilder {
	a.b.AppendInt32(a.name(), v)
	return a
}

// AppendInt64 appends an Int64 element.
func (a *ArrayBuilder) AppendInt64(v int64) *ArrayBuilder {
	a.b.AppendInt64(a.name(), v)
	return a
}

// AppendDatetime appends a Datetime element.
func (a *ArrayBuilder) AppendDatetime(v Datetime) *ArrayBuilder {
	a.b.AppendDatetime(a.name(), v)
	return a
}

// AppendTime appends a Datetime element.
func (a *ArrayBuilder) AppendTime(t time.Time) *ArrayBuilder {
	a.b.AppendTime(a.name(), t)
	return a
}

// Done finishes the array and returns it.
func (a *ArrayBuilder) Done() Array {
	return Array{a.b.Done()}
}

// FromMap builds a Document from m with keys in sorted order.
// Values follow the mapping of Builder.Append.
func FromMap(m map[string]any) Document {
	b := NewBuilder()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		b.Append(k, m[k])
	}

	return b.Done()
}

// FromSlice builds an Array from values.
// Values follow the mapping of Builder.Append.
func FromSlice(values []any) Array {
	a := NewArrayBuilder()
	for _, v := range values {
		a.Append(v)
	}

	return a.Done()
}
