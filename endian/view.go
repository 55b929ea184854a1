package endian

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Number is the set of fixed-width scalars a View can read and write.
type Number interface {
	constraints.Integer | constraints.Float
}

// View is a typed, endian-correct accessor over a fixed byte region.
//
// View is a trusted internal primitive: offsets are not validated beyond the
// bounds checks the Go runtime performs on slice indexing. Callers guarantee
// that [offset, offset+size) lies inside the region.
type View struct {
	buf    []byte
	engine EndianEngine
}

// NewView returns a View over buf using the given engine.
func NewView(buf []byte, engine EndianEngine) View {
	return View{buf: buf, engine: engine}
}

// LittleEndianView returns a little-endian View over buf, the order of the wire format.
func LittleEndianView(buf []byte) View {
	return View{buf: buf, engine: GetLittleEndianEngine()}
}

// Bytes returns the underlying region.
func (v View) Bytes() []byte {
	return v.buf
}

// Len returns the length of the underlying region.
func (v View) Len() int {
	return len(v.buf)
}

// SizeOf returns the encoded width of T in bytes.
func SizeOf[T Number]() int {
	var zero T
	switch any(zero).(type) {
	case int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	case int64, uint64, float64, int, uint, uintptr:
		return 8
	default:
		return sizeOfNamed(zero)
	}
}

// WriteNum writes val at offset in the view's byte order.
//
// Floating-point values are reinterpreted as same-width unsigned integers and
// written through the integer path.
func WriteNum[T Number](v View, offset int, val T) {
	switch x := any(val).(type) {
	case int8:
		v.buf[offset] = byte(x)
	case uint8:
		v.buf[offset] = x
	case int16:
		v.engine.PutUint16(v.buf[offset:], uint16(x)) //nolint: gosec
	case uint16:
		v.engine.PutUint16(v.buf[offset:], x)
	case int32:
		v.engine.PutUint32(v.buf[offset:], uint32(x)) //nolint: gosec
	case uint32:
		v.engine.PutUint32(v.buf[offset:], x)
	case int64:
		v.engine.PutUint64(v.buf[offset:], uint64(x)) //nolint: gosec
	case uint64:
		v.engine.PutUint64(v.buf[offset:], x)
	case int:
		v.engine.PutUint64(v.buf[offset:], uint64(x)) //nolint: gosec
	case uint:
		v.engine.PutUint64(v.buf[offset:], uint64(x))
	case uintptr:
		v.engine.PutUint64(v.buf[offset:], uint64(x))
	case float32:
		v.engine.PutUint32(v.buf[offset:], math.Float32bits(x))
	case float64:
		v.engine.PutUint64(v.buf[offset:], math.Float64bits(x))
	default:
		writeNamed(v, offset, val)
	}
}

// ReadNum reads a T at offset, converting from the view's byte order to a host value.
func ReadNum[T Number](v View, offset int) T {
	var zero T
	switch any(zero).(type) {
	case int8:
		return T(int8(v.buf[offset]))
	case uint8:
		return T(v.buf[offset])
	case int16:
		return T(int16(v.engine.Uint16(v.buf[offset:]))) //nolint: gosec
	case uint16:
		return T(v.engine.Uint16(v.buf[offset:]))
	case int32:
		return T(int32(v.engine.Uint32(v.buf[offset:]))) //nolint: gosec
	case uint32:
		return T(v.engine.Uint32(v.buf[offset:]))
	case int64:
		return T(int64(v.engine.Uint64(v.buf[offset:]))) //nolint: gosec
	case uint64:
		return T(v.engine.Uint64(v.buf[offset:]))
	case int:
		return T(int64(v.engine.Uint64(v.buf[offset:]))) //nolint: gosec
	case uint:
		return T(v.engine.Uint64(v.buf[offset:]))
	case uintptr:
		return T(v.engine.Uint64(v.buf[offset:]))
	case float32:
		return T(math.Float32frombits(v.engine.Uint32(v.buf[offset:])))
	case float64:
		return T(math.Float64frombits(v.engine.Uint64(v.buf[offset:])))
	default:
		return readNamed[T](v, offset)
	}
}
