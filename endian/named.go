package endian

import (
	"math"
	"reflect"
)

// Named numeric types (e.g. `type Micros int64`) do not match the type switch
// on their underlying type, so they are routed through their reflect.Kind.

func sizeOfNamed[T Number](zero T) int {
	switch reflect.TypeOf(zero).Kind() { //nolint: exhaustive
	case reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 4
	default:
		return 8
	}
}

func writeNamed[T Number](v View, offset int, val T) {
	rv := reflect.ValueOf(val)
	switch rv.Kind() { //nolint: exhaustive
	case reflect.Int8:
		WriteNum(v, offset, int8(rv.Int())) //nolint: gosec
	case reflect.Int16:
		WriteNum(v, offset, int16(rv.Int())) //nolint: gosec
	case reflect.Int32:
		WriteNum(v, offset, int32(rv.Int())) //nolint: gosec
	case reflect.Int64, reflect.Int:
		WriteNum(v, offset, rv.Int())
	case reflect.Uint8:
		WriteNum(v, offset, uint8(rv.Uint())) //nolint: gosec
	case reflect.Uint16:
		WriteNum(v, offset, uint16(rv.Uint())) //nolint: gosec
	case reflect.Uint32:
		WriteNum(v, offset, uint32(rv.Uint())) //nolint: gosec
	case reflect.Uint64, reflect.Uint, reflect.Uintptr:
		WriteNum(v, offset, rv.Uint())
	case reflect.Float32:
		WriteNum(v, offset, float32(rv.Float()))
	case reflect.Float64:
		WriteNum(v, offset, rv.Float())
	}
}

func readNamed[T Number](v View, offset int) T {
	var zero T
	switch reflect.TypeOf(zero).Kind() { //nolint: exhaustive
	case reflect.Int8:
		return T(ReadNum[int8](v, offset))
	case reflect.Int16:
		return T(ReadNum[int16](v, offset))
	case reflect.Int32:
		return T(ReadNum[int32](v, offset))
	case reflect.Int64, reflect.Int:
		return T(ReadNum[int64](v, offset))
	case reflect.Uint8:
		return T(ReadNum[uint8](v, offset))
	case reflect.Uint16:
		return T(ReadNum[uint16](v, offset))
	case reflect.Uint32:
		return T(ReadNum[uint32](v, offset))
	case reflect.Uint64, reflect.Uint, reflect.Uintptr:
		return T(ReadNum[uint64](v, offset))
	case reflect.Float32:
		return T(math.Float32frombits(v.engine.Uint32(v.buf[offset:])))
	default:
		return T(math.Float64frombits(v.engine.Uint64(v.buf[offset:])))
	}
}
