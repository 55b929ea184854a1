// Package endian provides byte order utilities for the bdoc binary layout.
//
// The package combines encoding/binary's ByteOrder and AppendByteOrder into a
// single EndianEngine, and builds a typed scalar codec (View) on top of it that
// reads and writes fixed-width numbers at byte offsets of a pre-sized region.
//
// # Basic Usage
//
// The document wire format is little-endian, so most callers want:
//
//	engine := endian.GetLittleEndianEngine()
//	view := endian.NewView(buf, engine)
//	endian.WriteNum(view, 0, int32(len(buf)))
//
// Big-endian and host-native engines exist for callers that lay out their own
// regions, e.g. memory shared with native code:
//
//	view := endian.NewView(buf, endian.GetNativeEngine())
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. Engines are
// immutable and stateless. A View carries no state beyond its slice, so
// concurrent reads are safe; concurrent writes to overlapping offsets are not.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Order selects the byte order of a View.
type Order uint8

const (
	// OrderNative is the byte order of the host CPU.
	OrderNative Order = iota
	// OrderLittle is explicit little-endian order. The document wire format uses it.
	OrderLittle
	// OrderBig is explicit big-endian order.
	OrderBig
)

func (o Order) String() string {
	switch o {
	case OrderNative:
		return "native"
	case OrderLittle:
		return "little"
	case OrderBig:
		return "big"
	default:
		return "unknown"
	}
}

var nativeOrder = detectEndianness()

// detectEndianness inspects the first byte of 0x0100 in memory.
func detectEndianness() binary.ByteOrder {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// NativeIsWireOrder reports whether host values already have the wire layout,
// in which case little-endian views never swap bytes.
func NativeIsWireOrder() bool {
	return nativeOrder == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	if NativeIsWireOrder() {
		return binary.LittleEndian
	}

	return binary.BigEndian
}

// GetEngine returns the engine for the given order. Unknown orders fall back
// to little-endian, the wire order.
func GetEngine(order Order) EndianEngine {
	switch order {
	case OrderNative:
		return GetNativeEngine()
	case OrderBig:
		return binary.BigEndian
	default:
		return binary.LittleEndian
	}
}
