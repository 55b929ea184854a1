package pool

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/arloliu/bdoc/endian"
)

// Default sizes of the pooled buffers.
const (
	DocumentBufferDefaultSize  = 512        // initial capacity of a builder buffer
	DocumentBufferMaxThreshold = 1024 * 64  // 64KiB
	ScratchBufferDefaultSize   = 1024 * 4   // field names and string values in the parser
	ScratchBufferMaxThreshold  = 1024 * 256 // 256KiB
)

// ByteBuffer is an append-only byte accumulator with support for reserved
// regions.
//
// A reservation keeps n bytes of capacity beyond the logical length available
// at all times, so a later append of those bytes never reallocates. Multi-byte
// numbers are always appended in little-endian order, the wire order of the
// document format.
//
// ByteBuffer is not safe for concurrent use.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte

	reserved int
}

var wireEngine = endian.GetLittleEndianEngine()

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes() returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
// Reservations are dropped.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
	bb.reserved = 0
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Reserved returns the number of reserved, uncommitted bytes.
func (bb *ByteBuffer) Reserved() int {
	return bb.reserved
}

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)
}

// Extend extends the buffer by n bytes if there is sufficient capacity
// left after honoring the reservation.
func (bb *ByteBuffer) Extend(n int) bool {
	curLen := len(bb.B)
	if cap(bb.B)-curLen-bb.reserved < n {
		return false
	}

	bb.B = bb.B[:curLen+n]

	return true
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary.
// The new bytes are not cleared.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	if bb.Extend(n) {
		return
	}

	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
}

// Skip advances the logical length by n bytes without writing them.
// The skipped bytes are zeroed so a later back-patch starts from a known state.
func (bb *ByteBuffer) Skip(n int) {
	start := len(bb.B)
	bb.ExtendOrGrow(n)
	clear(bb.B[start:])
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes, on top
// of any reservation, without reallocating.
//
// The new capacity is max(cap*3/2+1, len+reserved+requiredBytes).
func (bb *ByteBuffer) Grow(requiredBytes int) {
	needed := len(bb.B) + bb.reserved + requiredBytes
	if needed <= cap(bb.B) {
		return
	}

	newCap := cap(bb.B)*3/2 + 1
	if newCap < needed {
		newCap = needed
	}

	newBuf := make([]byte, len(bb.B), newCap)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ReserveBytes keeps n more bytes allocated beyond the logical length.
func (bb *ByteBuffer) ReserveBytes(n int) {
	bb.Grow(n)
	bb.reserved += n
}

// ClaimReservedBytes releases n bytes of the reservation so they can be appended.
// Claiming more than reserved is a programming error and panics.
func (bb *ByteBuffer) ClaimReservedBytes(n int) {
	if n > bb.reserved {
		panic(errors.AssertionFailedf("claiming %d reserved bytes, only %d reserved", n, bb.reserved))
	}
	bb.reserved -= n
}

// AppendByte appends a single byte.
func (bb *ByteBuffer) AppendByte(b byte) {
	bb.Grow(1)
	bb.B = append(bb.B, b)
}

// AppendBytes appends raw bytes.
func (bb *ByteBuffer) AppendBytes(data []byte) {
	bb.MustWrite(data)
}

// AppendString appends the bytes of s without a terminator.
func (bb *ByteBuffer) AppendString(s string) {
	bb.Grow(len(s))
	bb.B = append(bb.B, s...)
}

// AppendCString appends s followed by a NUL byte.
func (bb *ByteBuffer) AppendCString(s string) {
	bb.Grow(len(s) + 1)
	bb.B = append(bb.B, s...)
	bb.B = append(bb.B, 0)
}

// AppendCBytes appends data followed by a NUL byte.
func (bb *ByteBuffer) AppendCBytes(data []byte) {
	bb.Grow(len(data) + 1)
	bb.B = append(bb.B, data...)
	bb.B = append(bb.B, 0)
}

// Release hands the written bytes to the caller and resets the buffer to an
// unallocated state. The buffer must not be reused for the released data.
func (bb *ByteBuffer) Release() []byte {
	data := bb.B
	bb.B = nil
	bb.reserved = 0

	return data
}

// AppendNum appends v to bb in little-endian order.
func AppendNum[T endian.Number](bb *ByteBuffer, v T) {
	start := len(bb.B)
	size := endian.SizeOf[T]()
	bb.ExtendOrGrow(size)
	endian.WriteNum(endian.NewView(bb.B[start:start+size], wireEngine), 0, v)
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers.
// The pool can be configured with a maximum size threshold to avoid retaining
// overly large buffers that could lead to memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int // Optional maximum size threshold for buffers
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
// Released buffers hold no memory and are dropped.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil || bb.B == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		// Discard overly large buffers to prevent memory bloat
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	documentDefaultPool = NewByteBufferPool(DocumentBufferDefaultSize, DocumentBufferMaxThreshold)
	scratchDefaultPool  = NewByteBufferPool(ScratchBufferDefaultSize, ScratchBufferMaxThreshold)
)

// GetDocumentBuffer retrieves a ByteBuffer from the default document pool.
func GetDocumentBuffer() *ByteBuffer {
	return documentDefaultPool.Get()
}

// PutDocumentBuffer returns a ByteBuffer to the default document pool.
func PutDocumentBuffer(bb *ByteBuffer) {
	documentDefaultPool.Put(bb)
}

// GetScratchBuffer retrieves a ByteBuffer from the default scratch pool.
func GetScratchBuffer() *ByteBuffer {
	return scratchDefaultPool.Get()
}

// PutScratchBuffer returns a ByteBuffer to the default scratch pool.
func PutScratchBuffer(bb *ByteBuffer) {
	scratchDefaultPool.Put(bb)
}
