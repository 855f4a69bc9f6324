// Package pool provides a reusable growable byte buffer for the XMLN encoder,
// avoiding a fresh allocation per Compress call.
package pool

import "sync"

// defaultSize is the initial capacity handed out by the pool. XMLN text is
// typically a small multiple of the original document size, so this is sized
// for a modest document; larger documents simply grow the buffer once.
const defaultSize = 4 * 1024

// maxRetainedSize is the largest buffer the pool will keep; anything bigger
// is discarded on Put to avoid pinning a large allocation after an outlier
// document.
const maxRetainedSize = 1024 * 1024

// ByteBuffer is a growable byte slice wrapper, analogous to bytes.Buffer but
// exposing the raw backing slice for append-heavy callers.
type ByteBuffer struct {
	B []byte
}

// Bytes returns the buffer's contents.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of bytes currently held.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer while retaining its backing array.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// WriteString appends s to the buffer, growing it as needed.
func (bb *ByteBuffer) WriteString(s string) {
	bb.B = append(bb.B, s...)
}

// Write appends p to the buffer, implementing io.Writer so a ByteBuffer can
// be handed directly to the DEFLATE writer.
func (bb *ByteBuffer) Write(p []byte) (int, error) {
	bb.B = append(bb.B, p...)

	return len(p), nil
}

// WriteByte appends a single byte to the buffer.
func (bb *ByteBuffer) WriteByte(c byte) {
	bb.B = append(bb.B, c)
}

var bufPool = sync.Pool{
	New: func() any {
		return &ByteBuffer{B: make([]byte, 0, defaultSize)}
	},
}

// Get retrieves a reset ByteBuffer from the shared pool.
func Get() *ByteBuffer {
	bb, _ := bufPool.Get().(*ByteBuffer)

	return bb
}

// Put returns bb to the shared pool. Buffers that grew past
// maxRetainedSize are dropped instead, so one oversized document does not
// permanently inflate the pool's footprint.
func Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if cap(bb.B) > maxRetainedSize {
		return
	}

	bb.Reset()
	bufPool.Put(bb)
}
