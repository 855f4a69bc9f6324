package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPut_RoundTrip(t *testing.T) {
	bb := Get()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())

	bb.WriteString("hello")
	bb.WriteByte(' ')
	bb.WriteString("world")
	assert.Equal(t, "hello world", string(bb.Bytes()))

	Put(bb)
}

func TestGet_ReusesResetBuffer(t *testing.T) {
	bb := Get()
	bb.WriteString("some data")
	cap1 := cap(bb.B)
	Put(bb)

	bb2 := Get()
	assert.Equal(t, 0, bb2.Len(), "buffer returned from pool must be reset")
	assert.LessOrEqual(t, cap1, cap(bb2.B)+defaultSize, "pool should tend to reuse capacity")
	Put(bb2)
}

func TestPut_DropsOversizedBuffers(t *testing.T) {
	bb := &ByteBuffer{B: make([]byte, 0, maxRetainedSize+1)}
	Put(bb) // must not panic, buffer is simply discarded

	bb2 := Get()
	require.NotNil(t, bb2)
	Put(bb2)
}

func TestPut_NilIsNoOp(t *testing.T) {
	assert.NotPanics(t, func() { Put(nil) })
}
