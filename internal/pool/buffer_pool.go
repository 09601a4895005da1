package pool

import "sync"

// MaxRetainedSize caps the capacity of buffers returned to the pool so a
// single huge document does not pin its memory for the rest of the run.
const MaxRetainedSize = 4 * 1024 * 1024

// BufferPool implements a pool of byte slices for efficient memory reuse
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool with buffers of the specified size
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves a buffer with at least minCap capacity and zero length.
func (bp *BufferPool) Get(minCap int) *[]byte {
	buffer := bp.pool.Get().(*[]byte)
	if cap(*buffer) < minCap {
		*buffer = make([]byte, 0, minCap)
	}
	*buffer = (*buffer)[:0]
	return buffer
}

// Put returns a buffer to the pool for reuse
func (bp *BufferPool) Put(buffer *[]byte) {
	if cap(*buffer) > MaxRetainedSize {
		return
	}
	*buffer = (*buffer)[:0]
	bp.pool.Put(buffer)
}

// Size reports the initial capacity of freshly allocated buffers.
func (bp *BufferPool) Size() int {
	return bp.size
}
