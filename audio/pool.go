// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/ik5/audtone/internal/metrics"
)

const (
	// DefaultBufferSize is the byte capacity of every pooled buffer.
	DefaultBufferSize = 8192

	// DefaultPoolSize is the number of buffers a tone source allocates.
	DefaultPoolSize = 4

	// MaxPoolBytes caps the memory a single pool may reserve.
	MaxPoolBytes = 64 << 20
)

// BufferPool is a fixed set of equally sized buffers. All memory is
// allocated up front by NewBufferPool; Acquire and Release never allocate.
// Acquire fails fast instead of waiting when every buffer is out.
type BufferPool struct {
	mtx sync.Mutex

	size   int
	count  int
	free   []*Buffer
	closed bool

	metrics *metrics.Metrics
}

// NewBufferPool reserves count buffers of size bytes each.
func NewBufferPool(count, size int) (*BufferPool, error) {
	if count <= 0 || size <= 0 {
		return nil, fmt.Errorf("%w: pool needs positive count and size, got %d x %d",
			ErrInvalidArgument, count, size)
	}
	if count > math.MaxInt/size || count*size > MaxPoolBytes {
		return nil, fmt.Errorf("%w: pool of %d x %d bytes exceeds %d bytes",
			ErrResourceExhausted, count, size, MaxPoolBytes)
	}

	p := &BufferPool{
		size:  size,
		count: count,
		free:  make([]*Buffer, 0, count),
	}

	// One slab, carved into fixed windows.
	slab := make([]byte, count*size)
	for i := range count {
		p.free = append(p.free, &Buffer{
			data: slab[i*size : (i+1)*size : (i+1)*size],
			pool: p,
		})
	}

	return p, nil
}

// Acquire takes a free buffer. It returns ErrResourceExhausted when all
// buffers are outstanding and ErrInvalidState once the pool is closed.
func (p *BufferPool) Acquire() (*Buffer, error) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.closed {
		return nil, fmt.Errorf("%w: pool is closed", ErrInvalidState)
	}

	last := len(p.free) - 1
	if last < 0 {
		p.metrics.Exhausted()
		return nil, fmt.Errorf("%w: all %d buffers are outstanding", ErrResourceExhausted, p.count)
	}

	b := p.free[last]
	p.free[last] = nil
	p.free = p.free[:last]

	b.held = true
	b.n = 0
	b.Timestamp = 0
	p.metrics.Outstanding(1)

	return b, nil
}

// Release returns b to the free set. Buffers that are not currently held
// from this pool are ignored.
func (p *BufferPool) Release(b *Buffer) {
	if b == nil {
		return
	}

	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.closed || b.pool != p || !b.held {
		return
	}

	b.held = false
	p.free = append(p.free, b)
	p.metrics.Outstanding(-1)
}

// Close reclaims every buffer, including outstanding ones. Buffers still in
// consumer hands become inert: releasing them is a no-op and the pool never
// hands them out again.
func (p *BufferPool) Close() {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.closed {
		return
	}

	p.metrics.Outstanding(-(p.count - len(p.free)))
	p.closed = true
	p.free = nil
}

// Available is the number of buffers ready for Acquire.
func (p *BufferPool) Available() int {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return len(p.free)
}

// Outstanding is the number of buffers currently held by consumers.
func (p *BufferPool) Outstanding() int {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.closed {
		return 0
	}

	return p.count - len(p.free)
}

// Cap is the configured number of buffers.
func (p *BufferPool) Cap() int { return p.count }

// Size is the byte capacity of each buffer.
func (p *BufferPool) Size() int { return p.size }
