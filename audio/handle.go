// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"sync"
)

// Handle shares ownership of a MediaSource between pipeline stages. The
// source is stopped and closed when the last reference is released, exactly
// once, on the goroutine that drops it.
type Handle struct {
	mtx  sync.Mutex
	src  MediaSource
	refs int
}

// NewHandle wraps src with a single reference.
func NewHandle(src MediaSource) *Handle {
	return &Handle{src: src, refs: 1}
}

// Retain adds a reference. It fails once the handle has been fully released.
func (h *Handle) Retain() error {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	if h.refs == 0 {
		return fmt.Errorf("%w: handle already released", ErrInvalidState)
	}
	h.refs++

	return nil
}

// Release drops a reference. The final release tears the source down and
// returns any error from Stop or Close.
func (h *Handle) Release() error {
	h.mtx.Lock()
	if h.refs == 0 {
		h.mtx.Unlock()
		return fmt.Errorf("%w: handle already released", ErrInvalidState)
	}

	h.refs--
	if h.refs > 0 {
		h.mtx.Unlock()
		return nil
	}

	src := h.src
	h.src = nil
	h.mtx.Unlock()

	return errors.Join(src.Stop(), src.Close())
}

// Source returns the wrapped source, or nil after the final release.
func (h *Handle) Source() MediaSource {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	return h.src
}

func (h *Handle) Refs() int {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	return h.refs
}
