// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"slices"
	"sync"
	"time"
)

// Startable moves a producer into its running state.
type Startable interface {
	Start() error
}

// Stoppable tears a producer down. Stop on a stopped producer succeeds.
type Stoppable interface {
	Stop() error
}

// FormatProvider reports the fixed stream format. It is valid in every
// lifecycle state.
type FormatProvider interface {
	Format() Format
}

// BufferProducer hands out filled buffers. The caller must Release each one.
type BufferProducer interface {
	// Read returns the next buffer. opts may be nil.
	Read(opts *ReadOptions) (*Buffer, error)
}

// MediaSource is the full producer contract. Tone, file or network backed
// producers all satisfy it the same way.
type MediaSource interface {
	Startable
	Stoppable
	FormatProvider
	BufferProducer
	io.Closer
}

// ReadOptions modify a single Read.
type ReadOptions struct {
	// Seek repositions the stream to Position before producing the buffer.
	Seek     bool
	Position time.Duration
}

// SeekTo is shorthand for a seeking ReadOptions.
func SeekTo(pos time.Duration) *ReadOptions {
	return &ReadOptions{Seek: true, Position: pos}
}

// Factory constructs a MediaSource for a sample rate and channel count.
type Factory func(sampleRate, numChannels int) (MediaSource, error)

// Registry for source factories by kind (e.g., "tone").
type Registry struct {
	factories map[string]Factory

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		mtx:       &sync.Mutex{},
	}
}

// DefaultRegistry returns a registry with the built-in "tone" kind.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("tone", ToneFactory())

	return r
}

func (r *Registry) Register(kind string, f Factory) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.factories[kind] = f
}

func (r *Registry) Get(kind string) (Factory, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	f, ok := r.factories[kind]
	return f, ok
}

// New builds a source of the given kind.
func (r *Registry) New(kind string, sampleRate, numChannels int) (MediaSource, error) {
	f, ok := r.Get(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, kind)
	}

	return f(sampleRate, numChannels)
}

// Kinds lists the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	return kinds
}
