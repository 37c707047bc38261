package audio

import (
	"errors"
	"sync"
)

// mockSource is a MediaSource that records lifecycle calls and hands out
// buffers from a small pool filled with a constant byte.
type mockSource struct {
	mtx sync.Mutex

	format  Format
	pool    *BufferPool
	fill    byte
	stopErr error

	starts, stops, closes int
}

func newMockSource(sampleRate, channels int) *mockSource {
	return &mockSource{
		format: Format{
			SampleRate:  int32(sampleRate),
			NumChannels: int32(channels),
			Encoding:    EncodingPCM16Interleaved,
		},
		fill: 0x11,
	}
}

// mockFactory returns a Factory that always yields src.
func mockFactory(src MediaSource) Factory {
	return func(int, int) (MediaSource, error) { return src, nil }
}

func failingFactory(int, int) (MediaSource, error) {
	return nil, errors.New("factory failed")
}

func (m *mockSource) Start() error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.pool != nil {
		return ErrInvalidState
	}

	pool, err := NewBufferPool(2, 16)
	if err != nil {
		return err
	}
	m.pool = pool
	m.starts++

	return nil
}

func (m *mockSource) Stop() error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.stops++
	if m.pool != nil {
		m.pool.Close()
		m.pool = nil
	}

	return m.stopErr
}

func (m *mockSource) Close() error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.closes++
	return nil
}

func (m *mockSource) Format() Format { return m.format }

func (m *mockSource) Read(*ReadOptions) (*Buffer, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.pool == nil {
		return nil, ErrInvalidState
	}

	b, err := m.pool.Acquire()
	if err != nil {
		return nil, err
	}
	for i := range b.data {
		b.data[i] = m.fill
	}
	b.n = len(b.data)
	b.format = m.format

	return b, nil
}

func (m *mockSource) counts() (starts, stops, closes int) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	return m.starts, m.stops, m.closes
}
