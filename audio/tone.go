// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ik5/audtone/internal/metrics"
)

// ToneSource produces an endless stream of PCM16 buffers carrying a pure sine
// tone. It is built stopped; Start allocates its buffer pool and Stop
// reclaims it.
//
// Read is meant for a single consumer. Start, Stop and Read share one mutex,
// so a control goroutine may stop the source while a data goroutine reads.
type ToneSource struct {
	mtx sync.Mutex

	id         string
	format     Format
	frequency  float64
	amplitude  float64
	bufferSize int
	poolSize   int

	logger  *zap.Logger
	metrics *metrics.Metrics

	started  bool
	closed   bool
	pool     *BufferPool
	gen      *PhaseGenerator
	position int64 // frames produced since start or the last seek target
}

// ToneOption customizes a ToneSource at construction.
type ToneOption func(*ToneSource)

// WithFrequency sets the tone frequency in Hz.
func WithFrequency(hz float64) ToneOption {
	return func(s *ToneSource) { s.frequency = hz }
}

// WithAmplitude sets the peak level as a fraction of full scale, in (0, 1].
func WithAmplitude(a float64) ToneOption {
	return func(s *ToneSource) { s.amplitude = a }
}

// WithBufferSize sets the byte capacity of each pooled buffer.
func WithBufferSize(n int) ToneOption {
	return func(s *ToneSource) { s.bufferSize = n }
}

// WithPoolSize sets how many buffers may be outstanding at once.
func WithPoolSize(n int) ToneOption {
	return func(s *ToneSource) { s.poolSize = n }
}

func WithLogger(l *zap.Logger) ToneOption {
	return func(s *ToneSource) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) ToneOption {
	return func(s *ToneSource) { s.metrics = m }
}

// NewToneSource validates the configuration and returns a stopped source.
// No buffers are allocated until Start.
func NewToneSource(sampleRate, numChannels int, opts ...ToneOption) (*ToneSource, error) {
	if err := validateFormat(sampleRate, numChannels); err != nil {
		return nil, err
	}

	s := &ToneSource{
		id: uuid.NewString(),
		format: Format{
			SampleRate:  int32(sampleRate),
			NumChannels: int32(numChannels),
			Encoding:    EncodingPCM16Interleaved,
		},
		frequency:  DefaultFrequency,
		amplitude:  DefaultAmplitude,
		bufferSize: DefaultBufferSize,
		poolSize:   DefaultPoolSize,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	s.gen = NewPhaseGenerator(sampleRate, s.frequency, s.amplitude)
	s.logger = s.logger.With(
		zap.String("source_id", s.id),
		zap.Int32("sample_rate", s.format.SampleRate),
		zap.Int32("channels", s.format.NumChannels),
	)

	return s, nil
}

// ToneFactory adapts NewToneSource to a registry Factory.
func ToneFactory(opts ...ToneOption) Factory {
	return func(sampleRate, numChannels int) (MediaSource, error) {
		return NewToneSource(sampleRate, numChannels, opts...)
	}
}

func (s *ToneSource) validate() error {
	if !(s.frequency > 0) || math.IsInf(s.frequency, 0) {
		return fmt.Errorf("%w: frequency must be positive and finite, got %v", ErrInvalidArgument, s.frequency)
	}
	if !(s.amplitude > 0 && s.amplitude <= 1) {
		return fmt.Errorf("%w: amplitude must be in (0, 1], got %v", ErrInvalidArgument, s.amplitude)
	}
	if s.bufferSize < s.format.FrameSize() {
		return fmt.Errorf("%w: buffer size %d is smaller than one frame", ErrInvalidArgument, s.bufferSize)
	}
	if s.poolSize <= 0 {
		return fmt.Errorf("%w: pool size must be positive, got %d", ErrInvalidArgument, s.poolSize)
	}

	return nil
}

// ID uniquely identifies the source in logs.
func (s *ToneSource) ID() string { return s.id }

// Format is fixed at construction and may be queried in any state.
func (s *ToneSource) Format() Format { return s.format }

// Frequency of the tone in Hz.
func (s *ToneSource) Frequency() float64 { return s.frequency }

// FramesPerBuffer is the number of frames every Read produces.
func (s *ToneSource) FramesPerBuffer() int {
	return s.bufferSize / s.format.FrameSize()
}

func (s *ToneSource) Started() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.started
}

// Start allocates the buffer pool and rewinds the tone to phase 0. Starting a
// started source returns ErrInvalidState.
func (s *ToneSource) Start() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return fmt.Errorf("%w: source is closed", ErrInvalidState)
	}
	if s.started {
		return fmt.Errorf("%w: source already started", ErrInvalidState)
	}

	pool, err := NewBufferPool(s.poolSize, s.bufferSize)
	if err != nil {
		s.logger.Warn("buffer pool allocation failed", zap.Error(err))
		return fmt.Errorf("allocating pool: %w", err)
	}
	pool.metrics = s.metrics

	s.pool = pool
	s.gen.Reset()
	s.position = 0
	s.started = true
	s.metrics.SourceStarted()

	s.logger.Debug("tone source started",
		zap.Float64("frequency", s.frequency),
		zap.Int("buffer_size", s.bufferSize),
		zap.Int("pool_size", s.poolSize),
	)

	return nil
}

// Stop reclaims the pool, invalidating buffers consumers still hold. It is a
// no-op on a stopped source.
func (s *ToneSource) Stop() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.stopLocked()

	return nil
}

// Close stops the source for good. Later Start calls fail.
func (s *ToneSource) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.stopLocked()
	s.closed = true

	return nil
}

func (s *ToneSource) stopLocked() {
	if !s.started {
		return
	}

	outstanding := s.pool.Outstanding()
	s.pool.Close()
	s.pool = nil
	s.started = false
	s.metrics.SourceStopped()

	s.logger.Debug("tone source stopped",
		zap.Int64("position", s.position),
		zap.Int("reclaimed", outstanding),
	)
}

// Read synthesizes the next buffer. With opts.Seek set, the tone is first
// repositioned to opts.Position, and the buffer's timestamp restarts there.
//
// On error nothing is committed: the phase and position are as before.
func (s *ToneSource) Read(opts *ReadOptions) (*Buffer, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.started {
		return nil, fmt.Errorf("%w: source not started", ErrInvalidState)
	}
	if opts != nil && opts.Seek && opts.Position < 0 {
		return nil, fmt.Errorf("%w: negative seek position %v", ErrInvalidArgument, opts.Position)
	}

	b, err := s.pool.Acquire()
	if err != nil {
		s.logger.Warn("read rejected", zap.Error(err))
		return nil, err
	}

	if opts != nil && opts.Seek {
		target := s.format.DurationToFrames(opts.Position)
		s.gen.Seek(target)
		s.position = target
		s.metrics.Seek()

		s.logger.Debug("tone source seek",
			zap.Duration("target", opts.Position),
			zap.Float64("phase", s.gen.Phase()),
		)
	}

	frames := s.FramesPerBuffer()
	channels := int(s.format.NumChannels)

	s.gen.Fill(b.data, frames, channels)
	b.n = frames * s.format.FrameSize()
	b.format = s.format
	b.Timestamp = s.position

	s.gen.Advance(frames)
	s.position += int64(frames)
	s.metrics.BufferProduced(b.n)

	return b, nil
}

// Phase reports the current phase offset in samples, in [0, period).
func (s *ToneSource) Phase() float64 {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.gen.Phase()
}

// Period is the tone cycle length in samples.
func (s *ToneSource) Period() float64 { return s.gen.Period() }
