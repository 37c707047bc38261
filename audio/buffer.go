// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"time"

	goaudio "github.com/go-audio/audio"
)

// Buffer is a pooled block of interleaved PCM16 bytes handed out by a
// producer. The consumer owns it until Release is called; after that, or
// after the producing source is stopped, its bytes must not be used.
type Buffer struct {
	data []byte
	n    int

	// Timestamp is the presentation time of the first frame, in frames since
	// the start of the stream (or since the last seek target).
	Timestamp int64

	format Format
	pool   *BufferPool
	held   bool // guarded by pool.mtx
}

// Bytes returns the valid region of the buffer, starting at offset 0.
func (b *Buffer) Bytes() []byte { return b.data[:b.n] }

// Len is the number of valid bytes.
func (b *Buffer) Len() int { return b.n }

// Offset of the valid region. Producers always write from the start.
func (b *Buffer) Offset() int { return 0 }

// Cap is the fixed capacity of the underlying block.
func (b *Buffer) Cap() int { return len(b.data) }

func (b *Buffer) Format() Format { return b.format }

// Frames is the number of complete frames held.
func (b *Buffer) Frames() int {
	fs := b.format.FrameSize()
	if fs == 0 {
		return 0
	}

	return b.n / fs
}

// Truncate drops every frame past the first frames. It never grows the
// valid region.
func (b *Buffer) Truncate(frames int) {
	if frames < 0 {
		frames = 0
	}
	if frames < b.Frames() {
		b.n = frames * b.format.FrameSize()
	}
}

// PTS is Timestamp expressed as wall-clock time.
func (b *Buffer) PTS() time.Duration {
	return b.format.FramesToDuration(b.Timestamp)
}

// Int16s decodes the valid bytes into dst, growing it when needed, and
// returns the filled slice.
func (b *Buffer) Int16s(dst []int16) []int16 {
	count := b.n / BytesPerSample
	if cap(dst) < count {
		dst = make([]int16, count)
	}
	dst = dst[:count]

	for i := range count {
		dst[i] = int16(binary.LittleEndian.Uint16(b.data[i*2:]))
	}

	return dst
}

// IntBuffer copies the samples into a go-audio buffer, the input type of the
// go-audio encoders.
func (b *Buffer) IntBuffer() *goaudio.IntBuffer {
	count := b.n / BytesPerSample
	data := make([]int, count)

	for i := range count {
		data[i] = int(int16(binary.LittleEndian.Uint16(b.data[i*2:])))
	}

	return &goaudio.IntBuffer{
		Format:         b.format.GoAudio(),
		Data:           data,
		SourceBitDepth: b.format.BitDepth(),
	}
}

// Release hands the buffer back to its pool. Releasing twice, or after the
// pool was closed, does nothing.
func (b *Buffer) Release() {
	if b == nil || b.pool == nil {
		return
	}

	b.pool.Release(b)
}
