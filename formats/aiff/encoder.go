// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audtone/audio"
)

// aiffWriter is an interface for aiff.Encoder to allow testing
type aiffWriter interface {
	Write(buf *goaudio.IntBuffer) error
	Close() error
}

// Encoder writes producer buffers as big-endian AIFF through go-audio/aiff.
type Encoder struct {
	enc    aiffWriter
	format audio.Format
	frames int64
	closed bool
}

func NewEncoder(ws io.WriteSeeker, f audio.Format) (*Encoder, error) {
	if f.Encoding != audio.EncodingPCM16Interleaved || f.SampleRate <= 0 || f.NumChannels <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}

	return &Encoder{
		enc:    aiff.NewEncoder(ws, int(f.SampleRate), f.BitDepth(), int(f.NumChannels)),
		format: f,
	}, nil
}

func (e *Encoder) Write(b *audio.Buffer) error {
	if e.closed {
		return ErrEncoderClosed
	}
	if b.Format() != e.format {
		return fmt.Errorf("%w: got %s, want %s", ErrFormatMismatch, b.Format(), e.format)
	}

	if err := e.enc.Write(b.IntBuffer()); err != nil {
		return fmt.Errorf("writing aiff frames: %w", err)
	}
	e.frames += int64(b.Frames())

	return nil
}

func (e *Encoder) Frames() int64 { return e.frames }

// Close patches the COMM and SSND sizes. The writer itself stays open.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	if e.frames == 0 {
		empty := &goaudio.IntBuffer{Format: e.format.GoAudio(), SourceBitDepth: e.format.BitDepth()}
		if err := e.enc.Write(empty); err != nil {
			return fmt.Errorf("writing aiff header: %w", err)
		}
	}

	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("closing aiff encoder: %w", err)
	}

	return nil
}
