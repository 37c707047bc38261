// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audtone/audio"
)

// wavFormatPCM is the WAVE_FORMAT_PCM tag.
const wavFormatPCM = 1

// Encoder streams producer buffers into a WAV file. The sizes in the header
// are patched on Close, which is why the destination must be seekable.
type Encoder struct {
	enc    *wav.Encoder
	format audio.Format
	frames int64
	closed bool
}

func NewEncoder(ws io.WriteSeeker, f audio.Format) (*Encoder, error) {
	if err := checkFormat(f); err != nil {
		return nil, err
	}

	return &Encoder{
		enc:    wav.NewEncoder(ws, int(f.SampleRate), f.BitDepth(), int(f.NumChannels), wavFormatPCM),
		format: f,
	}, nil
}

// Write appends the valid bytes of b. The buffer stays owned by the caller.
func (e *Encoder) Write(b *audio.Buffer) error {
	if e.closed {
		return ErrEncoderClosed
	}
	if b.Format() != e.format {
		return fmt.Errorf("%w: got %s, want %s", ErrFormatMismatch, b.Format(), e.format)
	}

	if err := e.enc.Write(b.IntBuffer()); err != nil {
		return fmt.Errorf("writing wav frames: %w", err)
	}
	e.frames += int64(b.Frames())

	return nil
}

// Frames is the number of frames written so far.
func (e *Encoder) Frames() int64 { return e.frames }

// Close finalizes the header. It does not close the underlying writer.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	if e.frames == 0 {
		// Forces the header out so an empty file is still valid.
		empty := &goaudio.IntBuffer{Format: e.format.GoAudio(), SourceBitDepth: e.format.BitDepth()}
		if err := e.enc.Write(empty); err != nil {
			return fmt.Errorf("writing wav header: %w", err)
		}
	}

	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("closing wav encoder: %w", err)
	}

	return nil
}
