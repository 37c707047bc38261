// SPDX-License-Identifier: EPL-2.0

package audtone

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ik5/audtone/audio"
)

// Frames is the number of whole frames of f that fit in d.
func Frames(f audio.Format, d time.Duration) int64 {
	return f.DurationToFrames(d)
}

// Render collects exactly Frames(src.Format(), d) frames from src.
//
// If src is not yet running Render starts it and stops it again before
// returning. A running source is left running and continues from where
// Render stopped reading.
func Render(src audio.MediaSource, d time.Duration) ([]byte, error) {
	if d < 0 {
		return nil, fmt.Errorf("%w: negative duration %v", audio.ErrInvalidArgument, d)
	}

	f := src.Format()
	out := bytes.NewBuffer(make([]byte, 0, Frames(f, d)*int64(f.FrameSize())))

	if _, err := RenderTo(out, src, d); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// RenderTo is the streaming form of Render. It returns the number of bytes
// written to w.
func RenderTo(w io.Writer, src audio.MediaSource, d time.Duration) (written int64, err error) {
	if d < 0 {
		return 0, fmt.Errorf("%w: negative duration %v", audio.ErrInvalidArgument, d)
	}

	if !running(src) {
		if err := src.Start(); err != nil {
			return 0, fmt.Errorf("starting source: %w", err)
		}
		defer func() {
			err = errors.Join(err, src.Stop())
		}()
	}

	f := src.Format()
	remaining := Frames(f, d) * int64(f.FrameSize())

	for remaining > 0 {
		buf, err := src.Read(nil)
		if err != nil {
			return written, fmt.Errorf("reading source: %w", err)
		}

		data := buf.Bytes()
		if int64(len(data)) > remaining {
			data = data[:remaining]
		}

		n, err := w.Write(data)
		buf.Release()
		written += int64(n)
		remaining -= int64(n)

		if err != nil {
			return written, fmt.Errorf("writing pcm: %w", err)
		}
	}

	return written, nil
}

func running(src audio.MediaSource) bool {
	s, ok := src.(interface{ Started() bool })
	return ok && s.Started()
}
