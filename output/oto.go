// SPDX-License-Identifier: EPL-2.0

package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"

	"github.com/ik5/audtone/audio"
)

// ErrUnsupportedFormat indicates a stream oto cannot play as is
var ErrUnsupportedFormat = errors.New("oto plays 16-bit PCM only")

const pollInterval = 10 * time.Millisecond

// player is the part of *oto.Player Play needs.
type player interface {
	Play()
	Pause()
	IsPlaying() bool
	Err() error
	Close() error
}

// Oto plays producer output on the default device.
type Oto struct {
	format    audio.Format
	logger    *zap.Logger
	newPlayer func(r io.Reader) player
	poll      time.Duration
}

// NewOto opens the device for f and waits until it is ready. A nil logger
// disables logging.
func NewOto(f audio.Format, logger *zap.Logger) (*Oto, error) {
	if f.Encoding != audio.EncodingPCM16Interleaved {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(f.SampleRate),
		ChannelCount: int(f.NumChannels),
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("creating oto context: %w", err)
	}
	<-ready

	o := newOto(f, logger, func(r io.Reader) player { return ctx.NewPlayer(r) })
	o.logger.Debug("audio output ready")

	return o, nil
}

func newOto(f audio.Format, logger *zap.Logger, np func(io.Reader) player) *Oto {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Oto{
		format: f,
		logger: logger.With(
			zap.Int32("sample_rate", f.SampleRate),
			zap.Int32("channels", f.NumChannels),
		),
		newPlayer: np,
		poll:      pollInterval,
	}
}

// Play streams d of audio from p, which must already be started and match
// the device format. It blocks until playback drains or ctx is done.
func (o *Oto) Play(ctx context.Context, p audio.BufferProducer, d time.Duration) error {
	if fp, ok := p.(audio.FormatProvider); ok && fp.Format() != o.format {
		return fmt.Errorf("%w: producer is %s, device is %s", ErrUnsupportedFormat, fp.Format(), o.format)
	}

	size := o.format.DurationToFrames(d) * int64(o.format.FrameSize())
	pl := o.newPlayer(io.LimitReader(audio.NewReader(p), size))
	pl.Play()

	o.logger.Debug("playback started", zap.Duration("duration", d))

	t := time.NewTicker(o.poll)
	defer t.Stop()

	for pl.IsPlaying() {
		select {
		case <-ctx.Done():
			pl.Pause()
			o.logger.Debug("playback cancelled")
			return errors.Join(ctx.Err(), pl.Close())
		case <-t.C:
		}
	}

	if err := pl.Err(); err != nil {
		_ = pl.Close()
		return fmt.Errorf("playing: %w", err)
	}

	o.logger.Debug("playback finished")

	return pl.Close()
}
