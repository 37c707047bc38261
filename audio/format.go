// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"time"

	goaudio "github.com/go-audio/audio"
)

// Encoding names the sample layout of a stream.
type Encoding string

// EncodingPCM16Interleaved is signed 16-bit little-endian PCM with channels
// interleaved frame by frame.
const EncodingPCM16Interleaved Encoding = "pcm_s16le_interleaved"

// BytesPerSample is the width of one PCM16 sample.
const BytesPerSample = 2

// Format describes the fixed output of a producer. It is a value type and
// never changes once a source is constructed.
type Format struct {
	SampleRate  int32
	NumChannels int32
	Encoding    Encoding
}

// FrameSize is the number of bytes holding one sample for every channel.
func (f Format) FrameSize() int {
	return int(f.NumChannels) * BytesPerSample
}

// BitDepth of the encoding.
func (f Format) BitDepth() int {
	return BytesPerSample * 8
}

// FramesToDuration converts a frame count to wall-clock time.
func (f Format) FramesToDuration(frames int64) time.Duration {
	if f.SampleRate <= 0 {
		return 0
	}

	sec := frames / int64(f.SampleRate)
	rem := frames % int64(f.SampleRate)

	return time.Duration(sec)*time.Second +
		time.Duration(rem)*time.Second/time.Duration(f.SampleRate)
}

// DurationToFrames converts d to a frame count, truncating partial frames.
func (f Format) DurationToFrames(d time.Duration) int64 {
	if d <= 0 || f.SampleRate <= 0 {
		return 0
	}

	sec := int64(d / time.Second)
	rem := int64(d % time.Second)

	return sec*int64(f.SampleRate) + rem*int64(f.SampleRate)/int64(time.Second)
}

// GoAudio returns the equivalent go-audio format descriptor.
func (f Format) GoAudio() *goaudio.Format {
	return &goaudio.Format{
		NumChannels: int(f.NumChannels),
		SampleRate:  int(f.SampleRate),
	}
}

func (f Format) String() string {
	return fmt.Sprintf("%d Hz, %d ch, %s", f.SampleRate, f.NumChannels, f.Encoding)
}

// validateFormat checks the construction parameters shared by every producer.
func validateFormat(sampleRate, numChannels int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidArgument, sampleRate)
	}
	if sampleRate > maxSampleRate {
		return fmt.Errorf("%w: sample rate %d exceeds %d", ErrInvalidArgument, sampleRate, maxSampleRate)
	}
	if numChannels != 1 && numChannels != 2 {
		return fmt.Errorf("%w: channel count must be 1 or 2, got %d", ErrInvalidArgument, numChannels)
	}

	return nil
}

// maxSampleRate keeps the rate inside the int32 carried by Format.
const maxSampleRate = 1<<31 - 1
