// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds helpers shared by the package tests. It does not
// import the audio package so audio's own tests can use it.
package audiotest

import (
	"encoding/binary"
	"math"

	"github.com/ik5/audtone/utils"
)

// ReferenceTone synthesizes frames interleaved frames of a sine tone in one
// pass, starting at startPhase (in samples). It is the straightforward
// formula the streaming generator must agree with.
func ReferenceTone(sampleRate, channels, frames int, frequency, amplitude, startPhase float64) []int16 {
	out := make([]int16, frames*channels)

	for i := range frames {
		t := (startPhase + float64(i)) / float64(sampleRate)
		s := utils.Float64ToInt16(amplitude * math.Sin(2*math.Pi*frequency*t))
		for ch := range channels {
			out[i*channels+ch] = s
		}
	}

	return out
}

// DecodePCM16 splits little-endian PCM16 bytes into samples.
func DecodePCM16(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[i*2:]))
	}

	return out
}

// MaxAbsDiff returns the largest per-sample difference between a and b and
// the index where it occurs. Slices of different length report -1.
func MaxAbsDiff(a, b []int16) (diff int, at int) {
	if len(a) != len(b) {
		return -1, -1
	}

	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < 0 {
			d = -d
		}
		if d > diff {
			diff, at = d, i
		}
	}

	return diff, at
}

// Channel extracts one channel from interleaved samples.
func Channel(samples []int16, channels, ch int) []int16 {
	out := make([]int16, 0, len(samples)/channels)
	for i := ch; i < len(samples); i += channels {
		out = append(out, samples[i])
	}

	return out
}
