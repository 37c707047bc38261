// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"math"

	"github.com/ik5/audtone/utils"
)

const (
	// DefaultFrequency of the synthesized tone, in Hz.
	DefaultFrequency = 500.0

	// DefaultAmplitude is the peak level as a fraction of full scale. Half
	// scale leaves headroom so quantization never clips.
	DefaultAmplitude = 0.5
)

// PhaseGenerator synthesizes a sine tone one block at a time. The phase is
// kept in samples, in [0, Period()), and is renormalized on every Advance so
// rounding error stays bounded however long the stream runs.
type PhaseGenerator struct {
	frequency  float64
	sampleRate float64
	amplitude  float64
	period     float64
	omega      float64 // radians per sample

	phase float64
}

func NewPhaseGenerator(sampleRate int, frequency, amplitude float64) *PhaseGenerator {
	sr := float64(sampleRate)

	return &PhaseGenerator{
		frequency:  frequency,
		sampleRate: sr,
		amplitude:  amplitude,
		period:     sr / frequency,
		omega:      2 * math.Pi * frequency / sr,
	}
}

// Period is the length of one tone cycle in samples. It need not be integral.
func (g *PhaseGenerator) Period() float64 { return g.period }

// Phase is the current offset into the cycle, in samples.
func (g *PhaseGenerator) Phase() float64 { return g.phase }

func (g *PhaseGenerator) Frequency() float64 { return g.frequency }
func (g *PhaseGenerator) Amplitude() float64 { return g.amplitude }

func (g *PhaseGenerator) Reset() { g.phase = 0 }

// Seek sets the phase as if samples frames had been produced from phase 0.
func (g *PhaseGenerator) Seek(samples int64) {
	g.phase = g.wrap(float64(samples))
}

// Advance moves the phase forward by frames and wraps it into the period.
func (g *PhaseGenerator) Advance(frames int) {
	g.phase = g.wrap(g.phase + float64(frames))
}

// Sample returns the quantized value at offset i from the current phase.
func (g *PhaseGenerator) Sample(i int) int16 {
	return utils.Float64ToInt16(g.amplitude * math.Sin(g.omega*(g.phase+float64(i))))
}

// Fill writes frames interleaved PCM16LE frames into dst, the same sample on
// every channel, starting at the current phase. It does not move the phase.
// dst must hold at least frames*channels*2 bytes.
func (g *PhaseGenerator) Fill(dst []byte, frames, channels int) {
	if frames <= 0 {
		return
	}

	frameSize := channels * BytesPerSample
	_ = dst[frames*frameSize-1]

	for i := range frames {
		s := uint16(g.Sample(i))
		off := i * frameSize
		for ch := range channels {
			binary.LittleEndian.PutUint16(dst[off+ch*BytesPerSample:], s)
		}
	}
}

func (g *PhaseGenerator) wrap(p float64) float64 {
	p = math.Mod(p, g.period)
	if p < 0 {
		p += g.period
	}
	if p >= g.period {
		p = 0
	}

	return p
}
