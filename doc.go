// SPDX-License-Identifier: EPL-2.0

// Package audtone renders test tones and other media sources to PCM.
//
// The audio subpackage holds the producer contract and the built-in tone
// source. This package adds helpers for the common case of wanting a fixed
// length of audio in one call.
//
// # Quick Start
//
//	src, _ := audio.NewToneSource(44100, 1)
//	pcm, err := audtone.Render(src, 2*time.Second)
//	// pcm is 88200 frames of little-endian int16
//
// # Streaming
//
// RenderTo writes the same bytes to any io.Writer without holding them in
// memory:
//
//	f, _ := os.Create("tone.raw")
//	n, err := audtone.RenderTo(f, src, time.Minute)
//
// # Containers
//
// WAV and AIFF output live in formats/wav and formats/aiff, device playback
// in output. The tonegen command ties them together with a YAML config.
//
// # Performance
//
// Sources reuse a fixed pool of buffers, so steady-state rendering does not
// allocate per buffer. Render allocates its result once, sized from the
// requested duration.
package audtone
