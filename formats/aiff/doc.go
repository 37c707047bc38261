// SPDX-License-Identifier: EPL-2.0

// Package aiff writes tone source output as AIFF (Audio Interchange File
// Format).
//
// This package uses github.com/go-audio/aiff to encode AIFF files.
// AIFF is Apple's standard audio file format, commonly used on macOS.
//
// # Supported Formats
//
// Currently supported:
//   - PCM 16-bit, big-endian on disk
//   - Mono and stereo
//   - Any sample rate
//
// # Encoding
//
//	f, _ := os.Create("tone.aiff")
//	defer f.Close()
//
//	enc, err := aiff.NewEncoder(f, src.Format())
//	if err != nil {
//	    // Handle error
//	}
//
//	buf, _ := src.Read(nil)
//	enc.Write(buf)
//	buf.Release()
//
//	enc.Close()
//
// The destination must be an io.WriteSeeker: the chunk sizes are only known
// once all frames are written and are patched on Close.
package aiff
