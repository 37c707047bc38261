// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audtone/audio"
)

// HeaderSize is the length of the canonical PCM WAV header.
const HeaderSize = 44

// WriteHeader writes a canonical 44-byte PCM16 WAV header announcing
// dataSize bytes of sample data. It suits writers that cannot seek, such as
// pipes, when the length is known up front.
func WriteHeader(w io.Writer, f audio.Format, dataSize uint32) error {
	if err := checkFormat(f); err != nil {
		return err
	}

	numChannels := uint16(f.NumChannels)
	bitsPerSample := uint16(f.BitDepth())
	blockAlign := uint16(f.FrameSize())
	byteRate := uint32(f.SampleRate) * uint32(blockAlign)

	header := make([]byte, HeaderSize)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(f.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// WritePCM16 writes a complete WAV stream: header followed by pcm, which must
// already be interleaved little-endian PCM16 in format f.
func WritePCM16(w io.Writer, f audio.Format, pcm []byte) error {
	if err := checkFormat(f); err != nil {
		return err
	}
	if len(pcm)%f.FrameSize() != 0 {
		return fmt.Errorf("%w: %d bytes, frame size %d", ErrPartialFrame, len(pcm), f.FrameSize())
	}

	if err := WriteHeader(w, f, uint32(len(pcm))); err != nil {
		return err
	}

	if len(pcm) == 0 {
		return nil
	}

	if _, err := w.Write(pcm); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func checkFormat(f audio.Format) error {
	if f.Encoding != audio.EncodingPCM16Interleaved {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f.Encoding)
	}
	if f.SampleRate <= 0 || f.NumChannels <= 0 {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}

	return nil
}
