// SPDX-License-Identifier: EPL-2.0

// Package wav writes tone source output as PCM 16-bit WAV.
//
// Two writers are provided:
//   - WritePCM16 and WriteHeader emit a canonical 44-byte header and work on
//     any io.Writer, including pipes, when the data length is known
//   - Encoder streams buffers into an io.WriteSeeker using
//     github.com/go-audio/wav and patches the sizes on Close
//
// # Streaming To A File
//
//	f, _ := os.Create("tone.wav")
//	defer f.Close()
//
//	enc, err := wav.NewEncoder(f, src.Format())
//	if err != nil {
//	    return err
//	}
//
//	for range 100 {
//	    buf, err := src.Read(nil)
//	    if err != nil {
//	        return err
//	    }
//	    err = enc.Write(buf)
//	    buf.Release()
//	    if err != nil {
//	        return err
//	    }
//	}
//
//	return enc.Close()
//
// # Writing To Stdout
//
//	pcm, _ := audtone.Render(src, 2*time.Second)
//	wav.WritePCM16(os.Stdout, src.Format(), pcm)
//
// Only audio.EncodingPCM16Interleaved is accepted; anything else returns
// ErrUnsupportedFormat.
package wav
