// SPDX-License-Identifier: EPL-2.0

// Package output plays a running producer on the local sound device
// through github.com/ebitengine/oto/v3.
//
// oto allows a single context per process, so create one Oto and reuse it.
//
//	src, _ := audio.NewToneSource(44100, 2)
//	_ = src.Start()
//	defer src.Close()
//
//	out, err := output.NewOto(src.Format(), logger)
//	if err != nil {
//	    // No device, or the format is not PCM16
//	}
//
//	err = out.Play(ctx, src, 3*time.Second)
package output
