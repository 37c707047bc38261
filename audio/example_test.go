// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ik5/audtone/audio"
)

// Example_toneSource shows the basic lifecycle: construct, start, pull
// buffers, release them, stop.
func Example_toneSource() {
	src, err := audio.NewToneSource(44100, 1)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer src.Close()

	fmt.Println("Format:", src.Format())

	if err := src.Start(); err != nil {
		fmt.Println("error:", err)
		return
	}

	for range 3 {
		buf, err := src.Read(nil)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Printf("%d frames at t=%d (%v)\n", buf.Frames(), buf.Timestamp, buf.PTS().Round(time.Millisecond))
		buf.Release()
	}

	if err := src.Stop(); err != nil {
		fmt.Println("error:", err)
	}
	// Output:
	// Format: 44100 Hz, 1 ch, pcm_s16le_interleaved
	// 4096 frames at t=0 (0s)
	// 4096 frames at t=4096 (93ms)
	// 4096 frames at t=8192 (186ms)
}

// Example_seek repositions the tone. The buffer is identical no matter what
// was read before.
func Example_seek() {
	src, _ := audio.NewToneSource(8000, 2)
	_ = src.Start()
	defer src.Close()

	buf, err := src.Read(audio.SeekTo(2 * time.Second))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer buf.Release()

	fmt.Println("timestamp:", buf.Timestamp)
	fmt.Println("first frame:", buf.Int16s(nil)[:2])
	// Output:
	// timestamp: 16000
	// first frame: [0 0]
}

// Example_lifecycleErrors shows the error taxonomy.
func Example_lifecycleErrors() {
	_, err := audio.NewToneSource(8000, 3)
	fmt.Println(errors.Is(err, audio.ErrInvalidArgument))

	src, _ := audio.NewToneSource(8000, 1)
	_, err = src.Read(nil)
	fmt.Println(errors.Is(err, audio.ErrInvalidState))

	_ = src.Start()
	err = src.Start()
	fmt.Println(errors.Is(err, audio.ErrInvalidState))

	fmt.Println(src.Stop(), src.Stop())
	// Output:
	// true
	// true
	// true
	// <nil> <nil>
}

// Example_poolExhaustion shows that a source never hands out more buffers
// than its pool holds.
func Example_poolExhaustion() {
	src, _ := audio.NewToneSource(8000, 1, audio.WithPoolSize(1))
	_ = src.Start()
	defer src.Close()

	held, _ := src.Read(nil)

	_, err := src.Read(nil)
	fmt.Println(errors.Is(err, audio.ErrResourceExhausted))

	held.Release()
	buf, err := src.Read(nil)
	fmt.Println(err, buf.Timestamp)
	buf.Release()
	// Output:
	// true
	// <nil> 4096
}

// Example_reader streams raw PCM through io.Reader.
func Example_reader() {
	src, _ := audio.NewToneSource(48000, 2)
	_ = src.Start()
	defer src.Close()

	// 10ms of stereo PCM16.
	pcm := make([]byte, 480*4)
	n, err := io.ReadFull(audio.NewReader(src), pcm)

	fmt.Println(n, err)
	// Output:
	// 1920 <nil>
}

// Example_handle shares one source between two owners.
func Example_handle() {
	src, _ := audio.NewToneSource(16000, 1)
	_ = src.Start()

	h := audio.NewHandle(src)
	_ = h.Retain()

	_ = h.Release()
	fmt.Println("started:", src.Started())

	_ = h.Release()
	fmt.Println("started:", src.Started())
	// Output:
	// started: true
	// started: false
}
