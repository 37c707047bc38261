// SPDX-License-Identifier: EPL-2.0

// Package audio provides the synthetic tone source and the building blocks
// around it.
//
// This package contains:
//   - Capability interfaces shared by every producer
//   - ToneSource, a sine tone generator with a pull-based lifecycle
//   - BufferPool and Buffer for allocation-free buffer handoff
//   - PhaseGenerator, the stateful synthesizer behind ToneSource
//   - Handle for shared ownership of a source
//   - Registry for looking up producers by kind
//
// # Producer Contract
//
// A producer is anything implementing MediaSource:
//
//	type MediaSource interface {
//	    Start() error
//	    Stop() error
//	    Format() Format
//	    Read(opts *ReadOptions) (*Buffer, error)
//	    Close() error
//	}
//
// The smaller interfaces (Startable, Stoppable, FormatProvider,
// BufferProducer) let consumers ask only for what they use.
//
// # Tone Source
//
// A ToneSource is constructed stopped, allocates its pool on Start and
// produces one buffer per Read:
//
//	src, err := audio.NewToneSource(44100, 2)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	if err := src.Start(); err != nil {
//	    return err
//	}
//
//	buf, err := src.Read(nil)
//	if err != nil {
//	    return err
//	}
//	consume(buf.Bytes())
//	buf.Release()
//
// The tone is 500 Hz at half of full scale unless overridden with
// WithFrequency and WithAmplitude. Consecutive reads are phase continuous;
// a read with SeekTo jumps to a position that depends only on the target
// time.
//
// # Buffers
//
// Buffers hold interleaved signed 16-bit little-endian PCM. Each one carries
// a Timestamp in frames. Every buffer must be released; a source with all
// buffers outstanding fails Read with ErrResourceExhausted rather than
// allocating more. Stop reclaims everything, including buffers consumers
// still hold.
//
// # Error Handling
//
// Errors wrap one of the sentinels so callers can use errors.Is:
//
//	ErrInvalidArgument    bad construction parameters or options
//	ErrInvalidState       operation not legal in the current state
//	ErrResourceExhausted  pool could not be allocated or is empty
//
// # Concurrency
//
// Read expects a single consumer. Start, Stop and Read are serialized, so a
// control goroutine may stop a source while a data goroutine reads from it.
// Buffers may be released from any goroutine.
package audio
