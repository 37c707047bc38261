// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrUnsupportedFormat indicates the stream is not 16-bit PCM
	ErrUnsupportedFormat = errors.New("only 16-bit PCM AIFF is supported")

	// ErrFormatMismatch indicates a buffer from a differently configured producer
	ErrFormatMismatch = errors.New("buffer format does not match encoder")

	// ErrEncoderClosed indicates a write after Close
	ErrEncoderClosed = errors.New("encoder is closed")
)
