// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrUnsupportedFormat = errors.New("only 16-bit PCM is supported")
	ErrFormatMismatch    = errors.New("buffer format does not match encoder")
	ErrEncoderClosed     = errors.New("encoder is closed")
	ErrPartialFrame      = errors.New("PCM data is not a whole number of frames")
)
