// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrInvalidArgument is returned for bad construction or option values.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState is returned when an operation is not legal in the
	// current lifecycle state.
	ErrInvalidState = errors.New("invalid state")

	// ErrResourceExhausted is returned when a pool cannot be allocated or has
	// no free buffer left.
	ErrResourceExhausted = errors.New("resource exhausted")

	ErrUnknownSource = errors.New("unknown source kind")
)
