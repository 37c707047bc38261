// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// MaxInt16Sample is the largest magnitude emitted by the quantizers. The
// negative side is clamped to -MaxInt16Sample as well so the range is
// symmetric.
const MaxInt16Sample = 32767

// Float64ToInt16 quantizes x, a sample in full-scale units ([-1, 1]), to
// 16-bit PCM. The value is rounded to nearest and saturates at ±32767.
// NaN maps to silence.
func Float64ToInt16(x float64) int16 {
	if math.IsNaN(x) {
		return 0
	}

	v := math.Round(x * MaxInt16Sample)
	if v > MaxInt16Sample {
		return MaxInt16Sample
	} else if v < -MaxInt16Sample {
		return -MaxInt16Sample
	}

	return int16(v)
}

// Int16ToFloat64 is the inverse scale of Float64ToInt16.
func Int16ToFloat64(s int16) float64 {
	return float64(s) / MaxInt16Sample
}
