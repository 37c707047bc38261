// SPDX-License-Identifier: EPL-2.0

package audio

// Reader exposes a started BufferProducer as an io.Reader of raw PCM bytes.
// Each buffer is copied out and released at once, so a Reader never holds a
// pool buffer between calls.
type Reader struct {
	p       BufferProducer
	buf     []byte
	pending []byte
}

func NewReader(p BufferProducer) *Reader {
	return &Reader{p: p}
}

func (r *Reader) Read(dst []byte) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if len(r.pending) == 0 {
		b, err := r.p.Read(nil)
		if err != nil {
			return 0, err
		}

		r.buf = append(r.buf[:0], b.Bytes()...)
		r.pending = r.buf
		b.Release()
	}

	n := copy(dst, r.pending)
	r.pending = r.pending[n:]

	return n, nil
}
