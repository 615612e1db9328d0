package stream

import (
	"io"

	"github.com/pkg/errors"
)

// Reader adapts a plain [io.Reader] into a read-only, non-seekable
// stream. Typical use is wrapping a network body whose bytes can only
// be consumed once.
type Reader struct {
	r   io.Reader
	pos int64

	// When size is set, reads are capped at it and it is reported by
	// [Reader.Size]. Mirrors a body bounded by Content-Length.
	size *int64

	eof    bool
	closed bool
}

var _ Stream = (*Reader)(nil)

// NewReader wraps r as a stream of unknown size.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// NewReaderSize wraps r as a stream of exactly size bytes. Reading
// stops with [io.EOF] once size bytes were consumed even if r has more.
func NewReaderSize(r io.Reader, size int64) *Reader {
	return &Reader{r: r, size: &size}
}

func (r *Reader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, ErrClosed
	}

	if r.size != nil {
		remaining := *r.size - r.pos
		if remaining <= 0 {
			r.eof = true
			return 0, io.EOF
		}
		if int64(len(p)) > remaining {
			p = p[:remaining]
		}
	}

	n, err := r.r.Read(p)
	r.pos += int64(n)
	if err == io.EOF {
		r.eof = true
	}
	return n, err
}

func (r *Reader) Write([]byte) (int, error) {
	if r.closed {
		return 0, ErrClosed
	}
	return 0, ErrNotWritable
}

func (r *Reader) Seek(int64, int) (int64, error) {
	if r.closed {
		return 0, ErrClosed
	}
	return 0, ErrNotSeekable
}

// Tell returns the number of bytes consumed so far.
func (r *Reader) Tell() (int64, error) {
	if r.closed {
		return 0, ErrClosed
	}
	return r.pos, nil
}

func (r *Reader) EOF() bool { return r.eof }

func (r *Reader) Size() (int64, bool) {
	if r.closed || r.size == nil {
		return 0, false
	}
	return *r.size, true
}

func (r *Reader) Readable() bool { return !r.closed }
func (r *Reader) Writable() bool { return false }
func (r *Reader) Seekable() bool { return false }

func (r *Reader) Contents() ([]byte, error) {
	if r.closed {
		return nil, ErrClosed
	}

	src := r.r
	if r.size != nil {
		remaining := *r.size - r.pos
		if remaining < 0 {
			remaining = 0
		}
		src = io.LimitReader(src, remaining)
	}

	out, err := io.ReadAll(src)
	r.pos += int64(len(out))
	if err != nil {
		return nil, errors.Wrap(err, "draining reader")
	}

	r.eof = true
	return out, nil
}

// Close closes the underlying reader when it is an [io.Closer].
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	if c, ok := r.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
