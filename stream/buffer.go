package stream

import (
	"io"

	"github.com/pkg/errors"
)

// Buffer is an in-memory stream. It is readable, writable and seekable.
type Buffer struct {
	data   []byte
	pos    int64
	closed bool
}

var _ Stream = (*Buffer)(nil)

// NewBuffer creates a Buffer positioned at the start. The initial
// content is copied, so the caller keeps ownership of data.
func NewBuffer(data []byte) *Buffer {
	clone := make([]byte, len(data))
	copy(clone, data)
	return &Buffer{data: clone}
}

func (b *Buffer) Read(p []byte) (int, error) {
	if b.closed {
		return 0, ErrClosed
	}
	if b.pos >= int64(len(b.data)) {
		return 0, io.EOF
	}

	n := copy(p, b.data[b.pos:])
	b.pos += int64(n)
	return n, nil
}

func (b *Buffer) Write(p []byte) (int, error) {
	if b.closed {
		return 0, ErrClosed
	}

	if grow := b.pos + int64(len(p)) - int64(len(b.data)); grow > 0 {
		b.data = append(b.data, make([]byte, grow)...)
	}

	n := copy(b.data[b.pos:], p)
	b.pos += int64(n)
	return n, nil
}

func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	if b.closed {
		return 0, ErrClosed
	}

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = b.pos + offset
	case io.SeekEnd:
		abs = int64(len(b.data)) + offset
	default:
		return 0, errors.Errorf("invalid whence: %d", whence)
	}

	if abs < 0 {
		return 0, errors.New("negative position")
	}

	b.pos = abs
	return abs, nil
}

func (b *Buffer) Tell() (int64, error) {
	if b.closed {
		return 0, ErrClosed
	}
	return b.pos, nil
}

func (b *Buffer) EOF() bool {
	return b.closed || b.pos >= int64(len(b.data))
}

func (b *Buffer) Size() (int64, bool) {
	if b.closed {
		return 0, false
	}
	return int64(len(b.data)), true
}

func (b *Buffer) Readable() bool { return !b.closed }
func (b *Buffer) Writable() bool { return !b.closed }
func (b *Buffer) Seekable() bool { return !b.closed }

func (b *Buffer) Contents() ([]byte, error) {
	if b.closed {
		return nil, ErrClosed
	}

	if b.pos >= int64(len(b.data)) {
		return []byte{}, nil
	}

	out := make([]byte, int64(len(b.data))-b.pos)
	copy(out, b.data[b.pos:])
	b.pos = int64(len(b.data))
	return out, nil
}

// Close releases the backing storage. Further operations fail with
// [ErrClosed].
func (b *Buffer) Close() error {
	b.closed = true
	b.data = nil
	return nil
}
