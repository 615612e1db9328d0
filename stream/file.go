package stream

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// File is a stream backed by an open file. It is always seekable;
// readability and writability follow how it was opened.
type File struct {
	f        *os.File
	readable bool
	writable bool

	eof    bool
	closed bool
}

var _ Stream = (*File)(nil)

// Open opens the file at path as a read-only stream.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}

	return &File{f: f, readable: true}, nil
}

// Create creates (or truncates) the file at path as a read-write stream.
func Create(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "creating file")
	}

	return &File{f: f, readable: true, writable: true}, nil
}

// FromFile wraps an already-open file. The stream takes ownership:
// closing the stream closes f.
func FromFile(f *os.File, readable, writable bool) *File {
	return &File{f: f, readable: readable, writable: writable}
}

// Name returns the path the file was opened with.
func (fs *File) Name() string { return fs.f.Name() }

func (fs *File) Read(p []byte) (int, error) {
	if fs.closed {
		return 0, ErrClosed
	}
	if !fs.readable {
		return 0, ErrNotReadable
	}

	n, err := fs.f.Read(p)
	if err == io.EOF {
		fs.eof = true
	}
	return n, err
}

func (fs *File) Write(p []byte) (int, error) {
	if fs.closed {
		return 0, ErrClosed
	}
	if !fs.writable {
		return 0, ErrNotWritable
	}

	return fs.f.Write(p)
}

func (fs *File) Seek(offset int64, whence int) (int64, error) {
	if fs.closed {
		return 0, ErrClosed
	}

	pos, err := fs.f.Seek(offset, whence)
	if err == nil {
		fs.eof = false
	}
	return pos, err
}

func (fs *File) Tell() (int64, error) {
	if fs.closed {
		return 0, ErrClosed
	}
	return fs.f.Seek(0, io.SeekCurrent)
}

func (fs *File) EOF() bool { return fs.eof }

func (fs *File) Size() (int64, bool) {
	if fs.closed {
		return 0, false
	}

	info, err := fs.f.Stat()
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}

func (fs *File) Readable() bool { return fs.readable && !fs.closed }
func (fs *File) Writable() bool { return fs.writable && !fs.closed }
func (fs *File) Seekable() bool { return !fs.closed }

func (fs *File) Contents() ([]byte, error) {
	if fs.closed {
		return nil, ErrClosed
	}
	if !fs.readable {
		return nil, ErrNotReadable
	}

	out, err := io.ReadAll(fs.f)
	if err != nil {
		return nil, errors.Wrap(err, "draining file")
	}

	fs.eof = true
	return out, nil
}

func (fs *File) Close() error {
	if fs.closed {
		return nil
	}

	fs.closed = true
	return fs.f.Close()
}
