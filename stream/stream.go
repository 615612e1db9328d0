// Package stream abstracts the byte sequences carried as message bodies
// and upload contents. A stream is a single-owner, stateful resource:
// callers sharing one instance across goroutines must serialize access
// themselves.
package stream

import (
	"io"

	"github.com/pkg/errors"
)

var (
	ErrClosed      = errors.New("stream is closed")
	ErrNotReadable = errors.New("stream is not readable")
	ErrNotWritable = errors.New("stream is not writable")
	ErrNotSeekable = errors.New("stream is not seekable")
)

// Stream is a readable and/or writable byte sequence with an explicit
// capability report. Operations outside a stream's capabilities fail
// with the matching sentinel error on every call.
type Stream interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer

	// Tell returns the current offset.
	Tell() (int64, error)

	// EOF reports whether the stream has been read to its end.
	EOF() bool

	// Size returns the total size in bytes, with ok false when the
	// size is unknown.
	Size() (size int64, ok bool)

	Readable() bool
	Writable() bool
	Seekable() bool

	// Contents drains the remainder of the stream.
	Contents() ([]byte, error)
}

// Rewind seeks back to the start of s.
func Rewind(s Stream) error {
	if !s.Seekable() {
		return ErrNotSeekable
	}

	_, err := s.Seek(0, io.SeekStart)
	return errors.Wrap(err, "seeking to start")
}

// Full returns the entire content of s from the beginning, rewinding
// first when s supports it.
func Full(s Stream) ([]byte, error) {
	if s.Seekable() {
		if err := Rewind(s); err != nil {
			return nil, err
		}
	}

	return s.Contents()
}
