package message

import (
	"io"
	"os"

	"httpmsg/stream"

	"github.com/pkg/errors"
)

// UploadError reports the outcome of receiving a file upload. The
// numbering follows the historical CGI upload error codes; value 5 has
// never been assigned.
type UploadError uint

const (
	UploadErrOK         UploadError = 0
	UploadErrIniSize    UploadError = 1
	UploadErrFormSize   UploadError = 2
	UploadErrIncomplete UploadError = 3
	UploadErrNoFile     UploadError = 4

	UploadErrNoTmpDir    UploadError = 6
	UploadErrNotWritable UploadError = 7
	UploadErrExtension   UploadError = 8
)

func (e UploadError) String() string {
	switch e {
	case UploadErrOK:
		return "ok"
	case UploadErrIniSize:
		return "exceeds maximum allowed size"
	case UploadErrFormSize:
		return "exceeds form-declared size"
	case UploadErrIncomplete:
		return "only partially received"
	case UploadErrNoFile:
		return "no file was received"
	case UploadErrNoTmpDir:
		return "temporary directory is missing"
	case UploadErrNotWritable:
		return "temporary directory is not writable"
	case UploadErrExtension:
		return "canceled by extension"
	}
	return "unknown upload error"
}

// ErrFileConsumed is returned once an uploaded file has been moved to
// its final destination: both further moves and stream access fail
// with it, on every call.
var ErrFileConsumed = errors.New("uploaded file has already been moved")

// UploadedFile describes a single received file upload. Unlike the
// message values it is a stateful single-use resource: it starts
// pending and, once moved, its content is gone for good. It is
// single-owner; concurrent use must be serialized by the caller.
type UploadedFile struct {
	stream    stream.Stream
	size      *int64
	uploadErr UploadError

	filename  string
	mediaType string

	moved bool
}

// NewUploadedFile wraps the received content s. size is the byte count
// when known, negative otherwise. filename and mediaType are the
// client-reported values and must be treated as untrusted.
func NewUploadedFile(s stream.Stream, size int64, uploadErr UploadError, filename, mediaType string) *UploadedFile {
	f := &UploadedFile{
		stream:    s,
		uploadErr: uploadErr,
		filename:  filename,
		mediaType: mediaType,
	}
	if size >= 0 {
		f.size = &size
	}
	return f
}

// Size returns the byte count of the upload, with ok false when it is
// unknown.
func (f *UploadedFile) Size() (size int64, ok bool) {
	if f.size == nil {
		return 0, false
	}
	return *f.size, true
}

// Error returns the upload outcome. Content is only accessible when it
// is [UploadErrOK].
func (f *UploadedFile) Error() UploadError { return f.uploadErr }

// ClientFilename returns the filename sent by the client, or "".
func (f *UploadedFile) ClientFilename() string { return f.filename }

// ClientMediaType returns the media type sent by the client, or "".
func (f *UploadedFile) ClientMediaType() string { return f.mediaType }

// Stream returns the upload's content. It fails with [ErrFileConsumed]
// once the file was moved, and with an error when the upload itself
// failed.
func (f *UploadedFile) Stream() (stream.Stream, error) {
	if f.moved {
		return nil, ErrFileConsumed
	}
	if f.uploadErr != UploadErrOK {
		return nil, errors.Errorf("upload failed: %s", f.uploadErr)
	}
	if f.stream == nil {
		return nil, errors.New("uploaded file has no stream")
	}

	return f.stream, nil
}

// MoveTo moves the upload's content to path and releases the original
// storage. It may be called once: any later call, like any later
// [UploadedFile.Stream], fails with [ErrFileConsumed]. An I/O failure
// during the move leaves the file pending and is returned as a wrapped
// transfer error.
func (f *UploadedFile) MoveTo(path string) error {
	if path == "" {
		return errors.New("target path is empty")
	}
	if f.moved {
		return ErrFileConsumed
	}
	if f.uploadErr != UploadErrOK {
		return errors.Errorf("upload failed: %s", f.uploadErr)
	}
	if f.stream == nil {
		return errors.New("uploaded file has no stream")
	}

	if fileStream, ok := f.stream.(*stream.File); ok {
		return f.rename(fileStream, path)
	}

	if err := f.copyTo(path); err != nil {
		return err
	}

	f.stream = nil
	f.moved = true
	return nil
}

// rename moves a file-backed upload without copying its bytes. The
// source stays open until the rename went through, so a failed move
// leaves the upload pending and its content intact.
func (f *UploadedFile) rename(src *stream.File, path string) error {
	if err := os.Rename(src.Name(), path); err != nil {
		return errors.Wrap(err, "moving file")
	}

	f.stream = nil
	f.moved = true

	return errors.Wrap(src.Close(), "releasing source")
}

func (f *UploadedFile) copyTo(path string) error {
	target, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrap(err, "creating target file")
	}

	src := f.stream
	if src.Seekable() {
		if err := stream.Rewind(src); err != nil {
			target.Close()
			return errors.Wrap(err, "rewinding source")
		}
	}

	if _, err := io.Copy(target, src); err != nil {
		target.Close()
		return errors.Wrap(err, "writing target file")
	}

	if err := target.Close(); err != nil {
		return errors.Wrap(err, "closing target file")
	}

	return errors.Wrap(src.Close(), "releasing source")
}
