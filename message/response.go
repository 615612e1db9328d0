package message

import (
	"time"

	"httpmsg/message/status"
	"httpmsg/stream"

	"github.com/pkg/errors"
)

// Response is an immutable response value: a [Message] plus status
// code and reason phrase.
type Response struct {
	msg Message

	status status.Status
}

// NewResponse creates a Response with the given status code and the
// standard reason phrase when one is known.
func NewResponse(code uint) (Response, error) {
	return Response{}.WithStatus(code, "")
}

func (r Response) StatusCode() uint { return r.status.Code }

// ReasonPhrase returns the reason phrase, possibly "".
func (r Response) ReasonPhrase() string { return r.status.ReasonPhrase }

// Status returns code and phrase together.
func (r Response) Status() status.Status { return r.status }

// WithStatus returns a copy using the given status code. An empty
// reason adopts the standard phrase for well-known codes and stays ""
// for the rest. The code must be a 3-digit integer.
func (r Response) WithStatus(code uint, reason string) (Response, error) {
	if code < 100 || code > 599 {
		return Response{}, errors.Errorf("status code out of range: %d", code)
	}

	if reason == "" {
		s, _ := status.FromCode(code)
		r.status = s
		return r, nil
	}

	r.status = status.Status{Code: code, ReasonPhrase: reason}
	return r, nil
}

// Message accessors. Each derives a new Response; see [Message].

func (r Response) ProtoVersion() string { return r.msg.ProtoVersion() }

func (r Response) WithProtoVersion(version string) (Response, error) {
	msg, err := r.msg.WithProtoVersion(version)
	if err != nil {
		return Response{}, err
	}
	r.msg = msg
	return r, nil
}

func (r Response) Headers() Headers              { return r.msg.Headers() }
func (r Response) HasHeader(name string) bool    { return r.msg.HasHeader(name) }
func (r Response) Header(name string) []string   { return r.msg.Header(name) }
func (r Response) HeaderLine(name string) string { return r.msg.HeaderLine(name) }

func (r Response) WithHeader(name string, values ...string) (Response, error) {
	msg, err := r.msg.WithHeader(name, values...)
	if err != nil {
		return Response{}, err
	}
	r.msg = msg
	return r, nil
}

func (r Response) WithHeaderLine(name, line string) (Response, error) {
	msg, err := r.msg.WithHeaderLine(name, line)
	if err != nil {
		return Response{}, err
	}
	r.msg = msg
	return r, nil
}

func (r Response) WithAddedHeader(name string, values ...string) (Response, error) {
	msg, err := r.msg.WithAddedHeader(name, values...)
	if err != nil {
		return Response{}, err
	}
	r.msg = msg
	return r, nil
}

func (r Response) WithAddedHeaderLine(name, line string) (Response, error) {
	msg, err := r.msg.WithAddedHeaderLine(name, line)
	if err != nil {
		return Response{}, err
	}
	r.msg = msg
	return r, nil
}

func (r Response) WithoutHeader(name string) Response {
	r.msg = r.msg.WithoutHeader(name)
	return r
}

func (r Response) Body() stream.Stream { return r.msg.Body() }

func (r Response) WithBody(body stream.Stream) Response {
	r.msg = r.msg.WithBody(body)
	return r
}

func (r Response) Date() (time.Time, error) { return r.msg.Date() }

func (r Response) WithDate(t time.Time) Response {
	r.msg = r.msg.WithDate(t)
	return r
}
