package message

import (
	"time"

	"httpmsg/stream"

	"github.com/pkg/errors"
)

// Message is the base of requests and responses: protocol version,
// headers and body. The zero value is a bodiless HTTP/1.1 message with
// no headers.
type Message struct {
	version *Version
	headers Headers
	body    stream.Stream
}

// ProtoVersion returns the protocol version, e.g. "1.1".
func (m Message) ProtoVersion() string {
	if m.version == nil {
		return Version11.String()
	}
	return m.version.String()
}

// WithProtoVersion returns a copy using the given version ("1.1").
func (m Message) WithProtoVersion(version string) (Message, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return Message{}, errors.Wrap(err, "protocol version is not valid")
	}

	m.version = &v
	return m, nil
}

func (m Message) Headers() Headers { return m.headers }

func (m Message) HasHeader(name string) bool { return m.headers.Has(name) }

// Header returns the values of the named header, or nil when absent.
func (m Message) Header(name string) []string { return m.headers.Get(name) }

// HeaderLine returns the named header's values joined with ", ".
func (m Message) HeaderLine(name string) string { return m.headers.Line(name) }

// WithHeader returns a copy where the named header holds exactly
// values, replacing any prior casing variant of the name.
func (m Message) WithHeader(name string, values ...string) (Message, error) {
	h, err := m.headers.With(name, values...)
	if err != nil {
		return Message{}, err
	}

	m.headers = h
	return m, nil
}

// WithHeaderLine is [Message.WithHeader] taking a comma-separated line.
func (m Message) WithHeaderLine(name, line string) (Message, error) {
	h, err := m.headers.WithLine(name, line)
	if err != nil {
		return Message{}, err
	}

	m.headers = h
	return m, nil
}

// WithAddedHeader returns a copy with values appended to the named
// header without clearing existing ones.
func (m Message) WithAddedHeader(name string, values ...string) (Message, error) {
	h, err := m.headers.WithAdded(name, values...)
	if err != nil {
		return Message{}, err
	}

	m.headers = h
	return m, nil
}

// WithAddedHeaderLine is [Message.WithAddedHeader] taking a
// comma-separated line.
func (m Message) WithAddedHeaderLine(name, line string) (Message, error) {
	h, err := m.headers.WithAddedLine(name, line)
	if err != nil {
		return Message{}, err
	}

	m.headers = h
	return m, nil
}

// WithoutHeader returns a copy with the named header removed, under
// any casing.
func (m Message) WithoutHeader(name string) Message {
	m.headers = m.headers.Without(name)
	return m
}

// Body returns the message body. A message without one yields a fresh
// empty stream.
func (m Message) Body() stream.Stream {
	if m.body == nil {
		return stream.NewBuffer(nil)
	}
	return m.body
}

// WithBody returns a copy carrying body. The stream itself is a
// single-owner resource and is shared, not copied.
func (m Message) WithBody(body stream.Stream) Message {
	m.body = body
	return m
}

// Date returns the parsed Date header. A missing header yields the
// zero time and no error.
func (m Message) Date() (time.Time, error) {
	values := m.headers.Get("Date")
	if len(values) == 0 {
		return time.Time{}, nil
	}

	return ParseDate(values[0])
}

// WithDate returns a copy whose Date header holds t as IMF-fixdate.
func (m Message) WithDate(t time.Time) Message {
	// FormatDate output is always valid field content.
	m2, _ := m.WithHeader("Date", FormatDate(t))
	return m2
}
