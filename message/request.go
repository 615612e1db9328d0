package message

import (
	"strconv"
	"time"

	"httpmsg/rule"
	"httpmsg/stream"
	"httpmsg/uri"

	"github.com/pkg/errors"
)

// Request is an immutable outgoing-request value: a [Message] plus
// method, target URI and an optional explicit request-target.
type Request struct {
	msg Message

	method Method
	uri    *uri.URI

	// When set, target overrides the origin-form derived from uri.
	target string
}

// NewRequest creates a Request for the given method and URI. The Host
// header is seeded from the URI when it carries a host.
func NewRequest(method Method, u uri.URI) (Request, error) {
	r := Request{method: method, uri: &u}
	if !method.IsValid() {
		return Request{}, errors.Errorf("method is not valid: %q", method)
	}

	return r.adoptURIHost(u, false)
}

func (r Request) Method() Method { return r.method }

// WithMethod returns a copy using the given method.
func (r Request) WithMethod(method Method) (Request, error) {
	if !method.IsValid() {
		return Request{}, errors.Errorf("method is not valid: %q", method)
	}

	r.method = method
	return r, nil
}

// URI returns the target URI. ok is false when the request was built
// without one.
func (r Request) URI() (u uri.URI, ok bool) {
	if r.uri == nil {
		return uri.URI{}, false
	}
	return *r.uri, true
}

// WithURI returns a copy targeting u.
//
// By default the Host header always adopts u's host (with its
// non-default port) when u has one, and stays untouched otherwise.
// With preserveHost, an existing non-empty Host header is never
// touched; u's host is adopted only when Host is absent or empty.
// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-3.2.2
func (r Request) WithURI(u uri.URI, preserveHost bool) (Request, error) {
	r.uri = &u
	return r.adoptURIHost(u, preserveHost)
}

func (r Request) adoptURIHost(u uri.URI, preserveHost bool) (Request, error) {
	host := u.Host()
	if host == "" {
		return r, nil
	}

	if preserveHost && r.msg.HeaderLine("Host") != "" {
		return r, nil
	}

	if port, ok := u.Port(); ok {
		host += ":" + strconv.FormatUint(uint64(port), 10)
	}

	msg, err := r.msg.WithHeader("Host", host)
	if err != nil {
		return Request{}, errors.Wrap(err, "setting Host header")
	}

	r.msg = msg
	return r, nil
}

// Target returns the request-target: an explicitly set target
// verbatim, otherwise the origin-form ("path?query") of the URI,
// otherwise "/".
// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-3.2
func (r Request) Target() string {
	if r.target != "" {
		return r.target
	}

	if r.uri == nil {
		return "/"
	}

	target := r.uri.Path()
	if target == "" {
		target = "/"
	}
	if r.uri.HasQuery() {
		target += "?" + r.uri.RawQuery()
	}

	return target
}

// WithTarget returns a copy using target verbatim, e.g. absolute-form,
// authority-form or asterisk-form. It overrides the URI-derived target
// until [Request.WithoutTarget].
func (r Request) WithTarget(target string) (Request, error) {
	if target == "" {
		return Request{}, errors.New("request target is empty")
	}
	for i := 0; i < len(target); i++ {
		c := target[i]
		if c == rule.SP || c < ' ' || c == 0x7f {
			return Request{}, errors.New("request target contains space or CTL byte")
		}
	}

	r.target = target
	return r, nil
}

// WithoutTarget returns a copy deriving its target from the URI again.
func (r Request) WithoutTarget() Request {
	r.target = ""
	return r
}

// Message accessors. Each derives a new Request; see [Message].

func (r Request) ProtoVersion() string { return r.msg.ProtoVersion() }

func (r Request) WithProtoVersion(version string) (Request, error) {
	msg, err := r.msg.WithProtoVersion(version)
	if err != nil {
		return Request{}, err
	}
	r.msg = msg
	return r, nil
}

func (r Request) Headers() Headers              { return r.msg.Headers() }
func (r Request) HasHeader(name string) bool    { return r.msg.HasHeader(name) }
func (r Request) Header(name string) []string   { return r.msg.Header(name) }
func (r Request) HeaderLine(name string) string { return r.msg.HeaderLine(name) }

func (r Request) WithHeader(name string, values ...string) (Request, error) {
	msg, err := r.msg.WithHeader(name, values...)
	if err != nil {
		return Request{}, err
	}
	r.msg = msg
	return r, nil
}

func (r Request) WithHeaderLine(name, line string) (Request, error) {
	msg, err := r.msg.WithHeaderLine(name, line)
	if err != nil {
		return Request{}, err
	}
	r.msg = msg
	return r, nil
}

func (r Request) WithAddedHeader(name string, values ...string) (Request, error) {
	msg, err := r.msg.WithAddedHeader(name, values...)
	if err != nil {
		return Request{}, err
	}
	r.msg = msg
	return r, nil
}

func (r Request) WithAddedHeaderLine(name, line string) (Request, error) {
	msg, err := r.msg.WithAddedHeaderLine(name, line)
	if err != nil {
		return Request{}, err
	}
	r.msg = msg
	return r, nil
}

func (r Request) WithoutHeader(name string) Request {
	r.msg = r.msg.WithoutHeader(name)
	return r
}

func (r Request) Body() stream.Stream { return r.msg.Body() }

func (r Request) WithBody(body stream.Stream) Request {
	r.msg = r.msg.WithBody(body)
	return r
}

func (r Request) Date() (time.Time, error) { return r.msg.Date() }

func (r Request) WithDate(t time.Time) Request {
	r.msg = r.msg.WithDate(t)
	return r
}
