package message

import (
	"time"

	"httpmsg/stream"
	"httpmsg/uri"

	"github.com/pkg/errors"
)

// ServerRequest is an immutable incoming-request value: a [Request]
// plus the data a server captured around it. Server parameters are an
// environment snapshot taken at construction; cookies, query
// parameters, uploaded files and the parsed body are independently
// settable and may legitimately fall out of sync with the URI or
// headers they were originally derived from.
type ServerRequest struct {
	req Request

	serverParams map[string]string
	cookies      map[string]string
	queryParams  uri.Values
	uploads      map[string]*UploadedFile
	parsedBody   map[string]string
}

// NewServerRequest creates a ServerRequest for the given method and
// URI. serverParams is snapshotted as-is; query parameters are seeded
// by decoding the URI's query.
func NewServerRequest(method Method, u uri.URI, serverParams map[string]string) (ServerRequest, error) {
	req, err := NewRequest(method, u)
	if err != nil {
		return ServerRequest{}, err
	}

	return ServerRequest{
		req:          req,
		serverParams: cloneStringMap(serverParams),
		queryParams:  u.Query(),
	}, nil
}

// ServerParams returns the environment snapshot taken at construction.
// The returned mapping is a copy.
func (r ServerRequest) ServerParams() map[string]string {
	return cloneStringMap(r.serverParams)
}

// WithServerParams returns a copy whose snapshot is replaced wholesale.
// Server parameters are never synthesized from other fields; this
// exists only for re-binding a request to another captured environment.
func (r ServerRequest) WithServerParams(params map[string]string) ServerRequest {
	r.serverParams = cloneStringMap(params)
	return r
}

// CookieParams returns the cookies sent by the client. The returned
// mapping is a copy.
func (r ServerRequest) CookieParams() map[string]string {
	return cloneStringMap(r.cookies)
}

// WithCookieParams returns a copy using the given cookies. The Cookie
// header and server parameters are not touched.
func (r ServerRequest) WithCookieParams(cookies map[string]string) ServerRequest {
	r.cookies = cloneStringMap(cookies)
	return r
}

// QueryParams returns the decoded query parameters. The returned
// mapping is a copy. They may diverge from the URI's query; callers
// needing the original values should decode [Request.URI]'s query.
func (r ServerRequest) QueryParams() uri.Values {
	if r.queryParams == nil {
		return uri.Values{}
	}
	return r.queryParams.Clone()
}

// WithQueryParams returns a copy using the given query parameters.
// The URI's query component and the server parameters are not touched.
func (r ServerRequest) WithQueryParams(params uri.Values) ServerRequest {
	r.queryParams = params.Clone()
	return r
}

// UploadedFiles returns the uploads keyed by field name. The mapping
// is a copy; the files themselves are shared single-use resources.
func (r ServerRequest) UploadedFiles() map[string]*UploadedFile {
	clone := make(map[string]*UploadedFile, len(r.uploads))
	for k, v := range r.uploads {
		clone[k] = v
	}
	return clone
}

// WithUploadedFiles returns a copy using the given uploads.
func (r ServerRequest) WithUploadedFiles(uploads map[string]*UploadedFile) (ServerRequest, error) {
	clone := make(map[string]*UploadedFile, len(uploads))
	for k, v := range uploads {
		if v == nil {
			return ServerRequest{}, errors.Errorf("uploaded file %q is nil", k)
		}
		clone[k] = v
	}

	r.uploads = clone
	return r, nil
}

// ParsedBody returns the key-value pairs deserialized from a
// form-encoded POST body, or an empty mapping for any other content
// type. The returned mapping is a copy.
func (r ServerRequest) ParsedBody() map[string]string {
	return cloneStringMap(r.parsedBody)
}

// WithParsedBody returns a copy using the given body parameters.
// Deserializing the body is the caller's concern; this only stores the
// outcome.
func (r ServerRequest) WithParsedBody(data map[string]string) ServerRequest {
	r.parsedBody = cloneStringMap(data)
	return r
}

func cloneStringMap(m map[string]string) map[string]string {
	clone := make(map[string]string, len(m))
	for k, v := range m {
		clone[k] = v
	}
	return clone
}

// Request accessors. Each derives a new ServerRequest; see [Request].

func (r ServerRequest) Method() Method { return r.req.Method() }

func (r ServerRequest) WithMethod(method Method) (ServerRequest, error) {
	req, err := r.req.WithMethod(method)
	if err != nil {
		return ServerRequest{}, err
	}
	r.req = req
	return r, nil
}

func (r ServerRequest) URI() (uri.URI, bool) { return r.req.URI() }

// WithURI returns a copy targeting u. The query parameters are NOT
// re-derived from u; see [ServerRequest.WithQueryParams].
func (r ServerRequest) WithURI(u uri.URI, preserveHost bool) (ServerRequest, error) {
	req, err := r.req.WithURI(u, preserveHost)
	if err != nil {
		return ServerRequest{}, err
	}
	r.req = req
	return r, nil
}

func (r ServerRequest) Target() string { return r.req.Target() }

func (r ServerRequest) WithTarget(target string) (ServerRequest, error) {
	req, err := r.req.WithTarget(target)
	if err != nil {
		return ServerRequest{}, err
	}
	r.req = req
	return r, nil
}

func (r ServerRequest) WithoutTarget() ServerRequest {
	r.req = r.req.WithoutTarget()
	return r
}

func (r ServerRequest) ProtoVersion() string { return r.req.ProtoVersion() }

func (r ServerRequest) WithProtoVersion(version string) (ServerRequest, error) {
	req, err := r.req.WithProtoVersion(version)
	if err != nil {
		return ServerRequest{}, err
	}
	r.req = req
	return r, nil
}

func (r ServerRequest) Headers() Headers              { return r.req.Headers() }
func (r ServerRequest) HasHeader(name string) bool    { return r.req.HasHeader(name) }
func (r ServerRequest) Header(name string) []string   { return r.req.Header(name) }
func (r ServerRequest) HeaderLine(name string) string { return r.req.HeaderLine(name) }

func (r ServerRequest) WithHeader(name string, values ...string) (ServerRequest, error) {
	req, err := r.req.WithHeader(name, values...)
	if err != nil {
		return ServerRequest{}, err
	}
	r.req = req
	return r, nil
}

func (r ServerRequest) WithHeaderLine(name, line string) (ServerRequest, error) {
	req, err := r.req.WithHeaderLine(name, line)
	if err != nil {
		return ServerRequest{}, err
	}
	r.req = req
	return r, nil
}

func (r ServerRequest) WithAddedHeader(name string, values ...string) (ServerRequest, error) {
	req, err := r.req.WithAddedHeader(name, values...)
	if err != nil {
		return ServerRequest{}, err
	}
	r.req = req
	return r, nil
}

func (r ServerRequest) WithAddedHeaderLine(name, line string) (ServerRequest, error) {
	req, err := r.req.WithAddedHeaderLine(name, line)
	if err != nil {
		return ServerRequest{}, err
	}
	r.req = req
	return r, nil
}

func (r ServerRequest) WithoutHeader(name string) ServerRequest {
	r.req = r.req.WithoutHeader(name)
	return r
}

func (r ServerRequest) Body() stream.Stream { return r.req.Body() }

func (r ServerRequest) WithBody(body stream.Stream) ServerRequest {
	r.req = r.req.WithBody(body)
	return r
}

func (r ServerRequest) Date() (time.Time, error) { return r.req.Date() }

func (r ServerRequest) WithDate(t time.Time) ServerRequest {
	r.req = r.req.WithDate(t)
	return r
}
