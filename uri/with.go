package uri

import (
	"strings"

	"httpmsg/lib/types/pointer"

	"github.com/pkg/errors"
)

// The With- methods derive a new URI, validating their input and
// leaving the receiver untouched. Shared optional fields are never
// mutated in place, so copies are safe to hand out.

// WithScheme returns a copy with the given scheme, lowercased. An empty
// scheme turns the URI into a relative reference.
func (u URI) WithScheme(scheme string) (URI, error) {
	if scheme == "" {
		u.scheme = ""
		return u, nil
	}

	if err := assertValidScheme(scheme); err != nil {
		return URI{}, errors.Wrap(err, "scheme is not valid")
	}

	u.scheme = strings.ToLower(scheme)
	return u, nil
}

// WithUserInfo returns a copy with the user information set to
// "user[:password]". An empty user clears the component. The input is
// percent-encoded as needed; existing escapes are kept as-is.
func (u URI) WithUserInfo(user, password string) (URI, error) {
	if user == "" {
		if u.authority == nil {
			return u, nil
		}
		u.authority = u.authority.with(func(a *authority) { a.userInfo = "" })
		return u, nil
	}

	if containsCTL(user) || containsCTL(password) {
		return URI{}, errors.New("userinfo should not contain CTL bytes")
	}

	info := escape(user, encodeUserInfo)
	if password != "" {
		info += ":" + escape(password, encodeUserInfo)
	}

	u.authority = u.authority.with(func(a *authority) { a.userInfo = info })
	return u, nil
}

// WithHost returns a copy with the given host, lowercased. An empty
// host drops the whole authority when no user-info or port remains.
func (u URI) WithHost(host string) (URI, error) {
	if host == "" {
		if u.authority == nil {
			return u, nil
		}
		if u.authority.userInfo == "" && u.authority.port == nil {
			u.authority = nil
			return u, nil
		}
		u.authority = u.authority.with(func(a *authority) { a.host = "" })
		return u, nil
	}

	host = escape(strings.ToLower(host), encodeHost)
	if err := assertValidHost(host); err != nil {
		return URI{}, errors.Wrap(err, "host is not valid")
	}

	u.authority = u.authority.with(func(a *authority) { a.host = host })
	return u, nil
}

// WithPort returns a copy with the given port. Port 0 clears the
// component; anything outside 0..65535 is an error.
func (u URI) WithPort(port int) (URI, error) {
	if port < 0 || port > 65535 {
		return URI{}, errors.Errorf("port out of range: %d", port)
	}

	if port == 0 {
		if u.authority == nil || u.authority.port == nil {
			return u, nil
		}
		u.authority = u.authority.with(func(a *authority) { a.port = nil })
		return u, nil
	}

	u.authority = u.authority.with(func(a *authority) {
		a.port = pointer.To(uint16(port))
	})
	return u, nil
}

// WithPath returns a copy with the given path. The input is
// percent-encoded as needed; existing escapes are kept as-is. Whether
// the path form agrees with the presence of an authority is checked on
// [URI.Encode], since either side may change afterwards.
func (u URI) WithPath(path string) (URI, error) {
	if containsCTL(path) {
		return URI{}, errors.New("path should not contain CTL bytes")
	}

	path = escape(path, encodePath)
	if err := assertValidPath(path, u.hasAuthority(), u.IsRelativeRef()); err != nil {
		return URI{}, errors.Wrap(err, "path is not valid")
	}

	u.path = path
	return u, nil
}

// WithRawQuery returns a copy with the given query, without the leading
// '?'. The input is percent-encoded as needed; existing escapes are
// kept as-is.
func (u URI) WithRawQuery(rawQuery string) (URI, error) {
	if containsCTL(rawQuery) {
		return URI{}, errors.New("query should not contain CTL bytes")
	}

	rawQuery = escape(rawQuery, encodeQuery)
	u.query = &rawQuery
	return u, nil
}

// WithQuery returns a copy whose query encodes the given mapping.
// An empty mapping clears the component.
func (u URI) WithQuery(values Values) (URI, error) {
	if len(values) == 0 {
		return u.WithoutQuery(), nil
	}

	for k, vs := range values {
		if containsCTL(k) {
			return URI{}, errors.Errorf("query key contains CTL bytes: %q", k)
		}
		for _, v := range vs {
			if containsCTL(v) {
				return URI{}, errors.Errorf("value of query key %q contains CTL bytes", k)
			}
		}
	}

	raw := EncodeQuery(values)
	u.query = &raw
	return u, nil
}

func (u URI) WithoutQuery() URI {
	u.query = nil
	return u
}

// WithFragment returns a copy with the given fragment, without the
// leading '#'. The input is percent-encoded as needed; existing escapes
// are kept as-is.
func (u URI) WithFragment(fragment string) (URI, error) {
	if containsCTL(fragment) {
		return URI{}, errors.New("fragment should not contain CTL bytes")
	}

	fragment = escape(fragment, encodeFragment)
	u.fragment = &fragment
	return u, nil
}

func (u URI) WithoutFragment() URI {
	u.fragment = nil
	return u
}

// with clones the authority (or starts an empty one) and applies fn to
// the clone. The original is shared between URI copies and must never
// be written through.
func (a *authority) with(fn func(*authority)) *authority {
	clone := authority{}
	if a != nil {
		clone = *a
	}
	fn(&clone)
	return &clone
}
