package uri

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// URI is an immutable URI value. The zero value is the empty relative
// reference. Path, query, fragment and user-info are held in their
// percent-encoded form; scheme and host are held lowercase.
type URI struct {
	scheme    string
	authority *authority
	path      string
	query     *string
	fragment  *string
}

type authority struct {
	userInfo string
	host     string

	// NOTE: Port can be digits of any length per the RFC. Practically it
	// is in range of 0 ~ 65535, so uint16 is used for usability.
	// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-3.2.3
	port *uint16
}

// Scheme returns the lowercase scheme, or "" for a relative reference.
func (u URI) Scheme() string { return u.scheme }

// UserInfo returns the percent-encoded user information, or "".
func (u URI) UserInfo() string {
	if u.authority == nil {
		return ""
	}
	return u.authority.userInfo
}

// Host returns the lowercase host, or "" when the URI has no authority.
func (u URI) Host() string {
	if u.authority == nil {
		return ""
	}
	return u.authority.host
}

// Port returns the port. ok is false when no port is present or the
// port is the default for the scheme.
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-4.2.3
func (u URI) Port() (port uint16, ok bool) {
	if u.authority == nil || u.authority.port == nil {
		return 0, false
	}

	p := *u.authority.port
	if def, known := defaultPort(u.scheme); known && p == def {
		return p, false
	}

	return p, true
}

// Authority composes "[userinfo@]host[:port]", eliding default ports.
// It returns "" when the URI has no authority.
// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-3.2
func (u URI) Authority() string {
	if u.authority == nil {
		return ""
	}

	b := new(strings.Builder)
	if u.authority.userInfo != "" {
		b.WriteString(u.authority.userInfo)
		b.WriteByte('@')
	}
	b.WriteString(u.authority.host)
	if port, ok := u.Port(); ok {
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(port), 10))
	}

	return b.String()
}

func (u URI) hasAuthority() bool { return u.authority != nil }

// Path returns the percent-encoded path. It may be empty, absolute or
// rootless.
func (u URI) Path() string { return u.path }

// RawQuery returns the percent-encoded query without the leading '?'.
func (u URI) RawQuery() string {
	if u.query == nil {
		return ""
	}
	return *u.query
}

func (u URI) HasQuery() bool { return u.query != nil }

// Query returns the decoded key-value mapping of the query component.
// Decoding never alters the URI itself.
func (u URI) Query() Values {
	if u.query == nil {
		return Values{}
	}

	// The query was validated on entry, so decoding cannot fail.
	v, _ := ParseQuery(*u.query)
	return v
}

// Fragment returns the percent-encoded fragment without the leading '#'.
func (u URI) Fragment() string {
	if u.fragment == nil {
		return ""
	}
	return *u.fragment
}

func (u URI) HasFragment() bool { return u.fragment != nil }

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-4.2
func (u URI) IsRelativeRef() bool { return u.scheme == "" }

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-4.3
func (u URI) IsAbsoluteURI() bool { return u.scheme != "" && u.fragment == nil }

// Encode composes the URI per RFC 3986 section 5.3. It errors when the
// path is rootless while an authority is present, or starts with "//"
// while no authority is present.
func (u URI) Encode() (string, error) {
	if err := assertValidPath(u.path, u.hasAuthority(), u.IsRelativeRef()); err != nil {
		return "", errors.Wrap(err, "path is not valid")
	}

	return u.compose(), nil
}

// String composes the URI without the cross-component checks of
// [URI.Encode]. Values are validated on entry, so this is safe for
// display; serialization should go through Encode.
func (u URI) String() string { return u.compose() }

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-5.3
func (u URI) compose() string {
	b := new(strings.Builder)
	if u.scheme != "" {
		b.WriteString(u.scheme)
		b.WriteByte(':')
	}

	if u.authority != nil {
		b.WriteString("//")
		b.WriteString(u.Authority())
	}

	b.WriteString(u.path)

	if u.query != nil {
		b.WriteByte('?')
		b.WriteString(*u.query)
	}

	if u.fragment != nil {
		b.WriteByte('#')
		b.WriteString(*u.fragment)
	}

	return b.String()
}

// Equal reports whether two URIs compose to the same reference.
// Default ports are elided on both sides, so "http://a:80/" equals
// "http://a/".
func (u URI) Equal(other URI) bool {
	return u.compose() == other.compose()
}

func defaultPort(scheme string) (port uint16, known bool) {
	switch scheme {
	case "http", "ws":
		return 80, true
	case "https", "wss":
		return 443, true
	}
	return 0, false
}

// Parse parses rawURL into a URI. Components are validated but kept in
// their percent-encoded form, so parsing and re-encoding never
// double-encodes.
func Parse(rawURL string) (URI, error) {
	if containsCTL(rawURL) {
		return URI{}, errors.New("URI should not contain CTL bytes")
	}

	var uri URI

	scheme, rest, err := cutScheme(rawURL)
	if err != nil {
		return URI{}, errors.Wrap(err, "getting scheme")
	}
	// Scheme is case-insensitive; normal form is lowercase.
	uri.scheme = strings.ToLower(scheme)

	if strings.HasPrefix(rest, "//") {
		var authorityRaw string
		authorityRaw, rest = rest[2:], ""
		if i := strings.IndexAny(authorityRaw, "/?#"); i >= 0 {
			authorityRaw, rest = authorityRaw[:i], authorityRaw[i:]
		}

		auth, err := parseAuthority(authorityRaw)
		if err != nil {
			return URI{}, errors.Wrap(err, "parsing authority")
		}

		uri.authority = &auth
	}

	path, query, frag := splitPathQueryFrag(rest)

	if err := assertValidPath(path, uri.hasAuthority(), uri.IsRelativeRef()); err != nil {
		return URI{}, errors.Wrap(err, "path is not valid")
	}
	uri.path = path

	if len(query) > 0 {
		// Strip '?' from query.
		query = query[1:]
		if !isQueryFragValid(query) {
			return URI{}, errors.New("query is not valid")
		}
		uri.query = &query
	}

	if len(frag) > 0 {
		// Strip '#' from fragment.
		frag = frag[1:]
		if !isQueryFragValid(frag) {
			return URI{}, errors.New("fragment is not valid")
		}
		uri.fragment = &frag
	}

	return uri, nil
}

// MustParse is a [Parse] that panics on error, for tests and constants.
func MustParse(rawURL string) URI {
	u, err := Parse(rawURL)
	if err != nil {
		panic(err)
	}
	return u
}

// cutScheme cuts scheme from rawURL. If scheme is not valid, it returns an error.
func cutScheme(rawURL string) (scheme, rest string, err error) {
	idx := strings.IndexAny(rawURL, ":/?#")
	if idx < 0 || rawURL[idx] != ':' {
		// A ':' after the first '/', '?' or '#' belongs to a later
		// component; the reference has no scheme.
		return "", rawURL, nil
	}

	scheme, rest = rawURL[:idx], rawURL[idx+1:]
	if err := assertValidScheme(scheme); err != nil {
		return "", "", err
	}

	return scheme, rest, nil
}

func parseAuthority(raw string) (auth authority, err error) {
	var userInfo, host string
	if i := strings.LastIndex(raw, "@"); i >= 0 {
		userInfo, host = raw[:i], raw[i+1:]
	} else {
		host = raw
	}

	if userInfo != "" {
		if !isValidUserInfo(userInfo) {
			return authority{}, errors.New("user information is not valid")
		}
		auth.userInfo = userInfo
	}

	host, portPart, err := getHostPort(host)
	if err != nil {
		return authority{}, errors.Wrap(err, "parsing host")
	}

	port, hasPort, err := parsePort(portPart)
	if err != nil {
		return authority{}, errors.Wrap(err, "parsing port")
	}

	if hasPort {
		auth.port = &port
	}

	// Host is case-insensitive; normal form is lowercase.
	auth.host = strings.ToLower(host)

	return auth, nil
}

func getHostPort(raw string) (host string, portPart string, err error) {
	if strings.HasPrefix(raw, "[") {
		// This is IP Literal.
		idx := strings.LastIndex(raw, "]")
		if idx < 0 {
			return "", "", errors.New("missing ']' in IP Literal")
		}

		host = raw[:idx+1]
		portPart = raw[idx+1:]
	} else {
		// ipv4 or reg-name.
		host = raw
		if idx := strings.LastIndex(raw, ":"); idx >= 0 {
			host = raw[:idx]
			portPart = raw[idx:]
		}
	}

	if err := assertValidHost(host); err != nil {
		return "", "", errors.Wrap(err, "host is not valid")
	}

	return host, portPart, nil
}

// This is not the same rule as RFC. See [authority].
func parsePort(s string) (port uint16, hasPort bool, err error) {
	if s == "" {
		return 0, false, nil
	}

	if s[0] != ':' {
		return 0, false, errors.New("colon delimiter not found on port")
	}

	s = s[1:]
	if s == "" {
		// port is *DIGIT, so a bare colon means no port.
		// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-3.2.3
		return 0, false, nil
	}

	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, false, errors.Wrap(err, "failed to parse uint")
	}

	if s[0] == '0' && !(n == 0 && len(s) == 1) {
		return 0, false, errors.New("port has leading zero")
	}

	return uint16(n), true, nil
}

func splitPathQueryFrag(raw string) (path, query, frag string) {
	if idx := strings.IndexByte(raw, '#'); idx >= 0 {
		frag = raw[idx:]
		raw = raw[:idx]
	}

	if idx := strings.IndexByte(raw, '?'); idx >= 0 {
		query = raw[idx:]
		raw = raw[:idx]
	}

	path = raw
	return
}
