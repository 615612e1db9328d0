package uri

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Values holds decoded query parameters. Keys map to ordered value
// lists, matching how repeated query keys are conventionally handled.
type Values map[string][]string

// Get returns the first value for key.
func (v Values) Get(key string) (value string, ok bool) {
	vs, ok := v[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func (v Values) Set(key, value string) { v[key] = []string{value} }

func (v Values) Add(key, value string) { v[key] = append(v[key], value) }

// Clone returns a deep copy sharing no storage with v.
func (v Values) Clone() Values {
	clone := make(Values, len(v))
	for k, vs := range v {
		s := make([]string, len(vs))
		copy(s, vs)
		clone[k] = s
	}
	return clone
}

// ParseQuery decodes a raw query string ("a=1&b=x%20y&c") into Values.
// '+' decodes to a space, following form-urlencoded convention.
func ParseQuery(rawQuery string) (Values, error) {
	values := make(Values)
	if rawQuery == "" {
		return values, nil
	}

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")

		key, err := unescapeQueryPart(rawKey)
		if err != nil {
			return nil, errors.Wrap(err, "unescaping query key")
		}
		value, err := unescapeQueryPart(rawValue)
		if err != nil {
			return nil, errors.Wrapf(err, "unescaping value of key %q", key)
		}

		values.Add(key, value)
	}

	return values, nil
}

// EncodeQuery encodes values into a raw query string. Keys are emitted
// in sorted order so the output is deterministic.
func EncodeQuery(values Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b := new(strings.Builder)
	for _, k := range keys {
		for _, v := range values[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(escapeQueryPart(k))
			b.WriteByte('=')
			b.WriteString(escapeQueryPart(v))
		}
	}

	return b.String()
}

func unescapeQueryPart(s string) (string, error) {
	s = strings.ReplaceAll(s, "+", " ")
	return unescape(s)
}

func escapeQueryPart(s string) string {
	// '=', '&' and '+' are meaningful inside the query mapping, so they
	// get encoded beyond what the component grammar requires.
	escaped := escape(s, encodeQuery)
	escaped = strings.ReplaceAll(escaped, "=", "%3D")
	escaped = strings.ReplaceAll(escaped, "&", "%26")
	escaped = strings.ReplaceAll(escaped, "+", "%2B")
	return escaped
}
