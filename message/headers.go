package message

import (
	"sort"
	"strings"

	sliceutil "httpmsg/lib/slice"
	"httpmsg/rule"

	"github.com/pkg/errors"
)

// Headers is an immutable, ordered collection of header fields. Lookup
// is case-insensitive; output preserves the casing a name was last set
// with, and the order fields were first added in. Deriving methods
// never touch the receiver's storage.
type Headers struct {
	fields []headerField
}

type headerField struct {
	name   string
	values []string
}

// NewHeaders creates Headers from an initial mapping. Names are added
// in sorted order since the mapping itself carries none.
func NewHeaders(initial map[string][]string) (Headers, error) {
	names := make([]string, 0, len(initial))
	for name := range initial {
		names = append(names, name)
	}
	sort.Strings(names)

	var h Headers
	var err error
	for _, name := range names {
		h, err = h.With(name, initial[name]...)
		if err != nil {
			return Headers{}, err
		}
	}

	return h, nil
}

// Has reports whether a field with the given name exists, under any
// casing.
func (h Headers) Has(name string) bool {
	return h.index(name) >= 0
}

// Get returns the values of the named field in order, or nil when the
// field is absent. The returned slice is a copy.
func (h Headers) Get(name string) []string {
	idx := h.index(name)
	if idx < 0 {
		return nil
	}

	values := make([]string, len(h.fields[idx].values))
	copy(values, h.fields[idx].values)
	return values
}

// Line returns the values of the named field joined with ", ", or ""
// when the field is absent.
func (h Headers) Line(name string) string {
	idx := h.index(name)
	if idx < 0 {
		return ""
	}
	return strings.Join(h.fields[idx].values, ", ")
}

// Names returns the field names with their preserved casing, in order.
func (h Headers) Names() []string {
	return sliceutil.Map(h.fields, func(f headerField) string { return f.name })
}

// Fields returns all fields as a mapping. The result is a deep copy.
func (h Headers) Fields() map[string][]string {
	clone := make(map[string][]string, len(h.fields))
	for _, f := range h.fields {
		values := make([]string, len(f.values))
		copy(values, f.values)
		clone[f.name] = values
	}
	return clone
}

func (h Headers) Len() int { return len(h.fields) }

// With returns a copy where the named field holds exactly values,
// replacing any prior value set and adopting the given casing. The
// field keeps its position when it already existed.
func (h Headers) With(name string, values ...string) (Headers, error) {
	if err := assertValidField(name, values); err != nil {
		return Headers{}, err
	}

	clone := h.clone()
	f := headerField{name: name, values: cloneValues(values)}

	if idx := clone.index(name); idx >= 0 {
		clone.fields[idx] = f
	} else {
		clone.fields = append(clone.fields, f)
	}

	return clone, nil
}

// WithLine is [Headers.With] taking a single comma-separated line.
func (h Headers) WithLine(name, line string) (Headers, error) {
	return h.With(name, splitFieldLine(line)...)
}

// WithAdded returns a copy with values appended to the named field,
// creating it when absent. An existing field keeps its casing.
func (h Headers) WithAdded(name string, values ...string) (Headers, error) {
	if err := assertValidField(name, values); err != nil {
		return Headers{}, err
	}

	clone := h.clone()
	if idx := clone.index(name); idx >= 0 {
		f := clone.fields[idx]
		f.values = append(cloneValues(f.values), values...)
		clone.fields[idx] = f
	} else {
		clone.fields = append(clone.fields, headerField{
			name: name, values: cloneValues(values),
		})
	}

	return clone, nil
}

// WithAddedLine is [Headers.WithAdded] taking a single comma-separated line.
func (h Headers) WithAddedLine(name, line string) (Headers, error) {
	return h.WithAdded(name, splitFieldLine(line)...)
}

// Without returns a copy with the named field removed, under any
// casing. Removing an absent field is a no-op.
func (h Headers) Without(name string) Headers {
	idx := h.index(name)
	if idx < 0 {
		return h
	}

	clone := Headers{fields: make([]headerField, 0, len(h.fields)-1)}
	clone.fields = append(clone.fields, h.fields[:idx]...)
	clone.fields = append(clone.fields, h.fields[idx+1:]...)
	return clone
}

func (h Headers) index(name string) int {
	for i, f := range h.fields {
		if strings.EqualFold(f.name, name) {
			return i
		}
	}
	return -1
}

func (h Headers) clone() Headers {
	fields := make([]headerField, len(h.fields))
	copy(fields, h.fields)
	return Headers{fields: fields}
}

func cloneValues(values []string) []string {
	clone := make([]string, len(values))
	copy(clone, values)
	return clone
}

func assertValidField(name string, values []string) error {
	if !rule.IsValidToken(name) {
		return errors.Errorf("field name is not a valid token: %q", name)
	}
	if len(values) == 0 {
		return errors.Errorf("field %q needs at least one value", name)
	}
	for _, v := range values {
		if !rule.IsValidFieldValue(v) {
			return errors.Errorf("value of field %q is not valid field content", name)
		}
	}

	return nil
}

// splitFieldLine splits a comma-separated field line into its values.
// Commas inside double quotes do not split, and quoted values are
// unquoted.
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.6.4-1
func splitFieldLine(line string) []string {
	values := make([]string, 0)
	buf := new(strings.Builder)

	quoted := false
	for _, part := range strings.Split(line, ",") {
		if quoted {
			// Comma inside quote, let's write it again.
			buf.WriteByte(',')
		}

		for idx := 0; idx < len(part); idx++ {
			c := part[idx]
			if c == '"' {
				quoted = !quoted
			}
			buf.WriteByte(c)
		}

		if !quoted {
			values = addFieldValue(values, buf.String())
			buf.Reset()
		}
	}

	if buf.Len() > 0 {
		// Quote didn't end properly.
		// At least keep the raw value.
		values = addFieldValue(values, buf.String())
	}

	return values
}

func addFieldValue(values []string, value string) []string {
	value = rule.Unquote(rule.TrimOWS(value))
	if value == "" {
		// Don't append if it's empty.
		return values
	}
	return append(values, value)
}
