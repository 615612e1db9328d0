package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHeaders(t *testing.T) {
	h, err := NewHeaders(map[string][]string{
		"Content-Type": {"text/html"},
		"Accept":       {"text/html", "application/json"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, h.Len())
	// A mapping carries no order; names come out sorted.
	assert.Equal(t, []string{"Accept", "Content-Type"}, h.Names())

	_, err = NewHeaders(map[string][]string{"bad name": {"v"}})
	assert.Error(t, err)
}

func TestHeadersLookup(t *testing.T) {
	h, err := NewHeaders(map[string][]string{
		"Content-Type": {"text/html"},
		"Accept":       {"text/html", "application/json"},
	})
	require.NoError(t, err)

	testcases := []struct {
		desc   string
		lookup string
	}{
		{desc: "exact casing", lookup: "Accept"},
		{desc: "lowercase", lookup: "accept"},
		{desc: "uppercase", lookup: "ACCEPT"},
		{desc: "mixed casing", lookup: "aCCePt"},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.True(t, h.Has(tc.lookup))
			assert.Equal(t, []string{"text/html", "application/json"}, h.Get(tc.lookup))
			assert.Equal(t, "text/html, application/json", h.Line(tc.lookup))
		})
	}

	assert.False(t, h.Has("Authorization"))
	assert.Nil(t, h.Get("Authorization"))
	assert.Equal(t, "", h.Line("Authorization"))
}

func TestHeadersWith(t *testing.T) {
	h, err := Headers{}.With("Content-Type", "text/html")
	require.NoError(t, err)
	h, err = h.With("Accept", "*/*")
	require.NoError(t, err)

	// Replacing under a different casing keeps the position and adopts
	// the new casing.
	got, err := h.With("CONTENT-TYPE", "application/json")
	require.NoError(t, err)
	assert.Equal(t, []string{"CONTENT-TYPE", "Accept"}, got.Names())
	assert.Equal(t, []string{"application/json"}, got.Get("content-type"))

	// The receiver is untouched.
	assert.Equal(t, []string{"Content-Type", "Accept"}, h.Names())
	assert.Equal(t, []string{"text/html"}, h.Get("content-type"))

	// Replaying the same With is idempotent.
	once, err := h.With("Accept", "text/plain")
	require.NoError(t, err)
	twice, err := once.With("Accept", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, once.Fields(), twice.Fields())
	assert.Equal(t, once.Names(), twice.Names())

	_, err = h.With("bad name", "v")
	assert.Error(t, err)
	_, err = h.With("X-Empty")
	assert.Error(t, err)
	_, err = h.With("X-Bad-Value", "line\r\nbreak")
	assert.Error(t, err)
}

func TestHeadersWithAdded(t *testing.T) {
	h, err := Headers{}.With("Accept", "text/html")
	require.NoError(t, err)

	got, err := h.WithAdded("accept", "application/json")
	require.NoError(t, err)
	// Appending keeps the existing casing.
	assert.Equal(t, []string{"Accept"}, got.Names())
	assert.Equal(t, []string{"text/html", "application/json"}, got.Get("accept"))

	// Absent field gets created.
	got, err = h.WithAdded("X-New", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, got.Get("x-new"))

	assert.Equal(t, []string{"text/html"}, h.Get("accept"))
}

func TestHeadersWithout(t *testing.T) {
	h, err := NewHeaders(map[string][]string{
		"A": {"1"},
		"B": {"2"},
		"C": {"3"},
	})
	require.NoError(t, err)

	got := h.Without("b")
	assert.Equal(t, []string{"A", "C"}, got.Names())
	assert.Equal(t, 3, h.Len())

	// Removing an absent field is a no-op.
	got = h.Without("missing")
	assert.Equal(t, 3, got.Len())
}

func TestHeadersFields(t *testing.T) {
	h, err := NewHeaders(map[string][]string{"A": {"1", "2"}})
	require.NoError(t, err)

	fields := h.Fields()
	fields["A"][0] = "mutated"
	fields["B"] = []string{"sneaked in"}

	assert.Equal(t, []string{"1", "2"}, h.Get("A"))
	assert.Equal(t, 1, h.Len())
}

func TestSplitFieldLine(t *testing.T) {
	testcases := []struct {
		desc string
		line string
		want []string
	}{
		{
			desc: "single value",
			line: "text/html",
			want: []string{"text/html"},
		},
		{
			desc: "comma separated with OWS",
			line: "text/html,  application/json ,*/*",
			want: []string{"text/html", "application/json", "*/*"},
		},
		{
			desc: "comma inside quotes does not split",
			line: `W/"a,b", "c"`,
			want: []string{`W/"a,b"`, "c"},
		},
		{
			desc: "empty elements are dropped",
			line: "a,, ,b",
			want: []string{"a", "b"},
		},
		{
			desc: "unterminated quote keeps raw value",
			line: `"a,b`,
			want: []string{`"a,b`},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.want, splitFieldLine(tc.line))
		})
	}
}

func TestHeadersWithLine(t *testing.T) {
	h, err := Headers{}.WithLine("Accept", "text/html, application/json")
	require.NoError(t, err)
	assert.Equal(t, []string{"text/html", "application/json"}, h.Get("Accept"))

	h, err = h.WithAddedLine("Accept", "*/*")
	require.NoError(t, err)
	assert.Equal(t, "text/html, application/json, */*", h.Line("Accept"))

	// A line with no values left after trimming is rejected.
	_, err = h.WithLine("Accept", " , ,")
	assert.Error(t, err)
}
