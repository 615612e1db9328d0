package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidToken(t *testing.T) {
	testcases := []struct {
		desc     string
		input    string
		expected bool
	}{
		{
			desc:     "plain field name",
			input:    "Content-Type",
			expected: true,
		},
		{
			desc:     "tchar specials",
			input:    "!#$%&'*+-.^_`|~",
			expected: true,
		},
		{
			desc:     "digits only",
			input:    "123",
			expected: true,
		},
		{
			desc:     "empty string",
			input:    "",
			expected: false,
		},
		{
			desc:     "contains space",
			input:    "Content Type",
			expected: false,
		},
		{
			desc:     "contains delimiter",
			input:    "Content:Type",
			expected: false,
		},
		{
			desc:     "non-ascii",
			input:    "héader",
			expected: false,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsValidToken(tc.input))
		})
	}
}

func TestIsValidFieldValue(t *testing.T) {
	testcases := []struct {
		desc     string
		input    string
		expected bool
	}{
		{
			desc:     "plain value",
			input:    "text/html; charset=utf-8",
			expected: true,
		},
		{
			desc:     "empty value",
			input:    "",
			expected: true,
		},
		{
			desc:     "tab separated",
			input:    "a\tb",
			expected: true,
		},
		{
			desc:     "obs-text",
			input:    "na\xefve",
			expected: true,
		},
		{
			desc:     "carriage return",
			input:    "evil\r\nInjected: yes",
			expected: false,
		},
		{
			desc:     "bare line feed",
			input:    "evil\n",
			expected: false,
		},
		{
			desc:     "nul byte",
			input:    "a\x00b",
			expected: false,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsValidFieldValue(tc.input))
		})
	}
}

func TestTrimOWS(t *testing.T) {
	assert.Equal(t, "hello", TrimOWS("  hello\t "))
	assert.Equal(t, "hello", TrimOWS("hello"))
	assert.Equal(t, "", TrimOWS(" \t"))
}
