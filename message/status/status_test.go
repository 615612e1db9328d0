package status

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCode(t *testing.T) {
	s, ok := FromCode(200)
	require.True(t, ok)
	assert.Equal(t, OK, s)

	s, ok = FromCode(418)
	require.True(t, ok)
	assert.Equal(t, "I'm a teapot", s.ReasonPhrase)

	s, ok = FromCode(599)
	assert.False(t, ok)
	assert.Equal(t, Status{Code: 599}, s)
}

func TestError(t *testing.T) {
	cause := errors.New("payload exceeds limit")
	err := NewError(cause, ContentTooLarge)

	assert.Equal(t, `413 Content Too Large: "payload exceeds limit"`, err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Cause())

	// A cause-less error still renders.
	bare := NewError(nil, NotFound)
	assert.Equal(t, `404 Not Found: ""`, bare.Error())
}
