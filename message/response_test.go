package message

import (
	"testing"

	"httpmsg/message/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponse(t *testing.T) {
	testcases := []struct {
		desc       string
		code       uint
		wantReason string
	}{
		{
			desc:       "well-known code adopts standard phrase",
			code:       200,
			wantReason: "OK",
		},
		{
			desc:       "not found",
			code:       404,
			wantReason: "Not Found",
		},
		{
			desc:       "unregistered code has empty phrase",
			code:       599,
			wantReason: "",
		},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			r, err := NewResponse(tc.code)
			require.NoError(t, err)
			assert.Equal(t, tc.code, r.StatusCode())
			assert.Equal(t, tc.wantReason, r.ReasonPhrase())
		})
	}

	_, err := NewResponse(99)
	assert.Error(t, err)
	_, err = NewResponse(600)
	assert.Error(t, err)
}

func TestWithStatus(t *testing.T) {
	r, err := NewResponse(200)
	require.NoError(t, err)

	got, err := r.WithStatus(404, "")
	require.NoError(t, err)
	assert.Equal(t, status.NotFound, got.Status())

	// Custom reason wins over the standard phrase.
	got, err = r.WithStatus(404, "Nothing Here")
	require.NoError(t, err)
	assert.Equal(t, "Nothing Here", got.ReasonPhrase())

	// The receiver keeps its status.
	assert.Equal(t, uint(200), r.StatusCode())
	assert.Equal(t, "OK", r.ReasonPhrase())
}

func TestResponseMessageDelegation(t *testing.T) {
	r, err := NewResponse(200)
	require.NoError(t, err)

	got, err := r.WithHeader("Content-Type", "application/json")
	require.NoError(t, err)
	assert.Equal(t, "application/json", got.HeaderLine("Content-Type"))
	assert.False(t, r.HasHeader("Content-Type"))

	got, err = got.WithProtoVersion("1.0")
	require.NoError(t, err)
	assert.Equal(t, "1.0", got.ProtoVersion())
}
