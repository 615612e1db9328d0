package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithScheme(t *testing.T) {
	u := MustParse("http://example.com/a")

	got, err := u.WithScheme("HTTPS")
	require.NoError(t, err)
	assert.Equal(t, "https", got.Scheme())
	assert.Equal(t, "http", u.Scheme())

	got, err = u.WithScheme("")
	require.NoError(t, err)
	assert.True(t, got.IsRelativeRef())
	assert.Equal(t, "//example.com/a", got.String())

	_, err = u.WithScheme("1http")
	assert.Error(t, err)
}

func TestWithUserInfo(t *testing.T) {
	u := MustParse("http://example.com/")

	got, err := u.WithUserInfo("alice", "p@ss word")
	require.NoError(t, err)
	assert.Equal(t, "alice:p%40ss%20word", got.UserInfo())
	assert.Equal(t, "", u.UserInfo())

	got, err = got.WithUserInfo("", "")
	require.NoError(t, err)
	assert.Equal(t, "", got.UserInfo())

	_, err = u.WithUserInfo("bob\r\n", "")
	assert.Error(t, err)
}

func TestWithHost(t *testing.T) {
	u := MustParse("http://example.com/a")

	got, err := u.WithHost("EXAMPLE.ORG")
	require.NoError(t, err)
	assert.Equal(t, "example.org", got.Host())
	assert.Equal(t, "example.com", u.Host())

	// Dropping the last remaining authority part drops the authority.
	got, err = got.WithHost("")
	require.NoError(t, err)
	assert.Equal(t, "", got.Authority())
	assert.Equal(t, "http:/a", got.String())

	// User-info keeps the authority alive when the host goes.
	withUser, err := u.WithUserInfo("alice", "")
	require.NoError(t, err)
	withUser, err = withUser.WithHost("")
	require.NoError(t, err)
	assert.Equal(t, "alice@", withUser.Authority())
}

func TestWithPort(t *testing.T) {
	u := MustParse("http://example.com/")

	got, err := u.WithPort(8080)
	require.NoError(t, err)
	port, ok := got.Port()
	require.True(t, ok)
	assert.Equal(t, uint16(8080), port)

	_, ok = u.Port()
	assert.False(t, ok)

	got, err = got.WithPort(0)
	require.NoError(t, err)
	_, ok = got.Port()
	assert.False(t, ok)

	_, err = u.WithPort(-1)
	assert.Error(t, err)
	_, err = u.WithPort(65536)
	assert.Error(t, err)
}

func TestWithPath(t *testing.T) {
	u := MustParse("http://example.com/a")

	got, err := u.WithPath("/tmp/report card.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/report%20card.pdf", got.Path())
	assert.Equal(t, "/a", u.Path())

	// Existing escapes survive untouched.
	got, err = u.WithPath("/a%2Fb c")
	require.NoError(t, err)
	assert.Equal(t, "/a%2Fb%20c", got.Path())

	_, err = u.WithPath("rootless")
	assert.Error(t, err)
	_, err = u.WithPath("/a\x00b")
	assert.Error(t, err)
}

func TestWithRawQuery(t *testing.T) {
	u := MustParse("http://example.com/")

	got, err := u.WithRawQuery("q=a b&r=%3D")
	require.NoError(t, err)
	assert.Equal(t, "q=a%20b&r=%3D", got.RawQuery())
	assert.False(t, u.HasQuery())

	got = got.WithoutQuery()
	assert.False(t, got.HasQuery())
}

func TestWithQuery(t *testing.T) {
	u := MustParse("http://example.com/")

	got, err := u.WithQuery(Values{"b": {"2"}, "a": {"1 1"}})
	require.NoError(t, err)
	assert.Equal(t, "a=1%201&b=2", got.RawQuery())

	got, err = got.WithQuery(Values{})
	require.NoError(t, err)
	assert.False(t, got.HasQuery())

	_, err = u.WithQuery(Values{"a": {"bad\x00"}})
	assert.Error(t, err)
}

func TestWithFragment(t *testing.T) {
	u := MustParse("http://example.com/")

	got, err := u.WithFragment("sec 2")
	require.NoError(t, err)
	assert.Equal(t, "sec%202", got.Fragment())
	assert.False(t, u.HasFragment())

	got = got.WithoutFragment()
	assert.False(t, got.HasFragment())
}

func TestWithImmutability(t *testing.T) {
	u := MustParse("http://alice@example.com:8080/a?q=1#f")
	encoded, err := u.Encode()
	require.NoError(t, err)

	derived, err := u.WithHost("other.example")
	require.NoError(t, err)
	derived, err = derived.WithUserInfo("bob", "pw")
	require.NoError(t, err)
	derived, err = derived.WithPort(9090)
	require.NoError(t, err)
	_ = derived

	after, err := u.Encode()
	require.NoError(t, err)
	assert.Equal(t, encoded, after)
}
