package httpstream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTryRequestLine(t *testing.T) {
	method, uri, version, ok := tryRequestLine([]byte("GET /widgets HTTP/1.1"))
	require.True(t, ok)
	require.Equal(t, "GET", method)
	require.Equal(t, "/widgets", uri)
	require.Equal(t, [2]byte{1, 1}, version)

	t.Run("asterisk form", func(t *testing.T) {
		method, uri, _, ok := tryRequestLine([]byte("OPTIONS * HTTP/1.1"))
		require.True(t, ok)
		require.Equal(t, "OPTIONS", method)
		require.Equal(t, "*", uri)
	})

	for _, tc := range []string{
		"GET /widgets",
		"GET HTTP/1.1",
		" /widgets HTTP/1.1",
		"GET /widgets HTTP/1.1 extra",
	} {
		_, _, _, ok := tryRequestLine([]byte(tc))
		require.False(t, ok, tc)
	}
}

func TestTryResponseLine(t *testing.T) {
	code, reason, version, ok := tryResponseLine([]byte("HTTP/1.1 200 OK"))
	require.True(t, ok)
	require.Equal(t, 200, code)
	require.Equal(t, "OK", reason)
	require.Equal(t, [2]byte{1, 1}, version)

	t.Run("missing reason phrase", func(t *testing.T) {
		code, reason, _, ok := tryResponseLine([]byte("HTTP/1.1 204"))
		require.True(t, ok)
		require.Equal(t, 204, code)
		require.Empty(t, reason)
	})

	t.Run("reason with spaces", func(t *testing.T) {
		_, reason, _, ok := tryResponseLine([]byte("HTTP/1.1 404 Not Found"))
		require.True(t, ok)
		require.Equal(t, "Not Found", reason)
	})

	for _, tc := range []string{
		"200 OK",
		"HTTP/1.1 abc",
		"HTTP/1.1",
	} {
		_, _, _, ok := tryResponseLine([]byte(tc))
		require.False(t, ok, tc)
	}
}

func TestParseVersion(t *testing.T) {
	v, ok := parseVersion([]byte("HTTP/1.1"))
	require.True(t, ok)
	require.Equal(t, [2]byte{1, 1}, v)

	v, ok = parseVersion([]byte("HTTP/2.0"))
	require.True(t, ok)
	require.Equal(t, [2]byte{2, 0}, v)

	for _, tc := range []string{"HTTP/1.X", "HTTP/X.1", "HTTPS/1.1", "HTTP/11.1"} {
		_, ok := parseVersion([]byte(tc))
		require.False(t, ok, tc)
	}
}

func TestParseDecimal(t *testing.T) {
	n, ok := parseDecimal([]byte("404"))
	require.True(t, ok)
	require.Equal(t, 404, n)

	for _, tc := range []string{"", "4a4", "-1"} {
		_, ok := parseDecimal([]byte(tc))
		require.False(t, ok, tc)
	}
}

func TestStepFirstLine_BareLFRejected(t *testing.T) {
	// unlike a lenient CRLF-or-LF parser, this one requires CRLF on the
	// start line: a lone LF is bad framing, not a convenience.
	p := New()
	events := drainAll(p, []byte("GET / HTTP/1.1\nHost: x\r\n\r\n"))
	errEv, ok := lastOf(events, EventError)
	require.True(t, ok)
	require.ErrorIs(t, errEv.Err, ErrBadRequest)
}

func TestStepFirstLine_MisplacedCRIsBadRequest(t *testing.T) {
	p := New()
	events := drainAll(p, []byte("GET / HTTP\r/1.1\r\n\r\n"))
	errEv, ok := lastOf(events, EventError)
	require.True(t, ok)
	require.ErrorIs(t, errEv.Err, ErrBadRequest)
}
