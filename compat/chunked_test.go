package compat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrailerDecoder_SimpleBodyNoTrailer(t *testing.T) {
	d := NewTrailerDecoder(DefaultMaxChunkSize)

	chunk, _, _, err := d.Feed([]byte("5\r\nhello\r\n0\r\n\r\nafter"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(chunk))
	require.False(t, d.Done())
}

func TestTrailerDecoder_WithTrailerFields(t *testing.T) {
	d := NewTrailerDecoder(DefaultMaxChunkSize)

	raw := "5\r\nhello\r\n0\r\nX-Trailer: value\r\n\r\nnext-message"

	chunk, residual, done, err := d.Feed([]byte(raw))
	require.NoError(t, err)
	body := chunk

	// One Parse call surfaces at most one completed chunk; the trailer
	// section is only reached by re-feeding whatever residual comes back.
	for !done {
		chunk, residual, done, err = d.Feed(residual)
		require.NoError(t, err)
		body = append(body, chunk...)
	}

	require.Equal(t, "hello", string(body))
	require.True(t, d.Done())
	require.Equal(t, "next-message", string(residual))
}

func TestTrailerDecoder_DoneIsSticky(t *testing.T) {
	d := NewTrailerDecoder(DefaultMaxChunkSize)
	require.False(t, d.Done())

	raw := "5\r\nhello\r\n0\r\nX-Trailer: value\r\n\r\nnext-message"

	_, residual, done, err := d.Feed([]byte(raw))
	require.NoError(t, err)
	for !done {
		_, residual, done, err = d.Feed(residual)
		require.NoError(t, err)
	}
	require.True(t, d.Done())

	// once done, Feed passes whatever it's given straight through as
	// residual instead of touching the underlying parser again.
	_, residual, done, err = d.Feed([]byte("more-bytes"))
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, "more-bytes", string(residual))
}
