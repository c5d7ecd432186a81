// Package compat wraps decoding concerns the core parser deliberately
// leaves out of its event protocol. TrailerDecoder is the one such
// concern: RFC 7230 §4.1.2 chunk trailers, which the core's own chunked
// decoder refuses to parse (see the root package's chunked.go and
// SPEC_FULL.md §12.3).
package compat

import (
	"io"

	"github.com/indigo-web/chunkedbody"
)

// DefaultMaxChunkSize caps an individual chunk's declared size, mirroring
// the bound indigo itself applies via chunkedbody.Settings.
const DefaultMaxChunkSize = 1 << 24

// TrailerDecoder decodes a chunked body end to end, including its trailer
// section, by driving the real github.com/indigo-web/chunkedbody parser
// with trailer collection enabled. Unlike the core parser, it is not an
// incremental event source: Feed is called until Done reports completion.
type TrailerDecoder struct {
	parser *chunkedbody.Parser
	done   bool
}

// NewTrailerDecoder returns a TrailerDecoder bounding any single chunk to
// maxChunkSize bytes.
func NewTrailerDecoder(maxChunkSize int64) *TrailerDecoder {
	return &TrailerDecoder{
		parser: chunkedbody.NewParser(chunkedbody.Settings{MaxChunkSize: maxChunkSize}),
	}
}

// Feed decodes another slice of wire bytes. chunk is body data ready to
// hand to the caller; residual is wire bytes left over once the body (and
// its trailer section) ended; done reports whether residual marks the end.
//
// The underlying parser consumes and discards trailer field lines itself
// rather than surfacing their name/value pairs; a caller that needs the
// trailer fields themselves must re-derive them from the raw bytes between
// the zero-size chunk and the final CRLF, which this decoder does not
// attempt to split out.
func (d *TrailerDecoder) Feed(data []byte) (chunk, residual []byte, done bool, err error) {
	if d.done {
		return nil, data, true, nil
	}

	chunk, residual, err = d.parser.Parse(data, true)
	if err == io.EOF {
		d.done = true
		return chunk, residual, true, nil
	}
	if err != nil {
		return nil, nil, false, err
	}

	return chunk, residual, false, nil
}

// Done reports whether the trailer-terminated body has fully decoded.
func (d *TrailerDecoder) Done() bool {
	return d.done
}
