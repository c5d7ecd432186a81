package httpstream

import (
	"bytes"

	"github.com/wirehttp/streamparser/internal/hexconv"

	"github.com/indigo-web/utils/buffer"
)

type chunkedState uint8

const (
	cAwaitingSize chunkedState = iota
	cAwaitingBody
	cAwaitingBodyCRLF
)

// maxChunkSizeLine bounds a single chunk-size line (hex digits plus chunk
// extensions), generous enough for any real uint64 size.
const maxChunkSizeLine = 512

// chunkedDecoder implements RFC 7230 §4.1 chunked transfer decoding. It
// deliberately has no trailer states: a zero-size chunk ends the body
// immediately, and whatever follows (trailer fields or not) is surfaced as
// residual, untouched, per the core's explicit non-goal of trailer parsing
// (a trailer-aware companion exists in the compat package instead).
type chunkedDecoder struct {
	state     chunkedState
	remaining uint64
	lineBuf   buffer.Buffer[byte]

	crlf     [2]byte
	crlfHave int
}

func newChunkedDecoder() *chunkedDecoder {
	d := &chunkedDecoder{state: cAwaitingSize}
	d.lineBuf = *buffer.NewBuffer[byte](0, maxChunkSizeLine)
	return d
}

func (d *chunkedDecoder) decode(data []byte) bodyStep {
	for {
		switch d.state {
		case cAwaitingSize:
			idx := bytes.IndexByte(data, '\n')
			if idx == -1 {
				if !d.lineBuf.Append(data...) {
					return bodyStep{kind: stepError, err: ErrPoorlyFormattedSize}
				}
				return bodyStep{kind: stepNeedMore}
			}

			if !d.lineBuf.Append(data[:idx]...) {
				return bodyStep{kind: stepError, err: ErrPoorlyFormattedSize}
			}
			raw := d.lineBuf.Finish()
			data = data[idx+1:]

			if len(raw) == 0 || raw[len(raw)-1] != '\r' {
				return bodyStep{kind: stepError, err: ErrPoorlyFormattedSize}
			}

			sizeToken := raw[:len(raw)-1]
			if semi := bytes.IndexByte(sizeToken, ';'); semi != -1 {
				sizeToken = sizeToken[:semi]
			}

			size, ok := parseHex(sizeToken)
			if !ok {
				return bodyStep{kind: stepError, err: ErrPoorlyFormattedSize}
			}

			if size == 0 {
				return bodyStep{kind: stepTerminalEmpty, residual: data}
			}

			d.remaining = size
			d.state = cAwaitingBody

		case cAwaitingBody:
			if len(data) == 0 {
				return bodyStep{kind: stepNeedMore}
			}

			if uint64(len(data)) < d.remaining {
				d.remaining -= uint64(len(data))
				return bodyStep{kind: stepChunk, data: data}
			}

			chunk := data[:d.remaining]
			rest := data[d.remaining:]
			d.remaining = 0
			d.state = cAwaitingBodyCRLF

			return bodyStep{kind: stepChunk, data: chunk, residual: rest}

		case cAwaitingBodyCRLF:
			for len(data) > 0 && d.crlfHave < 2 {
				d.crlf[d.crlfHave] = data[0]
				d.crlfHave++
				data = data[1:]
			}

			if d.crlfHave < 2 {
				return bodyStep{kind: stepNeedMore}
			}

			if d.crlf[0] != '\r' || d.crlf[1] != '\n' {
				return bodyStep{kind: stepError, err: ErrPoorlyFormattedChunkedSize}
			}

			d.crlfHave = 0
			d.state = cAwaitingSize
		}
	}
}

func parseHex(b []byte) (uint64, bool) {
	if len(b) == 0 || len(b) > 16 {
		return 0, false
	}

	var n uint64
	for _, c := range b {
		h := hexconv.Halfbyte(c)
		if h == hexconv.Invalid {
			return 0, false
		}
		n = n<<4 | uint64(h)
	}

	return n, true
}
