package httpstream

import "github.com/indigo-web/utils/strcomp"

// ContentDecoder undoes Content-Encoding, after the transfer decoder
// (identity or chunked) has already reassembled the entity body. The core
// ships only the identity case; callers inject gzip, deflate, etc, which is
// deliberately outside this module's scope.
type ContentDecoder interface {
	Decode(data []byte) ([]byte, error)
}

// IdentityContentDecoder applies no transformation.
type IdentityContentDecoder struct{}

func (IdentityContentDecoder) Decode(data []byte) ([]byte, error) {
	return data, nil
}

type bodyStepKind uint8

const (
	stepNeedMore bodyStepKind = iota
	stepChunk
	stepTerminalEmpty
	stepTerminal
	stepError
)

// bodyStep is the return vocabulary a transfer decoder uses to tell stepBody
// what happened: more bytes are needed, a chunk of body data is ready
// (possibly with bytes left over for the decoder's own next call), the body
// ended exactly at a boundary, the body ended with one last chunk of data,
// or decoding failed outright.
type bodyStep struct {
	kind     bodyStepKind
	data     []byte
	residual []byte
	err      error
}

type bodyDecoder interface {
	decode(data []byte) bodyStep
}

// identityDecoder streams exactly total bytes, or, when unbounded is set,
// streams everything it's given until the caller calls Parser.Close (the
// connection-close-delimited body resolution of SPEC_FULL.md §12.1).
type identityDecoder struct {
	streamed, total uint64
	unbounded       bool
}

func (d *identityDecoder) decode(data []byte) bodyStep {
	if d.unbounded {
		if len(data) == 0 {
			return bodyStep{kind: stepNeedMore}
		}
		d.streamed += uint64(len(data))
		return bodyStep{kind: stepChunk, data: data}
	}

	if len(data) == 0 {
		return bodyStep{kind: stepNeedMore}
	}

	remaining := d.total - d.streamed
	if uint64(len(data)) < remaining {
		d.streamed += uint64(len(data))
		return bodyStep{kind: stepChunk, data: data}
	}

	final := data[:remaining]
	residual := data[remaining:]
	d.streamed = d.total

	if len(final) == 0 {
		return bodyStep{kind: stepTerminalEmpty, residual: residual}
	}
	return bodyStep{kind: stepTerminal, data: final, residual: residual}
}

// installDecoder picks identity or chunked transfer decoding based on the
// framing signals collected while walking headers, resolving the two open
// questions from SPEC_FULL.md §12.1/§12.2. shortCircuit is true when the
// body framer already reached a conclusion (no body at all) without needing
// a decoder, in which case ev is the event to return immediately.
func (p *Parser) installDecoder() (ev Event, shortCircuit bool) {
	switch {
	case strcomp.EqualFold(p.transferEncoding, "chunked"):
		p.decoder = newChunkedDecoder()
		return Event{}, false

	case p.isRequest && strcomp.EqualFold(p.method, "HEAD"):
		p.phase = phaseDone
		return doneEvent(p.rest), true

	case p.contentLengthSet && p.contentLength == 0:
		p.phase = phaseDone
		return doneEvent(p.rest), true

	case p.contentLengthSet:
		p.decoder = &identityDecoder{total: p.contentLength}
		return Event{}, false

	case p.isRequest:
		// A request with neither Content-Length nor Transfer-Encoding
		// carries no body.
		p.phase = phaseDone
		return doneEvent(p.rest), true

	default:
		// A response with no framing headers at all is delimited by the
		// connection closing; see SPEC_FULL.md §12.1.
		p.decoder = &identityDecoder{unbounded: true}
		return Event{}, false
	}
}

func (p *Parser) stepBody() Event {
	if p.decoder == nil {
		if ev, short := p.installDecoder(); short {
			return ev
		}
	}

	step := p.decoder.decode(p.rest)

	switch step.kind {
	case stepNeedMore:
		p.rest = nil
		return moreEvent()

	case stepChunk:
		decoded, err := p.contentDecoder.Decode(step.data)
		if err != nil {
			return p.fail(err)
		}
		p.rest = step.residual
		return bodyChunkEvent(decoded)

	case stepTerminalEmpty:
		p.phase = phaseDone
		p.rest = step.residual
		return doneEvent(step.residual)

	case stepTerminal:
		decoded, err := p.contentDecoder.Decode(step.data)
		if err != nil {
			return p.fail(err)
		}
		p.rest = step.residual
		p.emitDoneNext = true
		return bodyChunkEvent(decoded)

	default:
		return p.fail(step.err)
	}
}
