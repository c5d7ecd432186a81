package httpstream

import (
	"bytes"

	"github.com/indigo-web/utils/strcomp"
)

// stepHeader reads header lines, one per call, splicing obs-folded
// continuations onto the header they extend. Because a fold can only be
// recognized by looking at the line *after* the one it extends, a
// completed header is always one line behind what was just read off the
// wire; stepHeader holds it in p.pendingName/p.pendingValue until either a
// fresh header line or the terminator forces a flush.
func (p *Parser) stepHeader() Event {
	for {
		var line []byte

		if p.haveStagedLine {
			line = p.stagedLine
			p.haveStagedLine = false
		} else {
			data := p.rest
			idx := bytes.IndexByte(data, '\n')
			if idx == -1 {
				if !p.headerLineBuf.Append(data...) {
					return p.fail(ErrBadRequest)
				}
				p.rest = nil
				return moreEvent()
			}

			if !p.headerLineBuf.Append(data[:idx]...) {
				return p.fail(ErrBadRequest)
			}
			raw := p.headerLineBuf.Finish()
			p.rest = data[idx+1:]

			if len(raw) == 0 || raw[len(raw)-1] != '\r' {
				// a lone LF: every header line, including the terminator,
				// must end in CRLF.
				return p.fail(ErrBadRequest)
			}
			line = raw[:len(raw)-1]
		}

		switch {
		case len(line) == 0:
			return p.flushHeaderLine(true)
		case line[0] == ' ' || line[0] == '\t':
			if !p.havePendingHeader {
				return p.fail(ErrBadRequest)
			}
			p.pendingValue += string(line)
		default:
			if p.havePendingHeader {
				// stage this line; it starts the next header, but the
				// pending one must be flushed first.
				p.stagedLine = line
				p.haveStagedLine = true
				return p.flushHeaderLine(false)
			}

			name, value := splitHeaderLine(line)
			p.pendingName = name
			p.pendingValue = value
			p.havePendingHeader = true
		}
	}
}

// flushHeaderLine emits the pending header, if any, and arranges for the
// terminator (terminal=true) to be surfaced on this call or the next.
func (p *Parser) flushHeaderLine(terminal bool) Event {
	if !p.havePendingHeader {
		if terminal {
			p.phase = phaseBody
			return headersCompleteEvent()
		}
		// nothing pending and not terminal: shouldn't happen, caller loops
		return p.fail(ErrBadRequest)
	}

	name, value := p.pendingName, p.pendingValue
	p.havePendingHeader = false

	if err := p.applyFraming(name, value); err != nil {
		return p.fail(err)
	}

	if terminal {
		p.phase = phaseBody
		// The terminator line itself carries no further information; defer
		// HeadersComplete to the very next drive call, which fires it before
		// touching the body decoder.
		p.emitHeadersCompleteNext = true
	}

	return headerEvent(name, value)
}

func splitHeaderLine(line []byte) (name, value string) {
	idx := bytes.Index(line, []byte(": "))
	if idx == -1 {
		return string(line), ""
	}

	return string(line[:idx]), string(line[idx+2:])
}

// applyFraming updates the body-framing signals a header may carry. Per
// RFC 7230 §3.3.3, Transfer-Encoding: chunked always wins over
// Content-Length for framing purposes; a second, disagreeing
// Content-Length is rejected outright.
func (p *Parser) applyFraming(name, value string) error {
	switch {
	case strcomp.EqualFold(name, "Content-Length"):
		n, ok := parseDecimal([]byte(value))
		if !ok {
			return ErrInvalidContentLength
		}

		if p.contentLengthSet && uint64(n) != p.contentLength {
			return ErrInvalidContentLength
		}

		p.contentLength = uint64(n)
		p.contentLengthSet = true
	case strcomp.EqualFold(name, "Transfer-Encoding"):
		p.transferEncoding = lower(value)
	case strcomp.EqualFold(name, "Connection"):
		p.connection = lower(value)
	case strcomp.EqualFold(name, "Content-Type"):
		p.contentType = lower(value)
	case strcomp.EqualFold(name, "Location"):
		p.location = value
	}

	return nil
}

func lower(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}

	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}

	return string(b)
}
