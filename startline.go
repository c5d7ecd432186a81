package httpstream

import "bytes"

// stepFirstLine drains leading empty lines, then recognizes either a
// request-line or a status-line depending on p.mode.
func (p *Parser) stepFirstLine() Event {
	for {
		data := p.rest
		idx := bytes.IndexByte(data, '\n')
		if idx == -1 {
			if !p.lineBuf.Append(data...) {
				return p.fail(ErrLineTooLong)
			}
			p.rest = nil
			return moreEvent()
		}

		if !p.lineBuf.Append(data[:idx]...) {
			return p.fail(ErrLineTooLong)
		}
		line := p.lineBuf.Finish()
		p.rest = data[idx+1:]

		if len(line) == 0 {
			// a bare LF with nothing before it, not even a CR
			return p.fail(ErrBadRequest)
		}

		if len(line) == 1 && line[0] == '\r' {
			if p.emptyLines == p.opts.MaxEmptyLines {
				return p.fail(ErrBadRequest)
			}
			p.emptyLines++
			continue
		}

		content := trimCR(line)
		if len(content) == len(line) {
			// LF not preceded by CR on a non-empty line
			return p.fail(ErrBadRequest)
		}

		return p.parseStartLine(content)
	}
}

func (p *Parser) parseStartLine(content []byte) Event {
	if p.mode != ModeResponse {
		if method, uri, version, ok := tryRequestLine(content); ok {
			p.isRequest = true
			p.method = method
			p.uri = uri
			p.version = version
			p.phase = phaseHeader

			return requestEvent(method, uri)
		}

		if p.mode == ModeRequest {
			return p.fail(ErrBadRequest)
		}
	}

	if code, reason, version, ok := tryResponseLine(content); ok {
		p.isRequest = false
		p.statusCode = code
		p.reason = reason
		p.version = version
		p.phase = phaseHeader

		return responseEvent(code, reason)
	}

	return p.fail(ErrBadRequest)
}

// tryRequestLine recognizes "METHOD SP URI SP HTTP/M.N". The asterisk form
// used by OPTIONS * is just an ordinary URI token here; no special-casing
// is needed since a single '*' round-trips through unchanged.
func tryRequestLine(line []byte) (method, uri string, version [2]byte, ok bool) {
	sp1 := bytes.IndexByte(line, ' ')
	if sp1 <= 0 {
		return
	}

	rest := line[sp1+1:]
	sp2 := bytes.IndexByte(rest, ' ')
	if sp2 <= 0 {
		return
	}

	methodBytes := line[:sp1]
	uriBytes := rest[:sp2]
	if bytes.IndexByte(methodBytes, '\r') != -1 || bytes.IndexByte(uriBytes, '\r') != -1 {
		return
	}

	v, vok := parseVersion(rest[sp2+1:])
	if !vok {
		return
	}

	return string(methodBytes), string(uriBytes), v, true
}

// tryResponseLine recognizes "HTTP/M.N SP CODE SP REASON". A missing reason
// phrase (no second SP) is tolerated with an empty reason.
func tryResponseLine(line []byte) (code int, reason string, version [2]byte, ok bool) {
	sp1 := bytes.IndexByte(line, ' ')
	if sp1 <= 0 {
		return
	}

	v, vok := parseVersion(line[:sp1])
	if !vok {
		return
	}

	rest := line[sp1+1:]
	sp2 := bytes.IndexByte(rest, ' ')

	var codeBytes, reasonBytes []byte
	if sp2 == -1 {
		codeBytes = rest
	} else {
		codeBytes = rest[:sp2]
		reasonBytes = rest[sp2+1:]
	}

	n, cok := parseDecimal(codeBytes)
	if !cok {
		return
	}

	return n, string(reasonBytes), v, true
}

func parseVersion(b []byte) (version [2]byte, ok bool) {
	if len(b) != 8 {
		return
	}
	if string(b[:5]) != "HTTP/" || b[6] != '.' {
		return
	}

	major, majorOK := digit(b[5])
	minor, minorOK := digit(b[7])
	if !majorOK || !minorOK {
		return
	}

	return [2]byte{major, minor}, true
}

func digit(c byte) (byte, bool) {
	if c < '0' || c > '9' {
		return 0, false
	}
	return c - '0', true
}

func parseDecimal(b []byte) (int, bool) {
	if len(b) == 0 {
		return 0, false
	}

	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}

	return n, true
}
