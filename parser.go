package httpstream

import (
	"math"

	"github.com/indigo-web/utils/buffer"
)

type phase uint8

const (
	phaseFirstLine phase = iota
	phaseHeader
	phaseBody
	phaseDone
	phaseError
)

// unboundedLine is the practical cap placed on header lines, which the
// spec leaves otherwise unbounded. It exists only as
// a safety valve against an adversarial peer exhausting memory one byte at
// a time; ordinary traffic never comes close to it.
const unboundedLine = math.MaxInt32

// Parser is a single HTTP/1.x message parser. It is not safe for concurrent
// use; create one Parser per in-flight message, the same way indigo attaches
// one *Parser to each connection's Suit.
type Parser struct {
	opts  Options
	mode  Mode // copied from opts.Mode; ModeAuto is kept as is
	phase phase

	emptyLines uint32

	// rest holds bytes handed to Feed that haven't been consumed by the
	// state machine yet, because a single Feed call can contain more than
	// one event's worth of data.
	rest []byte

	lineBuf       buffer.Buffer[byte]
	headerLineBuf buffer.Buffer[byte]

	// start-line results
	method  string
	uri     string
	version [2]byte

	statusCode int
	reason     string

	isRequest bool

	// header accumulation (obs-fold lookahead, see headers.go)
	havePendingHeader       bool
	pendingName             string
	pendingValue            string
	haveStagedLine          bool
	stagedLine              []byte
	emitHeadersCompleteNext bool
	emitDoneNext            bool

	// framing signals collected while walking headers
	contentLength      uint64
	contentLengthSet   bool
	transferEncoding   string
	connection         string
	contentType        string
	location           string

	decoder        bodyDecoder
	contentDecoder ContentDecoder

	err error
}

// New creates a Parser ready to receive bytes via Feed.
func New(opts ...Option) *Parser {
	o := DefaultOptions()
	for _, apply := range opts {
		apply(&o)
	}

	p := &Parser{
		opts:           o,
		mode:           o.Mode,
		phase:          phaseFirstLine,
		contentDecoder: IdentityContentDecoder{},
	}
	p.lineBuf = *buffer.NewBuffer[byte](0, int(o.MaxLineLength))
	p.headerLineBuf = *buffer.NewBuffer[byte](0, unboundedLine)

	return p
}

// SetContentDecoder installs the decoder applied to body bytes after
// transfer decoding. The core ships only IdentityContentDecoder; callers
// inject gzip/deflate/etc, matching the spec's explicit scoping of content
// decompression out of the core.
func (p *Parser) SetContentDecoder(d ContentDecoder) {
	p.contentDecoder = d
}

// Feed appends data (which may be empty, to re-drive a parser sitting on
// already-buffered bytes) and returns exactly one Event. Callers drain a
// large read by calling Feed(nil) repeatedly until they observe More.
func (p *Parser) Feed(data []byte) Event {
	if len(data) > 0 {
		if len(p.rest) == 0 {
			p.rest = data
		} else {
			p.rest = append(p.rest, data...)
		}
	}

	return p.drive()
}

// Close signals that the transport reached EOF. It is only meaningful while
// streaming a connection-close-delimited body (see SPEC_FULL.md §12.1); in
// any other phase it reports ErrBadRequest, since EOF there means a
// truncated message.
func (p *Parser) Close() Event {
	d, ok := p.decoder.(*identityDecoder)
	if p.phase != phaseBody || !ok || !d.unbounded {
		p.phase = phaseError
		return errorEvent(ErrBadRequest)
	}

	p.phase = phaseDone
	return doneEvent(p.rest)
}

func (p *Parser) drive() Event {
	switch p.phase {
	case phaseFirstLine:
		return p.stepFirstLine()
	case phaseHeader:
		return p.stepHeader()
	case phaseBody:
		if p.emitHeadersCompleteNext {
			p.emitHeadersCompleteNext = false
			return headersCompleteEvent()
		}
		if p.emitDoneNext {
			p.emitDoneNext = false
			p.phase = phaseDone
			return doneEvent(p.rest)
		}
		return p.stepBody()
	case phaseDone:
		return doneEvent(p.rest)
	default:
		return errorEvent(p.err)
	}
}

func (p *Parser) fail(err error) Event {
	p.phase = phaseError
	p.err = err
	return errorEvent(err)
}

func trimCR(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		return line[:n-1]
	}
	return line
}
