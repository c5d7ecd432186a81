package httpstream

// ErrorKind classifies a ParseError. Unlike indigo's status.Code (an HTTP
// response status), these kinds describe a wire-framing failure the parser
// itself detected, before any notion of a response exists.
type ErrorKind uint8

const (
	KindBadRequest ErrorKind = iota
	KindLineTooLong
	KindInvalidContentLength
	KindPoorlyFormattedSize
	KindPoorlyFormattedChunkedSize
	KindContentDecoder
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindLineTooLong:
		return "line_too_long"
	case KindInvalidContentLength:
		return "invalid_content_length"
	case KindPoorlyFormattedSize:
		return "poorly_formatted_size"
	case KindPoorlyFormattedChunkedSize:
		return "poorly_formatted_chunked_size"
	case KindContentDecoder:
		return "content_decoder"
	default:
		return "unknown"
	}
}

// ParseError is returned as the payload of an Error event. It follows
// indigo's http/status.HTTPError shape: a concrete type with package-level
// sentinels, comparable with errors.Is, rather than ad-hoc fmt.Errorf calls.
type ParseError struct {
	Kind ErrorKind
	// Context carries the offending bytes, when keeping them is useful
	// (e.g. the malformed line). It may be nil.
	Context []byte
}

func newError(kind ErrorKind, context []byte) ParseError {
	return ParseError{Kind: kind, Context: context}
}

func (e ParseError) Error() string {
	return e.Kind.String()
}

func (e ParseError) Is(target error) bool {
	t, ok := target.(ParseError)
	return ok && t.Kind == e.Kind
}

var (
	ErrBadRequest                 = ParseError{Kind: KindBadRequest}
	ErrLineTooLong                = ParseError{Kind: KindLineTooLong}
	ErrInvalidContentLength       = ParseError{Kind: KindInvalidContentLength}
	ErrPoorlyFormattedSize        = ParseError{Kind: KindPoorlyFormattedSize}
	ErrPoorlyFormattedChunkedSize = ParseError{Kind: KindPoorlyFormattedChunkedSize}
)
