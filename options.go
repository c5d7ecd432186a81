package httpstream

// Mode constrains which start-line shape a Parser will recognize.
type Mode uint8

const (
	// ModeAuto tries a request-line first and falls back to a status-line
	// when the request-line attempt fails with ErrBadRequest.
	ModeAuto Mode = iota
	ModeRequest
	ModeResponse
)

// Options configures a Parser. The zero value is not ready to use; obtain a
// populated value from DefaultOptions and adjust fields, or use Option
// functions with New.
type Options struct {
	Mode Mode

	// MaxLineLength bounds the request-line or status-line, matching
	// RFC 7230's recommendation that servers reject excessively long lines
	// before ever reading them into memory. Header lines are not bounded
	// by this setting.
	MaxLineLength uint32

	// MaxEmptyLines bounds the number of leading CRLFs tolerated before the
	// start-line, guarding against a client holding a connection open by
	// trickling blank lines.
	MaxEmptyLines uint32
}

// DefaultOptions returns the Options indigo itself defaults to for the
// equivalent settings: a 4KiB start-line and up to 10 leading empty lines.
func DefaultOptions() Options {
	return Options{
		Mode:          ModeAuto,
		MaxLineLength: 4096,
		MaxEmptyLines: 10,
	}
}

// Option mutates an Options value in place.
type Option func(*Options)

func WithMode(mode Mode) Option {
	return func(o *Options) { o.Mode = mode }
}

func WithMaxLineLength(n uint32) Option {
	return func(o *Options) { o.MaxLineLength = n }
}

func WithMaxEmptyLines(n uint32) Option {
	return func(o *Options) { o.MaxEmptyLines = n }
}
