package httpstream

import (
	"github.com/indigo-web/iter"
	"github.com/indigo-web/utils/strcomp"
)

// HeaderPair is a single accumulated header name/value.
type HeaderPair struct {
	Name, Value string
}

// HeaderSet is an ambient convenience for callers who would rather
// accumulate Header events into a queryable collection than handle each one
// individually; it plays the same role indigo's own datastruct.KeyValue
// plays for request headers. It is not part of the core event protocol.
type HeaderSet struct {
	pairs []HeaderPair
}

// NewHeaderSet returns an empty HeaderSet, ready to Add to.
func NewHeaderSet() *HeaderSet {
	return &HeaderSet{}
}

// Add records a Header event's payload.
func (h *HeaderSet) Add(name, value string) {
	h.pairs = append(h.pairs, HeaderPair{Name: name, Value: value})
}

// Get returns the first value for name, matched case-insensitively.
func (h *HeaderSet) Get(name string) (string, bool) {
	for _, pair := range h.pairs {
		if strcomp.EqualFold(pair.Name, name) {
			return pair.Value, true
		}
	}
	return "", false
}

// Has reports whether any header with this name was recorded.
func (h *HeaderSet) Has(name string) bool {
	_, ok := h.Get(name)
	return ok
}

// Len reports how many pairs have been recorded.
func (h *HeaderSet) Len() int {
	return len(h.pairs)
}

// Iter returns an iterator over the recorded pairs, in receipt order.
func (h *HeaderSet) Iter() iter.Iterator[HeaderPair] {
	return iter.Slice(h.pairs)
}

// Clear empties the set without releasing its backing storage, so it can be
// reused for the next message on the same connection.
func (h *HeaderSet) Clear() {
	h.pairs = h.pairs[:0]
}
