// Package httpstream implements a streaming, incremental HTTP/1.x message
// parser. It consumes arbitrary byte chunks as they arrive and emits a
// sequence of events — start-line, headers, body chunks — without ever
// requiring the full message to be buffered up front.
//
// The parser performs no I/O of its own. A caller owns the transport, reads
// bytes from it by whatever means it likes, and repeatedly calls Feed. There
// is no background goroutine and no internal synchronization: a single
// Parser must only ever be driven by one goroutine at a time, the same
// discipline indigo applies to its own per-connection parser instances.
package httpstream
