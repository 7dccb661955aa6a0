// Package events carries the authentication audit trail.
//
// Handlers publish AuthEvents through an EventEmitter without knowing who
// consumes them. The server registers a LogHandler that writes one structured
// log line per event.
package events
