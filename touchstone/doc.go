// Package touchstone implements a streaming, chunk-fed parser for
// Touchstone (SnP) network-parameter files, versions 1 and 2.
//
// A Parser is fed raw bytes through Receive as they arrive, normalizes and
// lexes them line by line, drives an internal state machine, and emits
// complete frames (reference resistances, sweep frequencies, parameter
// data, and noise data) to a caller-supplied Sink. The parser never reads
// a file itself and never buffers more than it has to: callers decide the
// chunk size.
package touchstone
