package touchstone

import (
	"errors"
	"fmt"
)

// ErrorKind identifies one of the fatal error conditions a Parser can
// report. All parser errors are fatal: once returned, the parser must not
// be fed further input without a Reset.
type ErrorKind string

const (
	// ErrBadHeader: the first non-comment line isn't a valid v1 option
	// line or v2 [Version] line.
	ErrBadHeader ErrorKind = "bad_header"
	// ErrBadVersion: a [Version] line names an unsupported version.
	ErrBadVersion ErrorKind = "bad_version"
	// ErrBadOptionLine: the option line's R token has a missing or
	// non-numeric value, or a keyword line carries an invalid value.
	// Unrecognized option-line tokens are ignored, not reported.
	ErrBadOptionLine ErrorKind = "bad_option_line"
	// ErrMissingRequiredKeyword: a keyword depends on another that hasn't
	// been seen yet (e.g. [Matrix Format] before [Number of Ports]).
	ErrMissingRequiredKeyword ErrorKind = "missing_required_keyword"
	// ErrReferenceBeforePortCount: [Reference] appeared before the port
	// count was known.
	ErrReferenceBeforePortCount ErrorKind = "reference_before_port_count"
	// ErrBadNumber: a data or reference token isn't a valid number.
	ErrBadNumber ErrorKind = "bad_number"
	// ErrInconsistentMatrixShape: a row's value count can't be reconciled
	// with the configured or inferred port count.
	ErrInconsistentMatrixShape ErrorKind = "inconsistent_matrix_shape"
	// ErrNoiseRequiresTwoPorts: noise data was encountered for a network
	// that isn't a 2-port.
	ErrNoiseRequiresTwoPorts ErrorKind = "noise_requires_two_ports"
	// ErrUnsupportedFeature: a recognized but unsupported keyword, such as
	// [Mixed-Mode Order].
	ErrUnsupportedFeature ErrorKind = "unsupported_feature"
	// ErrUnexpectedEndOfInput: End was called, or [End] was seen, with the
	// parser in a state that can't be closed out cleanly (e.g. mid-header).
	ErrUnexpectedEndOfInput ErrorKind = "unexpected_end_of_input"
)

// ParseError is returned for every fatal condition the parser detects.
type ParseError struct {
	Kind ErrorKind
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("touchstone: %s: %s", e.Kind, e.Msg)
}

func newErr(kind ErrorKind, format string, args ...interface{}) error {
	return &ParseError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a *ParseError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}
