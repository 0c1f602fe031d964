// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qrobdd

import (
	"errors"
	"fmt"
	"log"
)

// Sentinel errors identifying the broad class of failure. Use errors.Is to
// test against these; Manager.Error and Manager.Errored report on the
// latest chained message, the way the rudd package this is adapted from
// reports on its own b.error field.
var (
	// ErrOutOfMemory is returned when a node or cache allocation could not
	// be satisfied even after a garbage collection and a resize attempt.
	ErrOutOfMemory = errors.New("unable to grow the node table or a cache")
	// ErrUnsupportedVariant is returned by any request naming a variant
	// (or a variant combination, such as TZBDD with complement edges) this
	// package does not implement.
	ErrUnsupportedVariant = errors.New("unsupported variant")
	// ErrBadArgument is returned when a caller-supplied argument (a
	// variable index, a formula name, a permutation, ...) is out of range
	// or otherwise ill-formed.
	ErrBadArgument = errors.New("bad argument")
	// ErrUsageRuleViolated is returned when an operation would break a
	// usage rule the core relies on for soundness, such as registering a
	// formula under a name reserved for a constant, reusing a variable
	// name, copying between Managers of different Variants, swapping
	// variables that are not adjacent, or collecting while a local-info
	// scratchpad is active.
	ErrUsageRuleViolated = errors.New("usage rule violated")
)

// Error returns the text of the last error recorded on the Manager, or the
// empty string if none occurred since the last time the error was cleared.
func (m *Manager) Error() string {
	if m.err == nil {
		return ""
	}
	return m.err.Error()
}

// Errored reports whether an error occurred on the Manager since it was
// created or last cleared.
func (m *Manager) Errored() bool {
	return m.err != nil
}

// ClearError resets the Manager's recorded error, allowing it to continue
// to be used after a caller has inspected and handled a failure.
func (m *Manager) ClearError() {
	m.err = nil
}

// seterror chains a new error message onto any previously recorded one,
// wraps it with kind so the caller can test it with errors.Is, and returns
// the zero Node for convenience in call sites like `return m.seterror(...)`.
func (m *Manager) seterror(kind error, format string, a ...interface{}) Node {
	msg := fmt.Sprintf(format, a...)
	if m.err != nil {
		m.err = fmt.Errorf("%s: %w; %s", msg, kind, m.err.Error())
	} else {
		m.err = fmt.Errorf("%s: %w", msg, kind)
	}
	if debugEnabled {
		log.Println(m.err)
	}
	return Node{}
}

// wrapError is the error-returning counterpart of seterror, used by
// functions whose signature returns (T, error) instead of a bare Node.
func (m *Manager) wrapError(kind error, format string, a ...interface{}) error {
	m.seterror(kind, format, a...)
	return m.err
}
