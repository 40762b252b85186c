package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures the way callers need to react to them.
type ErrorKind string

const (
	// KindGeneric is a free-text failure (interface or VLAN grammar mismatches)
	KindGeneric ErrorKind = "generic"

	// KindIO is a file or stream failure
	KindIO ErrorKind = "io"

	// KindSerialize is a structured-format decode failure (CSV, YAML, JSON)
	KindSerialize ErrorKind = "serialize"

	// KindConnection is a failure to reach or authenticate with the equipment
	KindConnection ErrorKind = "connection"

	// KindChannel is a failure of a single command channel on a live session
	KindChannel ErrorKind = "channel"
)

// Error carries a kind and the operation that failed.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error of the given kind with a formatted cause.
func Errorf(kind ErrorKind, op, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// Wrap attaches a kind to err. A nil err stays nil.
func Wrap(kind ErrorKind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the outermost *Error in err's chain,
// KindGeneric when there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindGeneric
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// ExitError reports a command the equipment ran and answered with a
// non-zero exit status.
type ExitError struct {
	Command string
	Status  int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", e.Command, e.Status)
}

// ExitStatus extracts the remote exit status carried by err: 0 for nil,
// the status of an *ExitError, -1 otherwise.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	var e *ExitError
	if errors.As(err, &e) {
		return e.Status
	}
	return -1
}
