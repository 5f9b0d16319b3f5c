package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure.
type Kind int

const (
	Other Kind = iota
	IO
	MalformedInput
	Parse
	InvalidTimezone
	InvalidArgument
	AlreadyExists
	Build
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "i/o error"
	case MalformedInput:
		return "malformed input"
	case Parse:
		return "parse error"
	case InvalidTimezone:
		return "invalid timezone"
	case InvalidArgument:
		return "invalid argument"
	case AlreadyExists:
		return "already exists"
	case Build:
		return "build error"
	default:
		return "error"
	}
}

// Sentinels for errors.Is.
var (
	ErrIO              = &Error{Kind: IO}
	ErrMalformedInput  = &Error{Kind: MalformedInput}
	ErrParse           = &Error{Kind: Parse}
	ErrInvalidTimezone = &Error{Kind: InvalidTimezone}
	ErrInvalidArgument = &Error{Kind: InvalidArgument}
	ErrAlreadyExists   = &Error{Kind: AlreadyExists}
	ErrBuild           = &Error{Kind: Build}
)

// Error is the error type returned by every package of this module.
// Offset and Position are -1 when they do not apply.
type Error struct {
	Op       string // operation, e.g. "binloc.read"
	Kind     Kind
	Path     string // file involved, if any
	Offset   int64  // byte offset in the input stream
	Position int    // element index in a parsed list
	Zone     string // timezone identifier
	Msg      string
	Err      error
}

// E builds an *Error with Offset and Position unset.
func E(op string, kind Kind, msg string, err error) *Error {
	return &Error{Op: op, Kind: kind, Msg: msg, Err: err, Offset: -1, Position: -1}
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Path != "" {
		fmt.Fprintf(&b, " %q", e.Path)
	}
	if e.Offset >= 0 {
		fmt.Fprintf(&b, " at byte offset %d", e.Offset)
	}
	if e.Position >= 0 {
		fmt.Fprintf(&b, " at element %d", e.Position)
	}
	if e.Zone != "" {
		fmt.Fprintf(&b, " %q", e.Zone)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or Other.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Other
}
