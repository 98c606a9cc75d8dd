// Package errs defines the failure kinds raised while compiling a manifest
// and zobj into an alias table.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a compile failure.
type Kind int

const (
	// NotFound: trailer, DICTIONARY, OBJECT POOL, END or hierarchy missing.
	NotFound Kind = iota + 1
	// Syntax: malformed manifest line, pool header or numeric literal.
	Syntax
	// Unresolved: a call references a name absent from the dictionary.
	Unresolved
	// Argument: wrong argument count or an invalid argument value.
	Argument
	// UnknownOpcode: a call names no known function.
	UnknownOpcode
	// Capacity: the alias table does not fit its pool.
	Capacity
	// Duplicate: a pool label is already defined.
	Duplicate
)

var kindNames = map[Kind]string{
	NotFound:      "not found",
	Syntax:        "syntax",
	Unresolved:    "unresolved symbol",
	Argument:      "argument",
	UnknownOpcode: "unknown opcode",
	Capacity:      "capacity",
	Duplicate:     "duplicate definition",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a compile failure with optional source context.
type Error struct {
	Kind   Kind
	File   string // manifest or zobj name
	Line   int    // 1-based manifest line, 0 if not applicable
	Symbol string // dictionary name involved, if any
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an Error of kind k with a formatted message.
func New(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// At sets the source position on e unless one is already recorded.
func (e *Error) At(file string, line int) *Error {
	if e.File == "" {
		e.File = file
	}
	if e.Line == 0 {
		e.Line = line
	}
	return e
}

// KindOf reports the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Is reports whether err carries kind k.
func Is(err error, k Kind) bool {
	return KindOf(err) == k
}

// Locate attaches file and line to err when it is an *Error without a
// position. Other errors are wrapped as Syntax errors at that position.
func Locate(err error, file string, line int) error {
	var e *Error
	if errors.As(err, &e) {
		e.At(file, line)
		return err
	}
	return &Error{Kind: Syntax, File: file, Line: line, Msg: "invalid input", Err: err}
}
