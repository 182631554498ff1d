// Package diag is the shared diagnostics vocabulary used by every
// front-end stage (lexer, parser, codegen, assembler): a source Position,
// a categorized Error, and an ErrorList that accumulates rather than
// aborts on the first failure.
package diag

import (
	"fmt"
	"strings"
)

// Position locates a point in a source file.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// ErrorKind categorizes a diagnostic so callers can filter or count by
// class without string matching.
type ErrorKind int

const (
	ErrorSyntax ErrorKind = iota
	ErrorUndefinedLabel
	ErrorDuplicateLabel
	ErrorUnknownType
	ErrorInvalidInstruction
	ErrorInvalidOperand
	ErrorTooManyErrors
)

// Error is one diagnostic with source position and optional source-line
// context.
type Error struct {
	Pos     Position
	Kind    ErrorKind
	Message string
	Context string
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: error: %s\n", e.Pos, e.Message))
	if e.Context != "" {
		sb.WriteString(fmt.Sprintf("    %s\n", e.Context))
	}
	return sb.String()
}

// NewError builds an Error with no source-line context.
func NewError(pos Position, kind ErrorKind, message string) *Error {
	return &Error{Pos: pos, Kind: kind, Message: message}
}

// NewErrorWithContext builds an Error that also carries the offending
// source line for display.
func NewErrorWithContext(pos Position, kind ErrorKind, message, context string) *Error {
	return &Error{Pos: pos, Kind: kind, Message: message, Context: context}
}

// MaxErrors caps how many diagnostics a single ErrorList accumulates
// before further errors collapse into a single ErrorTooManyErrors entry.
const MaxErrors = 32

// ErrorList accumulates diagnostics across a compilation stage instead of
// aborting at the first one.
type ErrorList struct {
	Errors []*Error
}

// Add appends err. When that append brings the list to MaxErrors, one
// terminal ErrorTooManyErrors entry is appended right after it, and every
// later Add is ignored.
func (el *ErrorList) Add(err *Error) {
	if len(el.Errors) >= MaxErrors {
		return
	}
	el.Errors = append(el.Errors, err)
	if len(el.Errors) == MaxErrors {
		el.Errors = append(el.Errors, &Error{
			Pos:     err.Pos,
			Kind:    ErrorTooManyErrors,
			Message: fmt.Sprintf("too many errors (limit %d), stopping", MaxErrors),
		})
	}
}

// HasErrors reports whether any diagnostic has been recorded.
func (el *ErrorList) HasErrors() bool { return len(el.Errors) > 0 }

// Error implements the error interface, rendering every accumulated
// diagnostic.
func (el *ErrorList) Error() string {
	var sb strings.Builder
	for _, e := range el.Errors {
		sb.WriteString(e.Error())
	}
	return sb.String()
}
