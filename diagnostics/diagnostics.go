// Package diagnostics provides recoverable syntax-error collection for DMQL
// parsing. Errors are accumulated instead of aborting the parse, so a single
// pass can report every problem in a query at once.
package diagnostics

import "fmt"

// Position is a line/column location in DMQL source text. Lines and columns
// are 1-based.
type Position struct {
	Line   int
	Column int
}

// SyntaxError is one recoverable parse error with its source location.
type SyntaxError struct {
	pos     Position
	message string
}

// NewSyntaxError creates a SyntaxError at the given position.
func NewSyntaxError(message string, pos Position) SyntaxError {
	return SyntaxError{pos: pos, message: message}
}

// Position returns the source location of the error.
func (e SyntaxError) Position() Position {
	return e.pos
}

// Message returns the error message without location formatting.
func (e SyntaxError) Message() string {
	return e.message
}

// String formats the error as "Line {line}:{col} - {message}".
func (e SyntaxError) String() string {
	return fmt.Sprintf("Line %d:%d - %s", e.pos.Line, e.pos.Column, e.message)
}

// Diagnostics accumulates syntax errors during one parse invocation.
// The zero value is ready to use.
type Diagnostics struct {
	errors []SyntaxError
}

// PushError appends an error to the collection.
func (d *Diagnostics) PushError(err SyntaxError) {
	d.errors = append(d.errors, err)
}

// HasErrors reports whether at least one error was recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.errors) > 0
}

// Errors returns the recorded errors in insertion order.
func (d *Diagnostics) Errors() []SyntaxError {
	return d.errors
}

// Strings returns the formatted "Line {line}:{col} - {message}" form of
// every recorded error, in insertion order.
func (d *Diagnostics) Strings() []string {
	if len(d.errors) == 0 {
		return nil
	}
	out := make([]string, len(d.errors))
	for i, e := range d.errors {
		out[i] = e.String()
	}
	return out
}
