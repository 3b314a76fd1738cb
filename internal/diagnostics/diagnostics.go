// Package diagnostics defines the error surface the core reports through.
// Every judgment in the checker is fallible; failures are built here and
// propagate up as plain Go errors carrying a source position (when known)
// and a list of display fragments. The core only constructs these values —
// formatting them for a terminal, editor, or log line is left to whatever
// drives the checker.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/sweirich/autoenv/internal/pos"
)

// Code classifies the kind of failure, independent of its message text.
type Code string

const (
	CodeMismatch               Code = "mismatch"
	CodeNotAFunction           Code = "not-a-function"
	CodeNotAnEquality          Code = "not-an-equality"
	CodeNotADatatype           Code = "not-a-datatype"
	CodeArityMismatch          Code = "arity-mismatch"
	CodeAmbiguousConstructor   Code = "ambiguous-constructor"
	CodeMissingAnnotation      Code = "missing-annotation"
	CodeDuplicateBinding       Code = "duplicate-binding"
	CodeDuplicateConstructor   Code = "duplicate-constructor"
	CodeContradiction          Code = "contradiction"
	CodeIncompatibleRefinement Code = "incompatible-refinement"
	CodeUnmetObligation        Code = "unmet-obligation"
	CodePatternArity           Code = "pattern-arity"
	CodeInternal               Code = "internal"
)

// Fragment is one piece of an error's display payload — a labeled, already
// rendered term or context. The core never marshals structured terms across
// this boundary; it prints them once with String() and hands over text.
type Fragment struct {
	Label string
	Text  string
}

// Error is the value every checker judgment fails with. It is a plain Go
// error so judgments can be threaded with ordinary `if err != nil` control
// flow, but it retains enough structure (position, enclosing declaration,
// fragments) for a caller to build a rich report.
type Error struct {
	Code      Code
	Pos       pos.Position
	Message   string
	Decl      string
	Fragments []Fragment
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Pos.Known() {
		fmt.Fprintf(&b, "%s: ", e.Pos)
	}
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Decl != "" {
		fmt.Fprintf(&b, " (in %s)", e.Decl)
	}
	for _, f := range e.Fragments {
		fmt.Fprintf(&b, "\n  %s: %s", f.Label, f.Text)
	}
	return b.String()
}

// New builds a bare error of the given kind.
func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// At attaches a position, but only if one is not already set. Pos terms wrap
// their subterm on the way down through infer/check, so the innermost
// (most specific) wrapper is the one that should win.
func (e *Error) At(p pos.Position) *Error {
	if !e.Pos.Known() && p.Known() {
		e.Pos = p
	}
	return e
}

// InDecl records the enclosing top-level declaration, for the module driver
// to report which entry failed.
func (e *Error) InDecl(name string) *Error {
	if e.Decl == "" {
		e.Decl = name
	}
	return e
}

// With appends a labeled, pre-rendered fragment (typically a term's or a
// context's String()).
func (e *Error) With(label string, v fmt.Stringer) *Error {
	text := "<nil>"
	if v != nil {
		text = v.String()
	}
	e.Fragments = append(e.Fragments, Fragment{Label: label, Text: text})
	return e
}

// WithText appends a labeled fragment whose text is already a string.
func (e *Error) WithText(label, text string) *Error {
	e.Fragments = append(e.Fragments, Fragment{Label: label, Text: text})
	return e
}

// WithPos attaches a position to err if it is one of this package's errors,
// leaving any other error (or nil) untouched. Judgments that wrap a
// recursive call's error to extend its location use this instead of a bare
// type assertion.
func WithPos(err error, p pos.Position) error {
	if de, ok := err.(*Error); ok {
		return de.At(p)
	}
	return err
}

// WithDecl attaches an enclosing declaration name to err if it is one of
// this package's errors, leaving any other error (or nil) untouched.
func WithDecl(err error, name string) error {
	if de, ok := err.(*Error); ok {
		return de.InDecl(name)
	}
	return err
}

// Is reports whether err is a *Error with the given code, for callers (such
// as the three documented recovery points) that need to catch one specific
// failure and let everything else propagate.
func Is(err error, code Code) bool {
	de, ok := err.(*Error)
	return ok && de.Code == code
}

// Mismatch builds the error for two terms that were expected to agree (under
// equate or a check against an annotation) but didn't.
func Mismatch(expected, found fmt.Stringer) *Error {
	return New(CodeMismatch, "type mismatch").With("expected", expected).With("found", found)
}

// ArityMismatch builds the error for an argument list, pattern list, or
// telescope whose length doesn't match what was expected. kind names what
// was being counted ("constructor arguments", "type parameters", ...).
func ArityMismatch(kind string, expected, got int) *Error {
	return New(CodeArityMismatch, "%s: expected %s, got %s", kind, count(expected, "argument"), count(got, "argument"))
}

// count renders small counts the way error messages read naturally: "1
// argument" vs "3 arguments".
func count(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
