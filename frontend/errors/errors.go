// Package errors is the compiler's diagnostic hierarchy (§4.5, §7): every
// stage reports failures as one of these concrete types instead of raising
// an exception, so the driver can surface a category prefix, an origin, and
// a message without caring which stage produced it.
package errors

import (
	"fmt"
	"io"

	"github.com/nvmlang/nvmc/frontend/token"
)

// CompilerError is implemented by every diagnostic in this package.
type CompilerError interface {
	error
	Write(w io.Writer)
}

// SyntaxError covers malformed tokens, missing punctuation, EOF where a
// production requires a token, unknown identifiers at use sites, missing
// main, and wrong argument counts.
type SyntaxError struct {
	Origin    token.Origin
	Localized bool
	Message   string
}

func NewSyntaxError(origin token.Origin, format string, args ...any) *SyntaxError {
	return &SyntaxError{Origin: origin, Localized: true, Message: fmt.Sprintf(format, args...)}
}

func NewUnlocalizedSyntaxError(format string, args ...any) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(format, args...)}
}

func (e *SyntaxError) Error() string {
	if e.Localized {
		return fmt.Sprintf("%s: syntax error: %s", e.Origin, e.Message)
	}
	return fmt.Sprintf("syntax error: %s", e.Message)
}

func (e *SyntaxError) Write(w io.Writer) {
	fmt.Fprintln(w, e.Error())
}

// RedefinitionError reports a name declared twice in the innermost scope
// (variables) or twice program-wide (functions). It carries both origins,
// or PriorInternal for a clash against a built-in.
type RedefinitionError struct {
	Name          string
	Origin        token.Origin
	PriorOrigin   token.Origin
	PriorInternal bool
}

func (e *RedefinitionError) Error() string {
	if e.PriorInternal {
		return fmt.Sprintf("%s: redefinition error: '%s' is already declared internally", e.Origin, e.Name)
	}
	return fmt.Sprintf("%s: redefinition error: '%s' already declared at %s", e.Origin, e.Name, e.PriorOrigin)
}

func (e *RedefinitionError) Write(w io.Writer) {
	fmt.Fprintln(w, e.Error())
}

// LogicError marks conditions that are unreachable in well-formed programs
// (unsupported operator arity, unknown operator kind). These are compiler
// bugs surfaced as fatal diagnostics, not user-facing mistakes.
type LogicError struct {
	Message string
}

func NewLogicError(format string, args ...any) *LogicError {
	return &LogicError{Message: fmt.Sprintf(format, args...)}
}

func (e *LogicError) Error() string {
	return fmt.Sprintf("internal error: %s", e.Message)
}

func (e *LogicError) Write(w io.Writer) {
	fmt.Fprintln(w, e.Error())
}

// CoercionError is a placeholder for future typed-value coercions. The
// numeric-only language never raises it today (§4.5).
type CoercionError struct {
	Origin  token.Origin
	Message string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s: coercion error: %s", e.Origin, e.Message)
}

func (e *CoercionError) Write(w io.Writer) {
	fmt.Fprintln(w, e.Error())
}

// ValueReassignmentError is a placeholder for future immutable bindings.
// Not raised by the current language (§4.5).
type ValueReassignmentError struct {
	Origin  token.Origin
	Message string
}

func (e *ValueReassignmentError) Error() string {
	return fmt.Sprintf("%s: reassignment error: %s", e.Origin, e.Message)
}

func (e *ValueReassignmentError) Write(w io.Writer) {
	fmt.Fprintln(w, e.Error())
}
