// Package cerr implements the closed error-kind taxonomy from spec §7:
// Undeclared, Redeclaration, TypeMismatch, NotAnLvalue, InvalidOperand,
// ArityMismatch, and InternalInvariant. Modeled on
// sentra-language-sentra's internal/errors package — a typed error value
// carrying a kind, a message, and (when available) a source line, rather
// than bare fmt.Errorf strings.
package cerr

import (
	"errors"
	"fmt"
)

// Kind is the closed set of fatal error categories the core can raise.
type Kind string

const (
	Undeclared        Kind = "Undeclared"
	Redeclaration     Kind = "Redeclaration"
	TypeMismatch      Kind = "TypeMismatch"
	NotAnLvalue       Kind = "NotAnLvalue"
	InvalidOperand    Kind = "InvalidOperand"
	ArityMismatch     Kind = "ArityMismatch"
	InternalInvariant Kind = "InternalInvariant"
)

// Error is a fatal compile error: the compiler has no partial recovery,
// so raising one always aborts code generation for the current
// translation unit (spec §7 "Propagation").
type Error struct {
	Kind    Kind
	Message string
	Line    int // 0 when no AST node was available to attribute the error to
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", e.Kind, e.Message, e.Line)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind Kind, line int, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...)}
}

func Undeclaredf(line int, format string, args ...any) *Error {
	return New(Undeclared, line, format, args...)
}

func Redeclarationf(line int, format string, args ...any) *Error {
	return New(Redeclaration, line, format, args...)
}

func TypeMismatchf(line int, format string, args ...any) *Error {
	return New(TypeMismatch, line, format, args...)
}

func NotAnLvaluef(line int, format string, args ...any) *Error {
	return New(NotAnLvalue, line, format, args...)
}

func InvalidOperandf(line int, format string, args ...any) *Error {
	return New(InvalidOperand, line, format, args...)
}

func ArityMismatchf(line int, format string, args ...any) *Error {
	return New(ArityMismatch, line, format, args...)
}

func InternalInvariantf(line int, format string, args ...any) *Error {
	return New(InternalInvariant, line, format, args...)
}

// IsKind reports whether err is a *Error of the given Kind, unwrapping
// through fmt.Errorf("...: %w", err) wrapping the way errors.As would.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == kind
}
