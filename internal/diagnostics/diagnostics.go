package diagnostics

import (
	"fmt"
	"strings"

	"github.com/funvibe/procheck/internal/token"
)

type ErrorCode string

const (
	// Lexer/parser errors
	ErrL001 ErrorCode = "L001" // illegal character / unterminated literal
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // no prefix parse function
	ErrP003 ErrorCode = "P003" // malformed type expression

	// Tag checker errors
	ErrT001 ErrorCode = "T001" // tag mismatch (inproc -> xproc without reveal)
	ErrT002 ErrorCode = "T002" // invalid tag target (collection or whole record)
	ErrT003 ErrorCode = "T003" // base type mismatch
	ErrT004 ErrorCode = "T004" // unresolved symbol / malformed call

	// Warnings
	WarnT001 ErrorCode = "W001" // redundant reveal of a non-inproc value
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// DiagnosticError is a single diagnostic with its source position.
// It implements error so checker internals can return it directly.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	Message string
	File    string
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Severity derives the level from the code: W-prefixed codes are
// warnings, everything else is an error.
func (e *DiagnosticError) Severity() Severity {
	if strings.HasPrefix(string(e.Code), "W") {
		return SeverityWarning
	}
	return SeverityError
}

func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

// HasErrors reports whether diags contains at least one error-severity
// diagnostic (warnings alone do not fail a check).
func HasErrors(diags []*DiagnosticError) bool {
	for _, d := range diags {
		if d.Severity() == SeverityError {
			return true
		}
	}
	return false
}
