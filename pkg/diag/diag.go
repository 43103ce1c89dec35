// Package diag defines the error categories shared by every stage of the
// pipeline and formats them as `[line L] <Category>: <message>`.
package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Category names the pipeline stage that produced a diagnostic.
type Category string

const (
	CategoryScan     Category = "Scanner error"
	CategoryParse    Category = "Parse error"
	CategoryResolver Category = "Resolver error"
	CategoryRuntime  Category = ""
)

// ScanError reports malformed source text.
type ScanError struct {
	Line    int
	Message string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("[line %d] %s: %s", e.Line, CategoryScan, e.Message)
}

// ParseError reports a grammar violation at a token. Where is the offending
// lexeme, or empty at end of input.
type ParseError struct {
	Line    int
	Where   string
	AtEnd   bool
	Message string
}

func (e *ParseError) Error() string {
	switch {
	case e.AtEnd:
		return fmt.Sprintf("[line %d] %s at end: %s", e.Line, CategoryParse, e.Message)
	case e.Where != "":
		return fmt.Sprintf("[line %d] %s at '%s': %s", e.Line, CategoryParse, e.Where, e.Message)
	default:
		return fmt.Sprintf("[line %d] %s: %s", e.Line, CategoryParse, e.Message)
	}
}

// StaticError is raised by the resolver before anything executes.
type StaticError struct {
	Line    int
	Message string
}

func (e *StaticError) Error() string {
	return fmt.Sprintf("[line %d] %s: %s", e.Line, CategoryResolver, e.Message)
}

// RuntimeKind classifies runtime failures.
type RuntimeKind int

const (
	TypeError RuntimeKind = iota
	UndefinedVariable
	UndefinedProperty
	ArityMismatch
	NotCallable
	StackOverflow
)

func (k RuntimeKind) String() string {
	switch k {
	case TypeError:
		return "TypeError"
	case UndefinedVariable:
		return "UndefinedVariable"
	case UndefinedProperty:
		return "UndefinedProperty"
	case ArityMismatch:
		return "ArityMismatch"
	case NotCallable:
		return "NotCallable"
	case StackOverflow:
		return "StackOverflow"
	default:
		return fmt.Sprintf("RuntimeKind(%d)", int(k))
	}
}

// RuntimeError halts the running program. The category is unqualified in
// its rendering.
type RuntimeError struct {
	Line    int
	Kind    RuntimeKind
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Line, e.Message)
}

func NewRuntimeError(line int, kind RuntimeKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Line: line, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ErrorList collects several front-end diagnostics from one pass.
type ErrorList []error

func (l ErrorList) Error() string {
	parts := make([]string, 0, len(l))
	for _, err := range l {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "\n")
}

func (l ErrorList) Unwrap() []error {
	return l
}

// Err returns nil for an empty list so callers can `return list.Err()`.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// CategoryOf reports the category of the first diagnostic found in err.
func CategoryOf(err error) (Category, bool) {
	var scanErr *ScanError
	var parseErr *ParseError
	var staticErr *StaticError
	var runtimeErr *RuntimeError
	switch {
	case errors.As(err, &scanErr):
		return CategoryScan, true
	case errors.As(err, &parseErr):
		return CategoryParse, true
	case errors.As(err, &staticErr):
		return CategoryResolver, true
	case errors.As(err, &runtimeErr):
		return CategoryRuntime, true
	default:
		return "", false
	}
}

// Exit codes follow the sysexits convention used by Lox tooling.
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitSoftware = 70
	ExitIOErr    = 74
)

// ExitCode maps an error from any pipeline stage to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	category, ok := CategoryOf(err)
	if !ok {
		return ExitIOErr
	}
	if category == CategoryRuntime {
		return ExitSoftware
	}
	return ExitDataErr
}
