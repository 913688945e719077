package mdcode

import (
	"errors"
	"fmt"
)

// Sentinel errors reported while reading a document and resolving its blocks.
var (
	ErrStructural          = errors.New("malformed fence nesting")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrBlockArgument       = errors.New("invalid block options")
	ErrReferenceArgument   = errors.New("invalid reference arguments")
	ErrOrphanBlock         = errors.New("unnamed block without a preceding named block")
	ErrMissingContinue     = errors.New("unnamed block without --continue")
	ErrLanguageMismatch    = errors.New("language mismatch")
	ErrIndentMismatch      = errors.New("indentation mismatch")
	ErrUnknownReference    = errors.New("unknown reference")
	ErrSelfReference       = errors.New("block references itself")
	ErrRecursionLimit      = errors.New("recursion limit exceeded")
	ErrCycle               = errors.New("reference cycle")
)

// Error ties one of the sentinel errors to a line of the source document.
// Usage is set for option and argument errors and holds the flag usage text.
type Error struct {
	Kind  error
	Line  int
	Msg   string
	Usage string
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if len(e.Msg) != 0 {
		msg += ": " + e.Msg
	}

	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}

	if len(e.Usage) != 0 {
		msg += "\nusage:\n" + e.Usage
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Errorf returns an *Error of the given kind positioned at line.
func Errorf(kind error, line int, format string, args ...interface{}) error {
	return &Error{Kind: kind, Line: line, Msg: fmt.Sprintf(format, args...)}
}
