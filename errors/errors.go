// Package errors defines the error kinds reported while loading SML.
//
// Every failure of a load is a *ParseError (or, for I/O, an error wrapping
// ErrFileNotFound or ErrUnreadable) whose kind can be tested with the
// standard library's errors.Is.
package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	// ErrFileNotFound is reported when the source file does not exist.
	ErrFileNotFound = stderrors.New("file not found")
	// ErrUnreadable is reported when the source cannot be read.
	ErrUnreadable = stderrors.New("unreadable source")

	// ErrUnterminatedString is reported for a quoted string without its
	// closing quote.
	ErrUnterminatedString = stderrors.New("unterminated quoted string")
	// ErrUnknownToken is reported for a token that matches no value grammar.
	ErrUnknownToken = stderrors.New("unknown token")
	// ErrTooManyTokens is reported when a line exceeds the token capacity.
	ErrTooManyTokens = stderrors.New("too many tokens on line")
	// ErrTreeTooDeep is reported when elements nest beyond the depth limit.
	ErrTreeTooDeep = stderrors.New("tree too deep")
	// ErrUnbalancedEnd is reported for an end with no open element.
	ErrUnbalancedEnd = stderrors.New("unbalanced end")
	// ErrOrphanAttribute is reported for an attribute outside any element.
	ErrOrphanAttribute = stderrors.New("attribute outside element")
	// ErrUnexpectedEOF is reported when input ends before the root element
	// is closed, or holds no element at all.
	ErrUnexpectedEOF = stderrors.New("unexpected end of input")
	// ErrTrailingContent is reported for non-blank lines after the root
	// element's end.
	ErrTrailingContent = stderrors.New("content after root element")
)

// ParseError represents the error that aborted a load.
// It includes the position of the error.
type ParseError struct {
	Kind    error // one of the Err* kinds above
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	msg := "sml: "
	if e.Line > 0 {
		msg += fmt.Sprintf("line %d, column %d: ", e.Line, e.Column)
	}
	msg += e.Kind.Error()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns the error kind.
func (e *ParseError) Unwrap() error { return e.Kind }
