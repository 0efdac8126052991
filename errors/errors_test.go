package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/KimNorgaard/go-sml/errors"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	err := &errors.ParseError{
		Kind:    errors.ErrUnbalancedEnd,
		Message: "no open element",
		Line:    3,
		Column:  1,
	}
	require.EqualError(t, err, "sml: line 3, column 1: unbalanced end: no open element")
	require.True(t, stderrors.Is(err, errors.ErrUnbalancedEnd))
	require.False(t, stderrors.Is(err, errors.ErrTreeTooDeep))

	var pe *errors.ParseError
	require.True(t, stderrors.As(error(err), &pe))
	require.Equal(t, 3, pe.Line)
}

func TestParseError_WithoutPosition(t *testing.T) {
	err := &errors.ParseError{Kind: errors.ErrUnexpectedEOF}
	require.EqualError(t, err, "sml: unexpected end of input")
}
