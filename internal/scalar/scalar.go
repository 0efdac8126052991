// Package scalar decides the type of a raw SML value token and decodes it.
package scalar

import (
	"bytes"
	"strconv"

	"github.com/KimNorgaard/go-sml/ast"
	"github.com/KimNorgaard/go-sml/errors"
	"github.com/KimNorgaard/go-sml/internal/token"
)

// Scalar is a classified value token.
type Scalar struct {
	Kind  ast.Kind
	Int   int64
	Float float64

	// Str holds the bytes of a String. For an unquoted string it aliases the
	// raw token; for a quoted string it holds the decoded bytes.
	Str    []byte
	Quoted bool
}

// Classify decides the type of raw and decodes it. Decoded bytes of a
// quoted string are appended to dst, and the extended buffer is returned.
// A failure is a *errors.ParseError without position.
func Classify(raw []byte, dst []byte) (Scalar, []byte, error) {
	if len(raw) == 0 {
		return Scalar{}, dst, &errors.ParseError{Kind: errors.ErrUnknownToken, Message: "empty token"}
	}

	switch token.LookupKeyword(raw) {
	case token.NULL:
		return Scalar{Kind: ast.Null}, dst, nil
	case token.TRUE:
		return Scalar{Kind: ast.True}, dst, nil
	case token.FALSE:
		return Scalar{Kind: ast.False}, dst, nil
	}

	if s, ok := parseNumber(raw); ok {
		return s, dst, nil
	}

	if raw[0] != '"' {
		return Scalar{Kind: ast.String, Str: raw}, dst, nil
	}

	start := len(dst)
	dst, err := unquote(raw, dst)
	if err != nil {
		return Scalar{}, dst[:start], err
	}
	return Scalar{Kind: ast.String, Str: dst[start:], Quoted: true}, dst, nil
}

// IsNumber reports whether raw matches the numeric grammar
// -?[0-9]+(\.[0-9]+)? and fits the value range.
func IsNumber(raw []byte) bool {
	_, ok := parseNumber(raw)
	return ok
}

func parseNumber(raw []byte) (Scalar, bool) {
	i := 0
	if i < len(raw) && raw[i] == '-' {
		i++
	}
	intStart := i
	i = consumeDigits(raw, i)
	if i == intStart {
		return Scalar{}, false
	}

	isFloat := false
	if i < len(raw) && raw[i] == '.' {
		i++
		fracStart := i
		i = consumeDigits(raw, i)
		if i == fracStart {
			return Scalar{}, false
		}
		isFloat = true
	}
	if i != len(raw) {
		return Scalar{}, false
	}

	if isFloat {
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return Scalar{}, false
		}
		return Scalar{Kind: ast.Float, Float: f}, true
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return Scalar{}, false
	}
	return Scalar{Kind: ast.Int, Int: n}, true
}

func consumeDigits(s []byte, i int) int {
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		i++
	}
	return i
}

// unquote decodes a quoted token: "" is a literal quote and "/" a newline.
func unquote(raw, dst []byte) ([]byte, error) {
	for i := 1; i < len(raw); i++ {
		c := raw[i]
		if c != '"' {
			dst = append(dst, c)
			continue
		}
		switch {
		case i+1 < len(raw) && raw[i+1] == '"':
			dst = append(dst, '"')
			i++
		case i+2 < len(raw) && raw[i+1] == '/' && raw[i+2] == '"':
			dst = append(dst, '\n')
			i += 2
		case i == len(raw)-1:
			return dst, nil
		default:
			return dst, &errors.ParseError{
				Kind:    errors.ErrUnknownToken,
				Message: "unexpected " + strconv.Quote(string(raw[i+1:])) + " after closing quote",
			}
		}
	}
	return dst, &errors.ParseError{Kind: errors.ErrUnterminatedString, Message: string(raw)}
}

// NeedsQuoting reports whether s must be quoted to re-parse as the same
// string value.
func NeedsQuoting(s []byte) bool {
	if len(s) == 0 || s[0] == '"' {
		return true
	}
	if bytes.ContainsAny(s, " \t\n\r#") {
		return true
	}
	return token.LookupKeyword(s) != token.BARE || IsNumber(s)
}

// AppendQuoted appends the quoted form of s to dst.
func AppendQuoted(dst, s []byte) []byte {
	dst = append(dst, '"')
	for _, c := range s {
		switch c {
		case '"':
			dst = append(dst, '"', '"')
		case '\n':
			dst = append(dst, '"', '/', '"')
		default:
			dst = append(dst, c)
		}
	}
	return append(dst, '"')
}

// AppendString appends s in the form that re-parses as the same string.
func AppendString(dst, s []byte) []byte {
	if NeedsQuoting(s) {
		return AppendQuoted(dst, s)
	}
	return append(dst, s...)
}

// AppendFloat appends the shortest decimal form of f that re-parses as a
// float: it never uses an exponent and always holds a dot.
func AppendFloat(dst []byte, f float64) []byte {
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, 'f', -1, 64)
	if bytes.IndexByte(dst[start:], '.') < 0 {
		dst = append(dst, '.', '0')
	}
	return dst
}
