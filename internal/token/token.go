package token

import "bytes"

// Type is the type of a token.
type Type string

// Token is a lexical unit of one source line. It does not own its text:
// Start and End address the source buffer the lexer was created with.
type Token struct {
	Type   Type
	Start  int // byte offset of the first byte
	End    int // byte offset one past the last byte
	Line   int
	Column int

	// Unterminated is set on a QUOTED token whose closing quote is missing.
	Unterminated bool
}

const (
	BARE   Type = "BARE"   // hello, 12, 3.5, -
	QUOTED Type = "QUOTED" // "hello world"

	// Keywords
	TRUE  Type = "TRUE"
	FALSE Type = "FALSE"
	NULL  Type = "NULL"
)

var keywords = map[string]Type{
	"true":  TRUE,
	"false": FALSE,
	"-":     NULL,
}

// Literal returns the raw text of t within src.
func (t Token) Literal(src []byte) []byte {
	return src[t.Start:t.End]
}

// LookupKeyword checks the keywords table for a bare token.
// If the literal is a keyword, it returns the keyword's token type.
// Otherwise, it returns BARE. Keywords are case-sensitive.
func LookupKeyword(lit []byte) Type {
	if tok, ok := keywords[string(lit)]; ok {
		return tok
	}
	return BARE
}

var endKeyword = []byte("end")

// IsEnd reports whether lit is the element terminator, matched
// case-insensitively.
func IsEnd(lit []byte) bool {
	return bytes.EqualFold(lit, endKeyword)
}
