package lexer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/KimNorgaard/go-sml/errors"
	"github.com/KimNorgaard/go-sml/internal/token"
)

// DefaultMaxTokens is the per-line token capacity used when none is given.
const DefaultMaxTokens = 256

// Lexer splits SML source into lines of tokens. It never modifies or copies
// the input; tokens are offsets into it.
type Lexer struct {
	input     []byte
	pos       int // start of the next unread line
	line      int // number of the line last returned
	maxTokens int
	tokens    []token.Token
}

// New creates and returns a new Lexer. A maxTokens of zero or less selects
// DefaultMaxTokens.
func New(input []byte, maxTokens int) *Lexer {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Lexer{
		input:     input,
		maxTokens: maxTokens,
		tokens:    make([]token.Token, 0, min(maxTokens, 16)),
	}
}

// Line returns the 1-based number of the line last returned by NextLine.
func (l *Lexer) Line() int { return l.line }

// Consumed returns the number of input bytes consumed so far, line
// terminators included.
func (l *Lexer) Consumed() int { return l.pos }

// NextLine scans the next physical line and returns its tokens in source
// order. Blank and comment-only lines yield an empty slice. The returned
// slice is reused by the following call. At end of input NextLine returns
// io.EOF.
func (l *Lexer) NextLine() ([]token.Token, error) {
	if l.pos >= len(l.input) {
		return nil, io.EOF
	}
	l.line++
	l.tokens = l.tokens[:0]

	lineStart := l.pos
	lineEnd := len(l.input)
	if i := bytes.IndexByte(l.input[lineStart:], '\n'); i >= 0 {
		lineEnd = lineStart + i
		l.pos = lineEnd + 1
	} else {
		l.pos = lineEnd
	}
	if lineEnd > lineStart && l.input[lineEnd-1] == '\r' {
		lineEnd--
	}

	if err := l.scanLine(lineStart, lineEnd); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *Lexer) scanLine(lineStart, lineEnd int) error {
	var (
		cur      token.Token
		inToken  bool
		inString bool
	)
	finish := func(end int) {
		cur.End = end
		if cur.Type != token.QUOTED {
			cur.Type = token.LookupKeyword(l.input[cur.Start:cur.End])
		}
		l.tokens = append(l.tokens, cur)
		inToken = false
	}

	i := lineStart
scan:
	for ; i < lineEnd; i++ {
		ch := l.input[i]
		switch {
		case inString:
			if ch != '"' {
				continue
			}
			switch {
			case i+1 < lineEnd && l.input[i+1] == '"':
				i++ // escaped quote
			case i+2 < lineEnd && l.input[i+1] == '/' && l.input[i+2] == '"':
				i += 2 // escaped newline
			default:
				inString = false
			}
		case ch == '#':
			break scan
		case ch == ' ' || ch == '\t' || ch == '\r':
			if inToken {
				finish(i)
			}
		case !inToken:
			if len(l.tokens) == l.maxTokens {
				return &errors.ParseError{
					Kind:    errors.ErrTooManyTokens,
					Message: fmt.Sprintf("line holds more than %d tokens", l.maxTokens),
					Line:    l.line,
					Column:  i - lineStart + 1,
				}
			}
			cur = token.Token{Type: token.BARE, Start: i, Line: l.line, Column: i - lineStart + 1}
			inToken = true
			if ch == '"' {
				cur.Type = token.QUOTED
				inString = true
			}
		}
	}
	if inToken {
		cur.Unterminated = inString
		finish(i)
	}
	return nil
}
