// Package parser builds a Document from SML source, one line at a time.
package parser

import (
	"fmt"
	"io"

	"github.com/KimNorgaard/go-sml/ast"
	"github.com/KimNorgaard/go-sml/errors"
	"github.com/KimNorgaard/go-sml/internal/lexer"
	"github.com/KimNorgaard/go-sml/internal/scalar"
	"github.com/KimNorgaard/go-sml/internal/token"
	"github.com/KimNorgaard/go-sml/logger"
)

// DefaultMaxDepth is the nesting limit used when none is given.
const DefaultMaxDepth = 256

// Config holds the limits and collaborators of one parse. Zero values
// select the defaults.
type Config struct {
	MaxDepth             int
	MaxTokensPerLine     int
	PageSize             int
	AllowTrailingContent bool
	Logger               logger.Logger
}

// frame is an open element and where it was opened.
type frame struct {
	elem ast.Element
	tok  token.Token
}

// Parser holds the state of the parser.
type Parser struct {
	src []byte
	l   *lexer.Lexer
	b   *ast.Builder
	cfg Config
	log logger.Logger

	stack   []frame
	scratch []byte
}

// New creates a new parser over src. The parser does not modify src, and
// the Document it returns keeps referring to it.
func New(src []byte, cfg Config) *Parser {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	log := cfg.Logger
	if log == nil {
		log = logger.GetLogger()
	}
	return &Parser{
		src:   src,
		l:     lexer.New(src, cfg.MaxTokensPerLine),
		cfg:   cfg,
		log:   log,
		stack: make([]frame, 0, min(cfg.MaxDepth, 32)),
	}
}

// Parse parses the whole source and returns the document. On failure no
// document is returned and everything allocated so far is released.
func (p *Parser) Parse() (doc *ast.Document, err error) {
	p.b = ast.NewBuilder(p.src, p.cfg.PageSize)
	defer func() {
		if err != nil {
			p.b.Discard()
			p.log.Debug("load failed", "error", err, "line", p.l.Line())
		}
	}()

	root, err := p.parseTree()
	if err != nil {
		return nil, err
	}
	if !p.cfg.AllowTrailingContent {
		if err := p.checkTrailing(); err != nil {
			return nil, err
		}
	}

	stats := p.b.Stats()
	p.log.Debug("document loaded",
		"bytes", stats.SourceBytes,
		"lines", p.l.Line(),
		"elements", stats.Elements,
		"attributes", stats.Attributes,
		"values", stats.Values,
		"string_bytes", stats.StringBytes,
		"pages", stats.Pages,
	)
	return p.b.Finish(root), nil
}

// parseTree consumes lines until the root element is closed.
func (p *Parser) parseTree() (ast.Element, error) {
	for {
		toks, err := p.l.NextLine()
		if err == io.EOF {
			return ast.Element{}, p.eofError()
		}
		if err != nil {
			return ast.Element{}, err
		}
		if len(toks) == 0 {
			continue
		}
		for _, tok := range toks {
			if tok.Unterminated {
				return ast.Element{}, errorAt(tok, errors.ErrUnterminatedString, string(tok.Literal(p.src)))
			}
		}

		if len(toks) > 1 {
			if err := p.parseAttribute(toks); err != nil {
				return ast.Element{}, err
			}
			continue
		}

		tok := toks[0]
		if !token.IsEnd(tok.Literal(p.src)) {
			if err := p.openElement(tok); err != nil {
				return ast.Element{}, err
			}
			continue
		}

		if len(p.stack) == 0 {
			return ast.Element{}, errorAt(tok, errors.ErrUnbalancedEnd, "no open element")
		}
		top := p.stack[len(p.stack)-1].elem
		p.stack = p.stack[:len(p.stack)-1]
		if len(p.stack) == 0 {
			return top, nil
		}
		p.b.AppendChild(p.stack[len(p.stack)-1].elem, top)
	}
}

func (p *Parser) openElement(tok token.Token) error {
	if len(p.stack) == p.cfg.MaxDepth {
		return errorAt(tok, errors.ErrTreeTooDeep, fmt.Sprintf("more than %d nested elements", p.cfg.MaxDepth))
	}
	p.stack = append(p.stack, frame{elem: p.b.NewElement(tok.Start, tok.End), tok: tok})
	return nil
}

func (p *Parser) parseAttribute(toks []token.Token) error {
	name := toks[0]
	if len(p.stack) == 0 {
		return errorAt(name, errors.ErrOrphanAttribute, string(name.Literal(p.src)))
	}
	parent := p.stack[len(p.stack)-1].elem
	vals := toks[1:]
	a := p.b.AddAttribute(parent, name.Start, name.End, len(vals))

	for i, tok := range vals {
		var (
			s   scalar.Scalar
			err error
		)
		s, p.scratch, err = scalar.Classify(tok.Literal(p.src), p.scratch[:0])
		if err != nil {
			return withPosition(err, tok)
		}
		switch s.Kind {
		case ast.Null:
			p.b.SetNull(a, i)
		case ast.True:
			p.b.SetBool(a, i, true)
		case ast.False:
			p.b.SetBool(a, i, false)
		case ast.Int:
			p.b.SetInt(a, i, s.Int)
		case ast.Float:
			p.b.SetFloat(a, i, s.Float)
		case ast.String:
			if s.Quoted {
				p.b.SetString(a, i, s.Str)
			} else {
				p.b.SetSourceString(a, i, tok.Start, tok.End)
			}
		}
	}
	return nil
}

// checkTrailing reports the first non-blank line after the root element.
func (p *Parser) checkTrailing() error {
	for {
		toks, err := p.l.NextLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if len(toks) > 0 {
			return errorAt(toks[0], errors.ErrTrailingContent, string(toks[0].Literal(p.src)))
		}
	}
}

func (p *Parser) eofError() error {
	if len(p.stack) == 0 {
		return &errors.ParseError{Kind: errors.ErrUnexpectedEOF, Message: "no root element"}
	}
	open := p.stack[len(p.stack)-1].tok
	return errorAt(open, errors.ErrUnexpectedEOF,
		fmt.Sprintf("element %s is not closed", open.Literal(p.src)))
}

func errorAt(tok token.Token, kind error, msg string) *errors.ParseError {
	return &errors.ParseError{Kind: kind, Message: msg, Line: tok.Line, Column: tok.Column}
}

// withPosition attaches the position of tok to a classifier error.
func withPosition(err error, tok token.Token) error {
	if pe, ok := err.(*errors.ParseError); ok {
		pe.Line, pe.Column = tok.Line, tok.Column
	}
	return err
}
