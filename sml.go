package sml

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/KimNorgaard/go-sml/ast"
	"github.com/KimNorgaard/go-sml/internal/parser"
)

// Load parses text into a Document. The document keeps referring to text,
// which must not be modified until the document is released.
//
// On failure the returned error is a *ParseError and no document is
// returned.
func Load(text []byte, opts ...Option) (*ast.Document, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	doc, err := parser.New(text, o.parserConfig()).Parse()
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadFile reads and parses the file at path. A missing file is reported
// as ErrFileNotFound, any other read failure as ErrUnreadable; both wrap
// the underlying error.
func LoadFile(path string, opts ...Option) (*ast.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("sml: %w: %w", ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("sml: %w: %w", ErrUnreadable, err)
	}
	return Load(data, opts...)
}

// LoadReader reads r to the end and parses what was read.
func LoadReader(r io.Reader, opts ...Option) (*ast.Document, error) {
	if r == nil {
		return nil, fmt.Errorf("sml: LoadReader(nil reader)")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("sml: %w: %w", ErrUnreadable, err)
	}
	return Load(data, opts...)
}

// Print returns the canonical text of doc.
func Print(doc *ast.Document, opts ...Option) ([]byte, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.Released() {
		return nil, fmt.Errorf("sml: Print(nil or released document)")
	}
	return newFormatter(o).format(doc.Root()), nil
}

// PrintTo writes the canonical text of doc to w.
func PrintTo(w io.Writer, doc *ast.Document, opts ...Option) error {
	out, err := Print(doc, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
