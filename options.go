package sml

import (
	"fmt"

	"github.com/KimNorgaard/go-sml/internal/lexer"
	"github.com/KimNorgaard/go-sml/internal/parser"
	"github.com/KimNorgaard/go-sml/logger"
)

// Option configures loading, printing, and decoding.
type Option func(*options) error

type options struct {
	maxDepth             int
	maxTokens            int
	pageSize             int
	allowTrailingContent bool
	logger               logger.Logger

	indent   *int
	colors   *Colors
	rootName string
}

const defaultIndent = 2

func newOptions(opts []Option) (*options, error) {
	o := &options{
		maxDepth:  parser.DefaultMaxDepth,
		maxTokens: lexer.DefaultMaxTokens,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *options) parserConfig() parser.Config {
	return parser.Config{
		MaxDepth:             o.maxDepth,
		MaxTokensPerLine:     o.maxTokens,
		PageSize:             o.pageSize,
		AllowTrailingContent: o.allowTrailingContent,
		Logger:               o.logger,
	}
}

// MaxDepth returns an Option that sets how deeply elements may nest. It
// bounds both loading and decoding. The default is 256.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("sml: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

// MaxTokensPerLine returns an Option that sets how many tokens a single
// line may hold. The default is 256.
func MaxTokensPerLine(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("sml: max tokens per line must be a positive integer")
		}
		o.maxTokens = n
		return nil
	}
}

// PageSize returns an Option that sets the size in bytes of the arena pages
// a document is allocated from. The default is 4096.
func PageSize(bytes int) Option {
	return func(o *options) error {
		if bytes <= 0 {
			return fmt.Errorf("sml: page size must be a positive integer")
		}
		o.pageSize = bytes
		return nil
	}
}

// AllowTrailingContent returns an Option that stops loading at the end of
// the root element without looking at what follows. By default anything
// but blank lines and comments after the root is an error.
func AllowTrailingContent() Option {
	return func(o *options) error {
		o.allowTrailingContent = true
		return nil
	}
}

// WithLogger returns an Option that sets the logger load statistics are
// reported to. The default is logger.GetLogger().
func WithLogger(l logger.Logger) Option {
	return func(o *options) error {
		if l == nil {
			return fmt.Errorf("sml: logger must not be nil")
		}
		o.logger = l
		return nil
	}
}

// Indent returns an Option that sets the number of spaces each nesting
// level is indented by when printing. Zero disables indentation.
func Indent(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("sml: indent must be non-negative")
		}
		o.indent = &n
		return nil
	}
}

// WithColors returns an Option that highlights printed output. A nil c
// prints plain text.
func WithColors(c *Colors) Option {
	return func(o *options) error {
		o.colors = c
		return nil
	}
}

// RootName returns an Option that names the root element written by Marshal
// when the value has no name field set. It must be a valid element name.
func RootName(name string) Option {
	return func(o *options) error {
		if err := validElementName(name); err != nil {
			return err
		}
		o.rootName = name
		return nil
	}
}
