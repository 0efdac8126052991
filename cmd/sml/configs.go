package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/KimNorgaard/go-sml"
	"github.com/KimNorgaard/go-sml/logger"
)

type MainConfig struct {
	Verbose  bool `cli:"name=v aliases=verbose desc='log load statistics to stderr'"`
	Color    bool `cli:"name=color desc='print with color'"`
	MaxDepth int  `cli:"name=depth desc='maximum element nesting'"`
	Trailing bool `cli:"name=trailing desc='ignore content after the root element'"`

	log logger.Logger

	Main *cli.Command
}

func (cfg *MainConfig) setup() {
	level := logger.InfoLevel
	if cfg.Verbose {
		level = logger.DebugLevel
	}
	cfg.log = logger.NewConsole(os.Stderr, level, !isatty.IsTerminal(os.Stderr.Fd()))
	logger.SetLogger(cfg.log)
}

func (cfg *MainConfig) loadOpts() []sml.Option {
	opts := []sml.Option{}
	if cfg.log != nil {
		opts = append(opts, sml.WithLogger(cfg.log))
	}
	if cfg.MaxDepth > 0 {
		opts = append(opts, sml.MaxDepth(cfg.MaxDepth))
	}
	if cfg.Trailing {
		opts = append(opts, sml.AllowTrailingContent())
	}
	return opts
}

// useColor reports whether output to w is highlighted: always with -color,
// never when -color was given as false, and otherwise when w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name != "color" {
				continue
			}
			if opt.Value != nil {
				return false
			}
			break
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (cfg *MainConfig) printOpts(w io.Writer) []sml.Option {
	if cfg.useColor(w) {
		return []sml.Option{sml.WithColors(sml.DefaultColors())}
	}
	return nil
}

type FmtConfig struct {
	*MainConfig

	Write  bool `cli:"name=w desc='write result to the source file instead of stdout'"`
	Indent int  `cli:"name=indent desc='spaces per nesting level'"`

	Fmt *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Quiet bool `cli:"name=q desc='only set the exit status'"`

	Check *cli.Command
}

type YAMLConfig struct {
	*MainConfig

	Indent int `cli:"name=indent desc='spaces per YAML nesting level'"`

	YAML *cli.Command
}

type FromYAMLConfig struct {
	*MainConfig

	Indent int `cli:"name=indent desc='spaces per SML nesting level'"`

	FromYAML *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}
