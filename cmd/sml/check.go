package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/KimNorgaard/go-sml"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	ins, err := readInputs(cc, args)
	if err != nil {
		return err
	}
	var w io.Writer = cc.Out
	if cfg.Quiet {
		w = io.Discard
	}
	failed := 0
	for _, in := range ins {
		if !checkOne(w, in, cfg.loadOpts()) {
			failed++
		}
	}
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkOne loads in and reports a failure to w as file:line:col: message.
func checkOne(w io.Writer, in input, opts []sml.Option) bool {
	doc, err := sml.Load(in.data, opts...)
	if err == nil {
		doc.Release()
		return true
	}
	var pe *sml.ParseError
	if errors.As(err, &pe) && pe.Line > 0 {
		msg := pe.Kind.Error()
		if pe.Message != "" {
			msg += ": " + pe.Message
		}
		fmt.Fprintf(w, "%s:%d:%d: %s\n", in.name, pe.Line, pe.Column, msg)
		return false
	}
	fmt.Fprintf(w, "%s: %v\n", in.name, err)
	return false
}
