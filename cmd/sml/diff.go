package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	texts := [2][]byte{}
	for i, arg := range args {
		in, err := readInput(cc, arg)
		if err != nil {
			return err
		}
		texts[i], err = format(in.data, cfg.loadOpts(), nil)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", arg, err)
		}
	}
	differs, err := writeDiff(cc.Out, string(texts[0]), string(texts[1]), cfg.useColor(cc.Out))
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// writeDiff reports whether a and b differ and, if they do, writes their
// line diff to w. Removed lines are prefixed by - and added lines by +.
func writeDiff(w io.Writer, a, b string, colored bool) (bool, error) {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	differs := false
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			differs = true
			break
		}
	}
	if !differs {
		return false, nil
	}

	del, ins := color.New(color.FgRed), color.New(color.FgGreen)
	if colored {
		del.EnableColor()
		ins.EnableColor()
	} else {
		del.DisableColor()
		ins.DisableColor()
	}

	for _, d := range diffs {
		var (
			prefix string
			c      *color.Color
		)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, c = "-", del
		case diffmatchpatch.DiffInsert:
			prefix, c = "+", ins
		default:
			prefix = " "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = prefix + strings.TrimSuffix(line, "\n")
			if c != nil {
				line = c.Sprint(line)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return true, err
			}
		}
	}
	return true, nil
}
