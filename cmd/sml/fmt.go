package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/KimNorgaard/go-sml"
)

func fmtCmd(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Write && len(args) == 0 {
		return fmt.Errorf("%w: fmt -w requires file arguments", cli.ErrUsage)
	}
	if cfg.Indent < 0 {
		return fmt.Errorf("%w: -indent must not be negative", cli.ErrUsage)
	}
	ins, err := readInputs(cc, args)
	if err != nil {
		return err
	}
	for _, in := range ins {
		printOpts := []sml.Option{sml.Indent(cfg.Indent)}
		if !cfg.Write {
			printOpts = append(printOpts, cfg.printOpts(cc.Out)...)
		}
		out, err := format(in.data, cfg.loadOpts(), printOpts)
		if err != nil {
			return fmt.Errorf("%s: %w", in.name, err)
		}
		if !cfg.Write {
			if _, err := cc.Out.Write(out); err != nil {
				return err
			}
			continue
		}
		if bytes.Equal(out, in.data) {
			continue
		}
		if err := writeInPlace(in.name, out); err != nil {
			return err
		}
		cfg.log.Info("formatted", "file", in.name)
	}
	return nil
}

// format loads data and returns its canonical text.
func format(data []byte, loadOpts, printOpts []sml.Option) ([]byte, error) {
	doc, err := sml.Load(data, loadOpts...)
	if err != nil {
		return nil, err
	}
	defer doc.Release()
	return sml.Print(doc, printOpts...)
}

func writeInPlace(path string, data []byte) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, fi.Mode().Perm())
}
