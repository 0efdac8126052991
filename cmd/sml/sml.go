package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
)

func smlMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	cfg.setup()
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// input is one document named on the command line, or stdin.
type input struct {
	name string
	data []byte
}

// readInputs reads every file in args, or stdin when args is empty.
func readInputs(cc *cli.Context, args []string) ([]input, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(cc.In)
		if err != nil {
			return nil, fmt.Errorf("unable to read stdin: %w", err)
		}
		return []input{{name: "-", data: data}}, nil
	}
	res := make([]input, 0, len(args))
	for _, arg := range args {
		in, err := readInput(cc, arg)
		if err != nil {
			return nil, err
		}
		res = append(res, in)
	}
	return res, nil
}

func readInput(cc *cli.Context, path string) (input, error) {
	if path == "-" {
		data, err := io.ReadAll(cc.In)
		if err != nil {
			return input{}, fmt.Errorf("unable to read stdin: %w", err)
		}
		return input{name: path, data: data}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return input{}, err
	}
	return input{name: path, data: data}, nil
}
