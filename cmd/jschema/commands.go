package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "I",
		Aliases:     []string{"ifmt"},
		Description: "input format: json/j, yaml/y",
		Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
	})

	return cli.NewCommandAt(&cfg.Main, "jschema").
		WithSynopsis("jschema [opts] command [opts]").
		WithDescription("jschema is a tool for validating JSON documents against JSON Schema (draft 7).").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jschemaMain(cfg, cc, args)
		}).
		WithSubs(
			ValidateCommand(cfg),
			CheckCommand(cfg),
			DiffCommand(cfg),
			ServeCommand(cfg))
}

func jschemaMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
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
