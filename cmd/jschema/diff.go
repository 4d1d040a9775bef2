package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/jsonschema/encode"
	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/parse"
)

type DiffConfig struct {
	*MainConfig
	Diff *cli.Command
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithSynopsis("diff <a> <b>").
		WithDescription("structurally compare two JSON documents, printing a character diff of their pretty-printed forms").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff takes exactly two files", cli.ErrUsage)
	}
	a, err := parseFile(cfg.MainConfig, args[0])
	if err != nil {
		return err
	}
	b, err := parseFile(cfg.MainConfig, args[1])
	if err != nil {
		return err
	}
	if ir.Equal(a, b) {
		return nil
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(encode.MustString(a), encode.MustString(b), false)
	if cfg.colorize() {
		fmt.Fprintln(cc.Out, dmp.DiffPrettyText(diffs))
	} else {
		for _, d := range diffs {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				fmt.Fprintf(cc.Out, "+%s", d.Text)
			case diffmatchpatch.DiffDelete:
				fmt.Fprintf(cc.Out, "-%s", d.Text)
			default:
				fmt.Fprint(cc.Out, d.Text)
			}
		}
		fmt.Fprintln(cc.Out)
	}
	return fmt.Errorf("%s and %s differ", args[0], args[1])
}

func parseFile(cfg *MainConfig, path string) (*ir.Node, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pOpts []parse.ParseOption
	if cfg.CompatComments {
		pOpts = append(pOpts, parse.ParseCompatComments(true))
	}
	if cfg.StrictKeys {
		pOpts = append(pOpts, parse.ParseStrictKeys(true))
	}
	return parse.Parse(d, pOpts...)
}
