package main

import (
	"errors"
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/jsonschema/schema"
)

type CheckConfig struct {
	*MainConfig
	Check *cli.Command

	NoSat bool `cli:"name=no-sat desc='skip the satisfiability analysis'"`
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("check").
		WithAliases("c", "ch").
		WithSynopsis("check [opts] [schemas]").
		WithDescription("compile schemas, validate them against the draft 7 meta-schema, and analyze satisfiability").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
	cfg.Check = cmd
	return cmd
}

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: check needs at least one schema file", cli.ErrUsage)
	}
	failed := false
	for _, path := range args {
		s, err := cfg.compileFile(path)
		if err != nil {
			failed = true
			var ve *schema.ValidationError
			if errors.As(err, &ve) {
				printItems(cfg.MainConfig, cc, path, ve.Errors())
				continue
			}
			fmt.Fprintf(cc.Out, "%s: %v\n", path, err)
			continue
		}
		if !cfg.NoSat {
			if err := s.Analyze(); err != nil {
				failed = true
				fmt.Fprintf(cc.Out, "%s: %v\n", path, err)
				continue
			}
		}
		fmt.Fprintf(cc.Out, "%s: ok\n", path)
	}
	if failed {
		return errors.New("check failed")
	}
	return nil
}
