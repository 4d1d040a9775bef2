package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/jsonschema"
	"github.com/signadot/jsonschema/format"
)

type MainConfig struct {
	Color          bool `cli:"name=color desc='print errors and values in color'"`
	NoMeta         bool `cli:"name=no-meta desc='skip meta-schema validation of schemas'"`
	CompatComments bool `cli:"name=compat-comments desc='accept ;-prefixed line comments'"`
	StrictKeys     bool `cli:"name=strict-keys desc='reject duplicate object keys'"`

	InFormat *format.Format

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fp **format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

func (cfg *MainConfig) compileOpts() []jsonschema.Option {
	var opts []jsonschema.Option
	if cfg.NoMeta {
		opts = append(opts, jsonschema.WithoutMetaValidation())
	}
	if cfg.CompatComments {
		opts = append(opts, jsonschema.WithCompatComments())
	}
	if cfg.StrictKeys {
		opts = append(opts, jsonschema.WithStrictKeys())
	}
	return opts
}

func (cfg *MainConfig) inFormat() format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	return format.JSONFormat
}

func (cfg *MainConfig) colorize() bool {
	return cfg.Color || isatty.IsTerminal(os.Stdout.Fd())
}

func (cfg *MainConfig) compileFile(path string) (*jsonschema.Schema, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if cfg.inFormat() == format.YAMLFormat {
		return jsonschema.CompileYAML(d, cfg.compileOpts()...)
	}
	return jsonschema.CompileBytes(d, cfg.compileOpts()...)
}
