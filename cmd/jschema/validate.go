package main

import (
	"errors"
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/signadot/jsonschema"
	"github.com/signadot/jsonschema/format"
	"github.com/signadot/jsonschema/schema"
)

type ValidateConfig struct {
	*MainConfig
	Validate *cli.Command

	PatchFile string `cli:"name=patch desc='RFC 6902 patch applied to instances before validation'"`

	where *vm.Program
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "where",
		Description: "expression filtering reported errors, over {line, col, message}",
		Type:        cli.NamedFuncOpt(cfg.whereOpt, "(expr)"),
	})
	cmd := cli.NewCommand("validate").
		WithAliases("v", "va").
		WithSynopsis("validate [opts] <schema> [instances]").
		WithDescription("validate instance documents against a schema").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return validate(cfg, cc, args)
		})
	cfg.Validate = cmd
	return cmd
}

func (cfg *ValidateConfig) whereOpt(cc *cli.Context, a string) (any, error) {
	program, err := expr.Compile(a, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: bad -where expression: %v", cli.ErrUsage, err)
	}
	cfg.where = program
	return nil, nil
}

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: validate needs a schema file", cli.ErrUsage)
	}
	s, err := cfg.compileFile(args[0])
	if err != nil {
		return fmt.Errorf("compiling %s: %w", args[0], err)
	}
	failed := false
	for _, instPath := range args[1:] {
		ok, err := validateFile(cfg, cc, s, instPath)
		if err != nil {
			return err
		}
		if !ok {
			failed = true
		}
	}
	if failed {
		return errors.New("validation failed")
	}
	return nil
}

func validateFile(cfg *ValidateConfig, cc *cli.Context, s *jsonschema.Schema, instPath string) (bool, error) {
	d, err := os.ReadFile(instPath)
	if err != nil {
		return false, err
	}
	if cfg.PatchFile != "" {
		d, err = applyPatch(cfg.PatchFile, d)
		if err != nil {
			return false, fmt.Errorf("patching %s: %w", instPath, err)
		}
	}
	var verr error
	if cfg.inFormat() == format.YAMLFormat {
		verr = s.ValidateYAML(d)
	} else {
		verr = s.ValidateBytes(d)
	}
	if verr == nil {
		fmt.Fprintf(cc.Out, "%s: ok\n", instPath)
		return true, nil
	}
	var ve *schema.ValidationError
	if !errors.As(verr, &ve) {
		return false, verr
	}
	items, err := cfg.filterItems(ve.Errors())
	if err != nil {
		return false, err
	}
	if len(items) == 0 {
		fmt.Fprintf(cc.Out, "%s: ok (all errors filtered)\n", instPath)
		return true, nil
	}
	printItems(cfg.MainConfig, cc, instPath, items)
	return false, nil
}

func applyPatch(patchPath string, instance []byte) ([]byte, error) {
	pd, err := os.ReadFile(patchPath)
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.DecodePatch(pd)
	if err != nil {
		return nil, err
	}
	return patch.Apply(instance)
}

func (cfg *ValidateConfig) filterItems(items []schema.ErrorItem) ([]schema.ErrorItem, error) {
	if cfg.where == nil {
		return items, nil
	}
	var res []schema.ErrorItem
	for _, it := range items {
		line, col := it.Pos.LineCol()
		out, err := expr.Run(cfg.where, map[string]any{
			"line":    line,
			"col":     col,
			"message": it.Msg,
		})
		if err != nil {
			return nil, fmt.Errorf("-where: %w", err)
		}
		if out.(bool) {
			res = append(res, it)
		}
	}
	return res, nil
}

func printItems(cfg *MainConfig, cc *cli.Context, path string, items []schema.ErrorItem) {
	warn := fmt.Sprintf
	if cfg.colorize() {
		warn = color.New(color.FgRed).SprintfFunc()
	}
	for _, it := range items {
		line, col := it.Pos.LineCol()
		if line < 0 {
			fmt.Fprintf(cc.Out, "%s: %s\n", path, warn("%s", it.Msg))
			continue
		}
		fmt.Fprintf(cc.Out, "%s:%d:%d: %s\n", path, line+1, col+1, warn("%s", it.Msg))
	}
}
