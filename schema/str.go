package schema

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/signadot/jsonschema/ir"
)

func lengthBound(child *ir.Node) (int64, error) {
	if child.Type != ir.NumberType || child.Int64 == nil {
		return 0, fmt.Errorf("must be an integer")
	}
	if *child.Int64 < 0 {
		return 0, fmt.Errorf("must be non-negative")
	}
	return *child.Int64, nil
}

// maxLength / minLength count unicode scalars.

var (
	maxLengthSym = &lengthSymbol{keywordName: "maxLength", upper: true}
	minLengthSym = &lengthSymbol{keywordName: "minLength"}
)

type lengthSymbol struct {
	keywordName
	upper bool
}

func (ls *lengthSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	b, err := lengthBound(child)
	if err != nil {
		return nil, err
	}
	return &lengthOp{bound: b, upper: ls.upper}, nil
}

type lengthOp struct {
	bound int64
	upper bool
}

func (op *lengthOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if doc.Type != ir.StringType {
		return nil
	}
	n := int64(utf8.RuneCountInString(doc.String))
	if op.upper && n > op.bound {
		return []ErrorItem{errItem(doc.Pos, "string must be at most %d characters long", op.bound)}
	}
	if !op.upper && n < op.bound {
		return []ErrorItem{errItem(doc.Pos, "string must be at least %d characters long", op.bound)}
	}
	return nil
}

// pattern

var patternSym = &patternSymbol{keywordName: "pattern"}

type patternSymbol struct {
	keywordName
}

func (ps *patternSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	if child.Type != ir.StringType {
		return nil, fmt.Errorf("must be a string")
	}
	re, err := regexp.Compile(child.String)
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %v", child.String, err)
	}
	return &patternOp{re: re}, nil
}

type patternOp struct {
	re *regexp.Regexp
}

// The regex is unanchored: it must match somewhere in the string.
func (op *patternOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if doc.Type != ir.StringType {
		return nil
	}
	if op.re.MatchString(doc.String) {
		return nil
	}
	return []ErrorItem{errItem(doc.Pos, "string does not match pattern %q", op.re.String())}
}
