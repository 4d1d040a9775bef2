package schema

import (
	"fmt"
	"math"

	"github.com/signadot/jsonschema/ir"
)

// multipleOfTolerance bounds the float remainder treated as zero.
const multipleOfTolerance = 1e-8

func numberBound(child *ir.Node) (float64, error) {
	if child.Type != ir.NumberType {
		return 0, fmt.Errorf("must be a number")
	}
	return child.AsFloat(), nil
}

// multipleOf

var multipleOfSym = &multipleOfSymbol{keywordName: "multipleOf"}

type multipleOfSymbol struct {
	keywordName
}

func (ms *multipleOfSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	m, err := numberBound(child)
	if err != nil {
		return nil, err
	}
	if m <= 0 {
		return nil, fmt.Errorf("must be greater than zero")
	}
	return &multipleOfOp{m: m}, nil
}

type multipleOfOp struct {
	m float64
}

func (op *multipleOfOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if !doc.IsNumber() {
		return nil
	}
	if doc.Int64 != nil && op.m == math.Trunc(op.m) {
		if *doc.Int64%int64(op.m) == 0 {
			return nil
		}
		return []ErrorItem{errItem(doc.Pos, "number must be a multiple of %v", op.m)}
	}
	rem := math.Abs(math.Mod(doc.AsFloat(), op.m))
	if rem > multipleOfTolerance && math.Abs(rem-op.m) > multipleOfTolerance {
		return []ErrorItem{errItem(doc.Pos, "number must be a multiple of %v", op.m)}
	}
	return nil
}

// bound covers the four range keywords, which differ only in
// direction and strictness.
type boundOp struct {
	bound     float64
	upper     bool
	exclusive bool
}

func (op *boundOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if !doc.IsNumber() {
		return nil
	}
	v := doc.AsFloat()
	switch {
	case op.upper && op.exclusive && v >= op.bound:
		return []ErrorItem{errItem(doc.Pos, "number must be less than %v", op.bound)}
	case op.upper && !op.exclusive && v > op.bound:
		return []ErrorItem{errItem(doc.Pos, "number must be less than or equal to %v", op.bound)}
	case !op.upper && op.exclusive && v <= op.bound:
		return []ErrorItem{errItem(doc.Pos, "number must be greater than %v", op.bound)}
	case !op.upper && !op.exclusive && v < op.bound:
		return []ErrorItem{errItem(doc.Pos, "number must be greater than or equal to %v", op.bound)}
	}
	return nil
}

type boundSymbol struct {
	keywordName
	upper     bool
	exclusive bool
}

func (bs *boundSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	b, err := numberBound(child)
	if err != nil {
		return nil, err
	}
	return &boundOp{bound: b, upper: bs.upper, exclusive: bs.exclusive}, nil
}

var (
	maximumSym          = &boundSymbol{keywordName: "maximum", upper: true}
	exclusiveMaximumSym = &boundSymbol{keywordName: "exclusiveMaximum", upper: true, exclusive: true}
	minimumSym          = &boundSymbol{keywordName: "minimum"}
	exclusiveMinimumSym = &boundSymbol{keywordName: "exclusiveMinimum", exclusive: true}
)
