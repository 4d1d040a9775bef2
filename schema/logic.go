package schema

import (
	"fmt"
	"strconv"

	"github.com/signadot/jsonschema/ir"
)

func compileBranches(child *ir.Node, cc *compileCtx, path []string) ([]*Schema, error) {
	if child.Type != ir.ArrayType || len(child.Values) == 0 {
		return nil, fmt.Errorf("must be a non-empty array of schemas")
	}
	branches := make([]*Schema, len(child.Values))
	for i, v := range child.Values {
		branches[i] = cc.compile(v, append(path, strconv.Itoa(i)))
	}
	return branches, nil
}

// allOf

var allOfSym = &allOfSymbol{keywordName: "allOf"}

type allOfSymbol struct {
	keywordName
}

func (as *allOfSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	branches, err := compileBranches(child, cc, path)
	if err != nil {
		return nil, err
	}
	return &allOfOp{branches: branches}, nil
}

type allOfOp struct {
	branches []*Schema
}

func (op *allOfOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	var items []ErrorItem
	for _, b := range op.branches {
		items = append(items, b.validate(doc)...)
	}
	return items
}

// anyOf

var anyOfSym = &anyOfSymbol{keywordName: "anyOf"}

type anyOfSymbol struct {
	keywordName
}

func (as *anyOfSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	branches, err := compileBranches(child, cc, path)
	if err != nil {
		return nil, err
	}
	return &anyOfOp{branches: branches}, nil
}

type anyOfOp struct {
	branches []*Schema
}

// Branch errors are discarded once any branch succeeds.
func (op *anyOfOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	var items []ErrorItem
	for _, b := range op.branches {
		sub := b.validate(doc)
		if len(sub) == 0 {
			return nil
		}
		items = append(items, sub...)
	}
	return append([]ErrorItem{errItem(doc.Pos, "value matches none of the given subschemas")}, items...)
}

// oneOf

var oneOfSym = &oneOfSymbol{keywordName: "oneOf"}

type oneOfSymbol struct {
	keywordName
}

func (os *oneOfSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	branches, err := compileBranches(child, cc, path)
	if err != nil {
		return nil, err
	}
	return &oneOfOp{branches: branches}, nil
}

type oneOfOp struct {
	branches []*Schema
}

// Only the count of successes matters; branch errors are discarded.
func (op *oneOfOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	count := 0
	for _, b := range op.branches {
		if len(b.validate(doc)) == 0 {
			count++
		}
	}
	if count == 1 {
		return nil
	}
	return []ErrorItem{errItem(doc.Pos, "value must match exactly one subschema (%d matched)", count)}
}

// not

var notSym = &notSymbol{keywordName: "not"}

type notSymbol struct {
	keywordName
}

func (ns *notSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	return &notOp{schema: cc.compile(child, path)}, nil
}

type notOp struct {
	schema *Schema
}

func (op *notOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if len(op.schema.validate(doc)) == 0 {
		return []ErrorItem{errItem(doc.Pos, "value must not validate against the subschema")}
	}
	return nil
}

// if / then / else record their subschema on the enclosing schema; a
// single condOp appended by the compiler evaluates them together.

var (
	ifSym   = &condSymbol{keywordName: "if"}
	thenSym = &condSymbol{keywordName: "then"}
	elseSym = &condSymbol{keywordName: "else"}
)

type condSymbol struct {
	keywordName
}

func (cs *condSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	compiled := cc.compile(child, path)
	switch cs.keywordName {
	case "if":
		s.condIf = compiled
	case "then":
		s.condThen = compiled
	case "else":
		s.condElse = compiled
	}
	return nil, nil
}

type condOp struct{}

// then/else apply only when if is present; a then or else without if
// asserts nothing.
func (condOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if s.condIf == nil {
		return nil
	}
	if len(s.condIf.validate(doc)) == 0 {
		if s.condThen != nil {
			return s.condThen.validate(doc)
		}
		return nil
	}
	if s.condElse != nil {
		return s.condElse.validate(doc)
	}
	return nil
}
