package schema

import (
	"fmt"
	"strings"

	"github.com/signadot/jsonschema/ir"
)

// type

var typeSym = &typeSymbol{keywordName: "type"}

type typeSymbol struct {
	keywordName
}

func (ts *typeSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	switch child.Type {
	case ir.StringType:
		if !knownTypeName(child.String) {
			return nil, fmt.Errorf("unknown type %q", child.String)
		}
		return &typeOp{names: []string{child.String}}, nil
	case ir.ArrayType:
		names := make([]string, 0, len(child.Values))
		for _, v := range child.Values {
			if v.Type != ir.StringType || !knownTypeName(v.String) {
				return nil, fmt.Errorf("type entries must be type names")
			}
			names = append(names, v.String)
		}
		return &typeOp{names: names}, nil
	}
	return nil, fmt.Errorf("must be a string or array of strings")
}

type typeOp struct {
	names []string
}

func knownTypeName(name string) bool {
	switch name {
	case "null", "boolean", "object", "array", "number", "string", "integer":
		return true
	}
	return false
}

// typeNameMatches maps draft 7 type names onto node variants:
// "number" matches both numeric variants, "integer" only Int64.
func typeNameMatches(name string, doc *ir.Node) bool {
	switch name {
	case "null":
		return doc.Type == ir.NullType
	case "boolean":
		return doc.Type == ir.BoolType
	case "object":
		return doc.Type == ir.ObjectType
	case "array":
		return doc.Type == ir.ArrayType
	case "string":
		return doc.Type == ir.StringType
	case "number":
		return doc.Type == ir.NumberType
	case "integer":
		return doc.Type == ir.NumberType && doc.Int64 != nil
	}
	return false
}

func (t *typeOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	for _, name := range t.names {
		if typeNameMatches(name, doc) {
			return nil
		}
	}
	return []ErrorItem{errItem(doc.Pos, "invalid type, expected %s", strings.Join(quoteAll(t.names), " or "))}
}

func quoteAll(names []string) []string {
	res := make([]string, len(names))
	for i, n := range names {
		res[i] = fmt.Sprintf("%q", n)
	}
	return res
}

// enum

var enumSym = &enumSymbol{keywordName: "enum"}

type enumSymbol struct {
	keywordName
}

func (es *enumSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	if child.Type != ir.ArrayType || len(child.Values) == 0 {
		return nil, fmt.Errorf("must be a non-empty array")
	}
	return &enumOp{members: child.Values}, nil
}

type enumOp struct {
	members []*ir.Node
}

func (e *enumOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	for _, m := range e.members {
		if ir.Equal(doc, m) {
			return nil
		}
	}
	return []ErrorItem{errItem(doc.Pos, "value is not one of the enumerated values")}
}

// const

var constSym = &constSymbol{keywordName: "const"}

type constSymbol struct {
	keywordName
}

func (cs *constSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	return &constOp{value: child}, nil
}

type constOp struct {
	value *ir.Node
}

func (c *constOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if ir.Equal(doc, c.value) {
		return nil
	}
	return []ErrorItem{errItem(doc.Pos, "value does not equal the const value")}
}
