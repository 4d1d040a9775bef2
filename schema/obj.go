package schema

import (
	"fmt"

	"github.com/signadot/jsonschema/ir"
)

// maxProperties / minProperties

var (
	maxPropertiesSym = &propCountSymbol{keywordName: "maxProperties", upper: true}
	minPropertiesSym = &propCountSymbol{keywordName: "minProperties"}
)

type propCountSymbol struct {
	keywordName
	upper bool
}

func (pcs *propCountSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	b, err := lengthBound(child)
	if err != nil {
		return nil, err
	}
	return &propCountOp{bound: b, upper: pcs.upper}, nil
}

type propCountOp struct {
	bound int64
	upper bool
}

func (op *propCountOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if doc.Type != ir.ObjectType {
		return nil
	}
	n := int64(len(doc.Fields))
	if op.upper && n > op.bound {
		return []ErrorItem{errItem(doc.Pos, "object must have at most %d properties", op.bound)}
	}
	if !op.upper && n < op.bound {
		return []ErrorItem{errItem(doc.Pos, "object must have at least %d properties", op.bound)}
	}
	return nil
}

// required

var requiredSym = &requiredSymbol{keywordName: "required"}

type requiredSymbol struct {
	keywordName
}

func (rs *requiredSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	if child.Type != ir.ArrayType {
		return nil, fmt.Errorf("must be an array of strings")
	}
	keys := make([]string, len(child.Values))
	for i, v := range child.Values {
		if v.Type != ir.StringType {
			return nil, fmt.Errorf("must be an array of strings")
		}
		keys[i] = v.String
	}
	return &requiredOp{keys: keys}, nil
}

type requiredOp struct {
	keys []string
}

func (op *requiredOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if doc.Type != ir.ObjectType {
		return nil
	}
	var items []ErrorItem
	for _, key := range op.keys {
		if ir.Get(doc, key) == nil {
			items = append(items, errItem(doc.Pos, "required property %q is missing", key))
		}
	}
	return items
}

// propertyNames

var propertyNamesSym = &propertyNamesSymbol{keywordName: "propertyNames"}

type propertyNamesSymbol struct {
	keywordName
}

func (ps *propertyNamesSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	return &propertyNamesOp{schema: cc.compile(child, path)}, nil
}

type propertyNamesOp struct {
	schema *Schema
}

// Each key is validated as a string value, carrying the key's own
// position.
func (op *propertyNamesOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if doc.Type != ir.ObjectType {
		return nil
	}
	var items []ErrorItem
	for _, field := range doc.Fields {
		items = append(items, op.schema.validate(field)...)
	}
	return items
}

// properties: children live on the enclosing schema, compiled by the
// structural pass.

type propertiesOp struct{}

func (propertiesOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if doc.Type != ir.ObjectType {
		return nil
	}
	var items []ErrorItem
	for i, field := range doc.Fields {
		child, ok := s.Properties[field.String]
		if !ok {
			continue
		}
		items = append(items, child.validate(doc.Values[i])...)
	}
	return items
}

// patternProperties

type patternPropertiesOp struct{}

func (patternPropertiesOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if doc.Type != ir.ObjectType {
		return nil
	}
	var items []ErrorItem
	for _, ps := range s.PatternProperties {
		for i, field := range doc.Fields {
			if !ps.Pattern.MatchString(field.String) {
				continue
			}
			items = append(items, ps.Schema.validate(doc.Values[i])...)
		}
	}
	return items
}

// additionalProperties

var additionalPropertiesSym = &additionalPropertiesSymbol{keywordName: "additionalProperties"}

type additionalPropertiesSymbol struct {
	keywordName
}

func (as *additionalPropertiesSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	return &additionalPropertiesOp{schema: cc.compile(child, path)}, nil
}

type additionalPropertiesOp struct {
	schema *Schema
}

// A key is additional when it is not in properties and matches no
// patternProperties regex.
func (op *additionalPropertiesOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if doc.Type != ir.ObjectType {
		return nil
	}
	var items []ErrorItem
	for i, field := range doc.Fields {
		if _, ok := s.Properties[field.String]; ok {
			continue
		}
		if matchesAnyPattern(s, field.String) {
			continue
		}
		sub := op.schema.validate(doc.Values[i])
		if len(sub) > 0 && op.schema.rejectsAll() {
			items = append(items, errItem(field.Pos, "additional property %q is not allowed", field.String))
			continue
		}
		items = append(items, sub...)
	}
	return items
}

func matchesAnyPattern(s *Schema, key string) bool {
	for _, ps := range s.PatternProperties {
		if ps.Pattern.MatchString(key) {
			return true
		}
	}
	return false
}

// dependencies

var dependenciesSym = &dependenciesSymbol{keywordName: "dependencies"}

type dependenciesSymbol struct {
	keywordName
}

func (ds *dependenciesSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	if child.Type != ir.ObjectType {
		return nil, fmt.Errorf("must be an object")
	}
	op := &dependenciesOp{
		props:   map[string][]string{},
		schemas: map[string]*Schema{},
	}
	for i, field := range child.Fields {
		v := child.Values[i]
		if v.Type == ir.ArrayType {
			keys := make([]string, len(v.Values))
			for j, kv := range v.Values {
				if kv.Type != ir.StringType {
					return nil, fmt.Errorf("%q: property dependencies must be strings", field.String)
				}
				keys[j] = kv.String
			}
			op.props[field.String] = keys
			continue
		}
		op.schemas[field.String] = cc.compile(v, append(path, field.String))
	}
	return op, nil
}

type dependenciesOp struct {
	props   map[string][]string
	schemas map[string]*Schema
}

func (op *dependenciesOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if doc.Type != ir.ObjectType {
		return nil
	}
	var items []ErrorItem
	for _, field := range doc.Fields {
		if keys, ok := op.props[field.String]; ok {
			for _, key := range keys {
				if ir.Get(doc, key) == nil {
					items = append(items, errItem(doc.Pos, "property %q requires property %q", field.String, key))
				}
			}
		}
		if dep, ok := op.schemas[field.String]; ok {
			items = append(items, dep.validate(doc)...)
		}
	}
	return items
}
