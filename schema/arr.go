package schema

import (
	"fmt"
	"strconv"

	"github.com/signadot/jsonschema/ir"
)

// items

var itemsSym = &itemsSymbol{keywordName: "items"}

type itemsSymbol struct {
	keywordName
}

func (is *itemsSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	if child.Type == ir.ArrayType {
		schemas := make([]*Schema, len(child.Values))
		for i, v := range child.Values {
			schemas[i] = cc.compile(v, append(path, strconv.Itoa(i)))
		}
		s.itemsTuple = len(schemas)
		return &itemsTupleOp{schemas: schemas}, nil
	}
	return &itemsOp{schema: cc.compile(child, path)}, nil
}

// itemsOp applies a single schema to every element.
type itemsOp struct {
	schema *Schema
}

func (op *itemsOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if doc.Type != ir.ArrayType {
		return nil
	}
	var items []ErrorItem
	for _, v := range doc.Values {
		items = append(items, op.schema.validate(v)...)
	}
	return items
}

// itemsTupleOp applies the i-th schema to the i-th element; excess
// elements fall to additionalItems.
type itemsTupleOp struct {
	schemas []*Schema
}

func (op *itemsTupleOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if doc.Type != ir.ArrayType {
		return nil
	}
	var items []ErrorItem
	for i, v := range doc.Values {
		if i >= len(op.schemas) {
			break
		}
		items = append(items, op.schemas[i].validate(v)...)
	}
	return items
}

// additionalItems

var additionalItemsSym = &additionalItemsSymbol{keywordName: "additionalItems"}

type additionalItemsSymbol struct {
	keywordName
}

func (as *additionalItemsSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	return &additionalItemsOp{schema: cc.compile(child, path)}, nil
}

type additionalItemsOp struct {
	schema *Schema
}

// additionalItems only constrains elements beyond the items tuple; it
// is ignored when items is absent or a single schema.
func (op *additionalItemsOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if doc.Type != ir.ArrayType || s.itemsTuple < 0 {
		return nil
	}
	var items []ErrorItem
	for i := s.itemsTuple; i < len(doc.Values); i++ {
		sub := op.schema.validate(doc.Values[i])
		if len(sub) > 0 && op.schema.rejectsAll() {
			items = append(items, errItem(doc.Values[i].Pos, "additional item at index %d is not allowed", i))
			continue
		}
		items = append(items, sub...)
	}
	return items
}

// maxItems / minItems

var (
	maxItemsSym = &itemCountSymbol{keywordName: "maxItems", upper: true}
	minItemsSym = &itemCountSymbol{keywordName: "minItems"}
)

type itemCountSymbol struct {
	keywordName
	upper bool
}

func (ics *itemCountSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	b, err := lengthBound(child)
	if err != nil {
		return nil, err
	}
	return &itemCountOp{bound: b, upper: ics.upper}, nil
}

type itemCountOp struct {
	bound int64
	upper bool
}

func (op *itemCountOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if doc.Type != ir.ArrayType {
		return nil
	}
	n := int64(len(doc.Values))
	if op.upper && n > op.bound {
		return []ErrorItem{errItem(doc.Pos, "array must have at most %d items", op.bound)}
	}
	if !op.upper && n < op.bound {
		return []ErrorItem{errItem(doc.Pos, "array must have at least %d items", op.bound)}
	}
	return nil
}

// uniqueItems

var uniqueItemsSym = &uniqueItemsSymbol{keywordName: "uniqueItems"}

type uniqueItemsSymbol struct {
	keywordName
}

func (us *uniqueItemsSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	if child.Type != ir.BoolType {
		return nil, fmt.Errorf("must be a boolean")
	}
	if !child.Bool {
		return nil, nil
	}
	return &uniqueItemsOp{}, nil
}

type uniqueItemsOp struct{}

// Elements are bucketed by hash; equality confirms within a bucket.
func (op *uniqueItemsOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if doc.Type != ir.ArrayType {
		return nil
	}
	var items []ErrorItem
	buckets := map[uint64][]int{}
	for i, v := range doc.Values {
		h := v.Hash()
		for _, j := range buckets[h] {
			if ir.Equal(doc.Values[j], v) {
				items = append(items, errItem(v.Pos, "array items must be unique (items %d and %d are duplicates)", j, i))
				break
			}
		}
		buckets[h] = append(buckets[h], i)
	}
	return items
}

// contains

var containsSym = &containsSymbol{keywordName: "contains"}

type containsSymbol struct {
	keywordName
}

func (cs *containsSymbol) Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error) {
	return &containsOp{schema: cc.compile(child, path)}, nil
}

type containsOp struct {
	schema *Schema
}

func (op *containsOp) Validate(doc *ir.Node, s *Schema) []ErrorItem {
	if doc.Type != ir.ArrayType {
		return nil
	}
	for _, v := range doc.Values {
		if len(op.schema.validate(v)) == 0 {
			return nil
		}
	}
	return []ErrorItem{errItem(doc.Pos, "array contains no matching item")}
}
