package schema

import (
	"regexp"

	"github.com/signadot/jsonschema/debug"
	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/token"
)

// Schema is one compiled validation graph node.
type Schema struct {
	ID          string
	SchemaURI   string
	Title       string
	Description string

	// RefID holds the $ref keyword value, unresolved until lookup.
	RefID  string
	refPos *token.Pos

	// Accept is set when the schema document was a bare boolean: a
	// bare true accepts everything, a bare false rejects everything.
	Accept *bool

	Properties        map[string]*Schema
	PatternProperties []*PatternSchema
	Definitions       map[string]*Schema

	Validators []Validator

	// itemsTuple is the tuple length when items used its array form,
	// -1 otherwise. additionalItems consults it at validation time.
	itemsTuple int

	condIf, condThen, condElse *Schema

	resolver *Resolver
}

// PatternSchema pairs a compiled patternProperties regex with its
// child schema.
type PatternSchema struct {
	Source  string
	Pattern *regexp.Regexp
	Schema  *Schema
}

func newSchema(r *Resolver) *Schema {
	return &Schema{
		Properties:  map[string]*Schema{},
		Definitions: map[string]*Schema{},
		itemsTuple:  -1,
		resolver:    r,
	}
}

// Resolver returns the root's reference resolver.
func (s *Schema) Resolver() *Resolver {
	return s.resolver
}

// Validate checks doc against the schema, returning nil on success or
// a *ValidationError carrying every failure found.
func (s *Schema) Validate(doc *ir.Node) error {
	return aggregate(s.validate(doc))
}

func (s *Schema) validate(doc *ir.Node) []ErrorItem {
	if s == nil || doc == nil {
		return nil
	}
	if s.Accept != nil {
		if *s.Accept {
			return nil
		}
		return []ErrorItem{errItem(doc.Pos, "value not allowed by schema")}
	}
	// $ref hides sibling validators
	if s.RefID != "" {
		if debug.Validate() {
			debug.Logf("validate: following $ref %s\n", s.RefID)
		}
		ref, err := s.resolver.GetSchema(s.RefID, s.refPos)
		if err != nil {
			return []ErrorItem{errItem(s.refPos, "unresolved reference %q", s.RefID)}
		}
		return ref.validate(doc)
	}
	var items []ErrorItem
	for _, v := range s.Validators {
		items = append(items, v.Validate(doc, s)...)
	}
	return items
}

// rejectsAll reports whether the schema is the bare boolean false.
func (s *Schema) rejectsAll() bool {
	return s.Accept != nil && !*s.Accept
}
