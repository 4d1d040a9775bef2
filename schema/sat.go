package schema

// Schema Satisfiability
//
// A compiled schema can be impossible to satisfy without being a
// compile error, e.g.
//
//   {"allOf": [{"type": "string"}, {"type": "integer"}]}
//
// accepts nothing: no instance is both a string and an integer. The
// same holds for inescapable reference cycles such as
//
//   {"definitions": {"n": {"allOf": [{"$ref": "#/definitions/n"}]}},
//    "$ref": "#/definitions/n"}
//
// Analyze builds a boolean formula over the instance's primitive kind
// at the schema root and checks satisfiability with a SAT solver.
// References are expanded inline; a reference back to a schema
// already being expanded contributes constant false, which unifies
// the contradictory and cyclic cases: if no escape exists the formula
// is unsatisfiable.
//
// The encoding abstracts everything but type information (value
// range keywords, lengths and patterns contribute no constraints), so
// Analyze is advisory: an UNSAT result is a definite defect, a SAT
// result is not a proof of realizability. It is never part of
// Compile.

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/signadot/jsonschema/ir"
)

// instance kinds, one SAT variable each
var satKinds = []string{"null", "boolean", "integer", "float", "string", "array", "object"}

// Analyze reports whether the schema can accept at least one kind of
// instance. It returns nil when satisfiable and a descriptive error
// when the schema provably rejects everything.
func Analyze(s *Schema) error {
	b := newSatBuilder()
	formula := b.build(s)
	if b.err != nil {
		return b.err
	}
	if b.checkSat(formula) {
		return nil
	}
	return fmt.Errorf("%w: schema cannot accept any instance", ErrSchema)
}

type satBuilder struct {
	c        *logic.C
	vars     map[string]z.Lit
	visiting map[*Schema]bool
	err      error
}

func newSatBuilder() *satBuilder {
	b := &satBuilder{
		c:        logic.NewC(),
		vars:     map[string]z.Lit{},
		visiting: map[*Schema]bool{},
	}
	for _, k := range satKinds {
		b.vars[k] = b.c.Lit()
	}
	return b
}

func (b *satBuilder) build(s *Schema) z.Lit {
	if s == nil {
		return b.c.T
	}
	if s.Accept != nil {
		if *s.Accept {
			return b.c.T
		}
		return b.c.F
	}
	// a schema currently being expanded contributes false: recursion
	// with no escape is unsatisfiable
	if b.visiting[s] {
		return b.c.F
	}
	b.visiting[s] = true
	defer delete(b.visiting, s)

	if s.RefID != "" {
		ref, err := s.resolver.GetSchema(s.RefID, s.refPos)
		if err != nil {
			b.err = err
			return b.c.F
		}
		return b.build(ref)
	}
	lits := []z.Lit{}
	for _, v := range s.Validators {
		lits = append(lits, b.buildValidator(v))
	}
	if len(lits) == 0 {
		return b.c.T
	}
	return b.c.Ands(lits...)
}

func (b *satBuilder) buildValidator(v Validator) z.Lit {
	switch op := v.(type) {
	case *typeOp:
		lits := make([]z.Lit, 0, len(op.names))
		for _, name := range op.names {
			lits = append(lits, b.kindsOf(name)...)
		}
		return b.c.Ors(lits...)
	case *enumOp:
		lits := make([]z.Lit, 0, len(op.members))
		for _, m := range op.members {
			lits = append(lits, b.getVar(nodeKind(m)))
		}
		return b.c.Ors(lits...)
	case *constOp:
		return b.getVar(nodeKind(op.value))
	case *allOfOp:
		lits := make([]z.Lit, 0, len(op.branches))
		for _, branch := range op.branches {
			lits = append(lits, b.build(branch))
		}
		return b.c.Ands(lits...)
	case *anyOfOp:
		lits := make([]z.Lit, 0, len(op.branches))
		for _, branch := range op.branches {
			lits = append(lits, b.build(branch))
		}
		return b.c.Ors(lits...)
	case *oneOfOp:
		// approximated by at-least-one; exactly-one needs counting
		lits := make([]z.Lit, 0, len(op.branches))
		for _, branch := range op.branches {
			lits = append(lits, b.build(branch))
		}
		return b.c.Ors(lits...)
	case *notOp:
		return b.build(op.schema).Not()
	}
	// keywords that constrain values, not kinds
	return b.c.T
}

func (b *satBuilder) kindsOf(typeName string) []z.Lit {
	switch typeName {
	case "number":
		return []z.Lit{b.getVar("integer"), b.getVar("float")}
	default:
		return []z.Lit{b.getVar(typeName)}
	}
}

func nodeKind(n *ir.Node) string {
	switch n.Type {
	case ir.NullType:
		return "null"
	case ir.BoolType:
		return "boolean"
	case ir.StringType:
		return "string"
	case ir.ArrayType:
		return "array"
	case ir.ObjectType:
		return "object"
	case ir.NumberType:
		if n.Int64 != nil {
			return "integer"
		}
		return "float"
	}
	return "null"
}

func (b *satBuilder) getVar(kind string) z.Lit {
	return b.vars[kind]
}

func (b *satBuilder) checkSat(formula z.Lit) bool {
	g := gini.New()
	b.c.ToCnf(g)

	// the instance has exactly one kind: at least one of the kind
	// variables, and no two at once
	kindLits := make([]z.Lit, 0, len(satKinds))
	for _, k := range satKinds {
		kindLits = append(kindLits, b.vars[k])
	}
	for _, lit := range kindLits {
		g.Add(lit)
	}
	g.Add(0)
	for i := 0; i < len(kindLits); i++ {
		for j := i + 1; j < len(kindLits); j++ {
			g.Add(kindLits[i].Not())
			g.Add(kindLits[j].Not())
			g.Add(0)
		}
	}
	g.Assume(formula)
	return g.Solve() == 1
}
