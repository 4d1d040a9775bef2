package schema

import (
	"fmt"
	"sync"

	"github.com/signadot/jsonschema/ir"
)

// Validator applies one keyword's rule to an instance. The enclosing
// schema is passed so keywords that interact (additionalProperties
// with properties, additionalItems with items) can consult it.
// Validators return every failure they find; an empty result is a
// pass. A validator that does not apply to the instance's type
// returns nil.
type Validator interface {
	Validate(doc *ir.Node, s *Schema) []ErrorItem
}

// Symbol constructs a keyword's validator at compile time. Instance
// receives the keyword's sub-value, the schema under construction,
// the compile context and the node's pointer path. It may return a
// nil Validator for keywords that only record state on the schema.
type Symbol interface {
	String() string
	Instance(child *ir.Node, s *Schema, cc *compileCtx, path []string) (Validator, error)
}

var (
	mu sync.RWMutex
	d  = map[string]Symbol{}
)

func register(s Symbol) {
	mu.Lock()
	defer mu.Unlock()
	if _, present := d[s.String()]; present {
		panic(fmt.Sprintf("keyword %s registered twice", s))
	}
	d[s.String()] = s
}

func lookup(s string) Symbol {
	mu.RLock()
	defer mu.RUnlock()
	return d[s]
}

// keywordName implements the String part of Symbol.
type keywordName string

func (n keywordName) String() string {
	return string(n)
}

func init() {
	register(typeSym)
	register(enumSym)
	register(constSym)

	register(multipleOfSym)
	register(maximumSym)
	register(exclusiveMaximumSym)
	register(minimumSym)
	register(exclusiveMinimumSym)

	register(maxLengthSym)
	register(minLengthSym)
	register(patternSym)

	register(itemsSym)
	register(additionalItemsSym)
	register(maxItemsSym)
	register(minItemsSym)
	register(uniqueItemsSym)
	register(containsSym)

	register(maxPropertiesSym)
	register(minPropertiesSym)
	register(requiredSym)
	register(propertyNamesSym)
	register(additionalPropertiesSym)
	register(dependenciesSym)

	register(allOfSym)
	register(anyOfSym)
	register(oneOfSym)
	register(notSym)
	register(ifSym)
	register(thenSym)
	register(elseSym)
}

// annotations are recognized draft 7 keywords that assert nothing.
// They are skipped rather than compiled as nested schemas.
var annotations = map[string]bool{
	"default":          true,
	"examples":         true,
	"$comment":         true,
	"format":           true,
	"contentMediaType": true,
	"contentEncoding":  true,
	"readOnly":         true,
	"writeOnly":        true,
}
