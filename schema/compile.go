package schema

import (
	"regexp"

	"github.com/signadot/jsonschema/debug"
	"github.com/signadot/jsonschema/ir"
)

type compileConfig struct {
	fetcher      Fetcher
	metaValidate bool
}

type CompileOption func(*compileConfig)

// WithFetcher injects the remote reference fetcher. The default
// performs blocking HTTP GETs.
func WithFetcher(f Fetcher) CompileOption {
	return func(c *compileConfig) { c.fetcher = f }
}

// WithMetaValidation controls validation of the schema document
// against the embedded draft 7 meta-schema. On by default.
func WithMetaValidation(v bool) CompileOption {
	return func(c *compileConfig) { c.metaValidate = v }
}

type compileCtx struct {
	resolver *Resolver
	errs     []ErrorItem
}

func (cc *compileCtx) errf(item ErrorItem) {
	cc.errs = append(cc.errs, item)
}

// Compile compiles a parsed schema document into a validation graph.
// All compilation errors found in one pass (malformed constructs,
// unresolved references, meta-schema failures) are returned together
// as one *ValidationError.
func Compile(node *ir.Node, opts ...CompileOption) (*Schema, error) {
	cfg := &compileConfig{metaValidate: true}
	for _, f := range opts {
		f(cfg)
	}
	cc := &compileCtx{resolver: newResolver(cfg.fetcher)}
	s := cc.compile(node, nil)
	cc.errs = append(cc.errs, cc.resolver.ValidateAllRefs()...)
	if cfg.metaValidate {
		cc.metaValidate(node)
	}
	if len(cc.errs) > 0 {
		return nil, &ValidationError{Items: cc.errs}
	}
	return s, nil
}

func (cc *compileCtx) metaValidate(node *ir.Node) {
	meta, err := MetaSchema()
	if err != nil {
		cc.errf(errItem(node.Pos, "meta-schema unavailable: %v", err))
		return
	}
	if verr := meta.Validate(node); verr != nil {
		if ve, ok := verr.(*ValidationError); ok {
			cc.errs = append(cc.errs, ve.Items...)
			return
		}
		cc.errf(errItem(node.Pos, "meta-schema validation failed: %v", verr))
	}
}

// compile materializes one schema node, registers it under its
// pointer path, and recurses into child schemas. Errors accumulate on
// the context; the returned schema may be partial.
func (cc *compileCtx) compile(node *ir.Node, path []string) *Schema {
	s := newSchema(cc.resolver)
	cc.resolver.AddReference(path, s)
	if debug.Compile() {
		debug.Logf("compile: %s\n", PointerFromPath(path))
	}

	if node.Type == ir.BoolType {
		v := node.Bool
		s.Accept = &v
		return s
	}
	if node.Type != ir.ObjectType {
		cc.errf(errItem(node.Pos, "invalid schema: expected object or boolean, got %s", node.Type))
		return s
	}

	for i, field := range node.Fields {
		key, val := field.String, node.Values[i]
		switch key {
		case "$ref":
			if val.Type != ir.StringType {
				cc.errf(errItem(val.Pos, "invalid schema: $ref must be a string"))
				continue
			}
			s.RefID = val.String
			s.refPos = val.Pos
			cc.resolver.AddRefToResolve(val.String, val.Pos)
		case "$id", "id":
			cc.readString(val, key, &s.ID)
		case "$schema":
			cc.readString(val, key, &s.SchemaURI)
		case "title":
			cc.readString(val, key, &s.Title)
		case "description":
			cc.readString(val, key, &s.Description)
		case "properties":
			cc.compileProperties(val, s, path)
		case "patternProperties":
			cc.compilePatternProperties(val, s, path)
		case "definitions", "$defs":
			cc.compileDefinitions(val, s, append(path, key))
		default:
			if annotations[key] {
				continue
			}
			sym := lookup(key)
			if sym == nil {
				// unrecognized members compile as schemas anyway, so
				// custom definition locations stay addressable by $ref
				cc.compile(val, append(path, key))
				continue
			}
			v, err := sym.Instance(val, s, cc, append(path, key))
			if err != nil {
				cc.errf(errItem(val.Pos, "invalid schema: %s: %v", key, err))
				continue
			}
			if v != nil {
				s.Validators = append(s.Validators, v)
			}
		}
	}
	if s.condIf != nil {
		s.Validators = append(s.Validators, condOp{})
	}
	return s
}

func (cc *compileCtx) readString(val *ir.Node, key string, dst *string) {
	if val.Type != ir.StringType {
		cc.errf(errItem(val.Pos, "invalid schema: %s must be a string", key))
		return
	}
	*dst = val.String
}

func (cc *compileCtx) compileProperties(val *ir.Node, s *Schema, path []string) {
	if val.Type != ir.ObjectType {
		cc.errf(errItem(val.Pos, "invalid schema: properties must be an object"))
		return
	}
	for i, field := range val.Fields {
		child := cc.compile(val.Values[i], append(path, "properties", field.String))
		s.Properties[field.String] = child
	}
	s.Validators = append(s.Validators, propertiesOp{})
}

func (cc *compileCtx) compilePatternProperties(val *ir.Node, s *Schema, path []string) {
	if val.Type != ir.ObjectType {
		cc.errf(errItem(val.Pos, "invalid schema: patternProperties must be an object"))
		return
	}
	for i, field := range val.Fields {
		re, err := regexp.Compile(field.String)
		if err != nil {
			cc.errf(errItem(field.Pos, "invalid schema: bad pattern %q: %v", field.String, err))
			continue
		}
		child := cc.compile(val.Values[i], append(path, "patternProperties", field.String))
		s.PatternProperties = append(s.PatternProperties, &PatternSchema{
			Source:  field.String,
			Pattern: re,
			Schema:  child,
		})
	}
	s.Validators = append(s.Validators, patternPropertiesOp{})
}

func (cc *compileCtx) compileDefinitions(val *ir.Node, s *Schema, path []string) {
	if val.Type != ir.ObjectType {
		cc.errf(errItem(val.Pos, "invalid schema: definitions must be an object"))
		return
	}
	for i, field := range val.Fields {
		child := cc.compile(val.Values[i], append(path, field.String))
		s.Definitions[field.String] = child
	}
}
