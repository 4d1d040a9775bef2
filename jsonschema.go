// Package jsonschema validates JSON documents against JSON Schema
// (draft 7) declarations.
//
// A schema document is compiled once into a validation graph:
//
//	s, err := jsonschema.Compile(`{"type": "integer", "minimum": 0}`)
//	if err != nil { ... }
//	if err := s.Validate(`5`); err != nil { ... }
//
// Validation failures are *schema.ValidationError values carrying one
// (message, source position) pair per failure, localized into the
// instance text. Compiled schemas are immutable and safe for
// concurrent validation.
package jsonschema

import (
	"fmt"
	"unicode/utf8"

	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/parse"
	"github.com/signadot/jsonschema/schema"
)

// Schema wraps a compiled schema together with the parse options its
// instances are read with.
type Schema struct {
	compiled *schema.Schema
	cfg      *config
}

type config struct {
	compileOpts []schema.CompileOption
	parseOpts   []parse.ParseOption
}

type Option func(*config)

// WithoutMetaValidation disables validation of the schema document
// against the embedded draft 7 meta-schema.
func WithoutMetaValidation() Option {
	return func(c *config) {
		c.compileOpts = append(c.compileOpts, schema.WithMetaValidation(false))
	}
}

// WithFetcher injects the fetcher used to retrieve remote $ref
// targets during compilation.
func WithFetcher(f schema.Fetcher) Option {
	return func(c *config) {
		c.compileOpts = append(c.compileOpts, schema.WithFetcher(f))
	}
}

// WithCompatComments accepts `;`-prefixed line comments in schema and
// instance documents.
func WithCompatComments() Option {
	return func(c *config) {
		c.parseOpts = append(c.parseOpts, parse.ParseCompatComments(true))
	}
}

// WithStrictKeys rejects duplicate object keys instead of keeping the
// last value seen.
func WithStrictKeys() Option {
	return func(c *config) {
		c.parseOpts = append(c.parseOpts, parse.ParseStrictKeys(true))
	}
}

// Compile parses and compiles a schema document.
func Compile(schemaSource string, opts ...Option) (*Schema, error) {
	cfg := &config{}
	for _, f := range opts {
		f(cfg)
	}
	node, err := parse.ParseString(schemaSource, cfg.parseOpts...)
	if err != nil {
		return nil, err
	}
	compiled, err := schema.Compile(node, cfg.compileOpts...)
	if err != nil {
		return nil, err
	}
	return &Schema{compiled: compiled, cfg: cfg}, nil
}

// CompileBytes interprets schemaSource as UTF-8 and compiles it.
func CompileBytes(schemaSource []byte, opts ...Option) (*Schema, error) {
	if !utf8.Valid(schemaSource) {
		return nil, fmt.Errorf("%w: schema source is not valid utf8", schema.ErrInvalidData)
	}
	return Compile(string(schemaSource), opts...)
}

// Validate parses instanceSource and checks it against the schema.
// It returns nil on success, a parse error, or a
// *schema.ValidationError listing every keyword failure.
func (s *Schema) Validate(instanceSource string) error {
	node, err := parse.ParseString(instanceSource, s.cfg.parseOpts...)
	if err != nil {
		return err
	}
	return s.compiled.Validate(node)
}

// ValidateBytes interprets instanceSource as UTF-8 and validates it.
func (s *Schema) ValidateBytes(instanceSource []byte) error {
	if !utf8.Valid(instanceSource) {
		return fmt.Errorf("%w: instance source is not valid utf8", schema.ErrInvalidData)
	}
	return s.Validate(string(instanceSource))
}

// ValidateNode checks an already parsed instance.
func (s *Schema) ValidateNode(node *ir.Node) error {
	return s.compiled.Validate(node)
}

// Compiled exposes the underlying validation graph.
func (s *Schema) Compiled() *schema.Schema {
	return s.compiled
}

// Analyze reports whether the schema can accept any instance at all;
// see schema.Analyze.
func (s *Schema) Analyze() error {
	return schema.Analyze(s.compiled)
}
