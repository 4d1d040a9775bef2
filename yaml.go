package jsonschema

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/schema"
)

// CompileYAML compiles a schema document written in YAML. The
// document is decoded and converted to the JSON data model; source
// positions are unavailable for YAML input.
func CompileYAML(schemaSource []byte, opts ...Option) (*Schema, error) {
	cfg := &config{}
	for _, f := range opts {
		f(cfg)
	}
	node, err := yamlToIR(schemaSource)
	if err != nil {
		return nil, err
	}
	compiled, err := schema.Compile(node, cfg.compileOpts...)
	if err != nil {
		return nil, err
	}
	return &Schema{compiled: compiled, cfg: cfg}, nil
}

// ValidateYAML validates a YAML instance document against the schema.
func (s *Schema) ValidateYAML(instanceSource []byte) error {
	node, err := yamlToIR(instanceSource)
	if err != nil {
		return err
	}
	return s.compiled.Validate(node)
}

func yamlToIR(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.Unmarshal(d, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrInvalidData, err)
	}
	return anyToIR(v)
}

func anyToIR(v any) (*ir.Node, error) {
	switch t := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(t), nil
	case string:
		return ir.FromString(t), nil
	case int64:
		return ir.FromInt(t), nil
	case int:
		return ir.FromInt(int64(t)), nil
	case uint64:
		if t > math.MaxInt64 {
			return ir.FromFloat(float64(t)), nil
		}
		return ir.FromInt(int64(t)), nil
	case float64:
		return ir.FromFloat(t), nil
	case []any:
		vals := make([]*ir.Node, 0, len(t))
		for _, e := range t {
			n, err := anyToIR(e)
			if err != nil {
				return nil, err
			}
			vals = append(vals, n)
		}
		return ir.FromSlice(vals), nil
	case map[string]any:
		kvs := make([]ir.KeyVal, 0, len(t))
		for _, key := range sortedKeys(t) {
			n, err := anyToIR(t[key])
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: ir.FromString(key), Val: n})
		}
		return ir.FromKeyVals(kvs), nil
	}
	return nil, fmt.Errorf("%w: unsupported yaml value %T", schema.ErrInvalidData, v)
}

// deterministic compilation for map-typed decodings
func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
