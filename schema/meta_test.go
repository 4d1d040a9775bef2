package schema

import (
	"testing"

	"github.com/signadot/jsonschema/parse"
)

func TestMetaSchemaCompiles(t *testing.T) {
	if _, err := MetaSchema(); err != nil {
		t.Fatal(err)
	}
}

// the meta-schema validates itself
func TestMetaSchemaClosure(t *testing.T) {
	meta, err := MetaSchema()
	if err != nil {
		t.Fatal(err)
	}
	node, err := parse.Parse(draft7Meta)
	if err != nil {
		t.Fatal(err)
	}
	if err := meta.Validate(node); err != nil {
		t.Errorf("meta-schema does not validate itself: %v", err)
	}
}

func TestMetaValidationRejectsBadSchemas(t *testing.T) {
	bad := []string{
		`{"type": "nope"}`,
		`{"type": 12}`,
		`{"required": [1]}`,
		`{"minLength": -1}`,
		`{"enum": []}`,
		`{"allOf": []}`,
	}
	for _, src := range bad {
		if _, err := Compile(mustParse(t, src)); err == nil {
			t.Errorf("%s: expected compile error", src)
		}
	}
}

func TestMetaValidationAcceptsGoodSchemas(t *testing.T) {
	good := []string{
		`true`,
		`false`,
		`{}`,
		`{"type": ["integer", "null"], "minimum": 0}`,
		`{"properties": {"a": {"$ref": "#"}}, "additionalProperties": false}`,
		`{"items": [{"type": "string"}], "additionalItems": false}`,
	}
	for _, src := range good {
		if _, err := Compile(mustParse(t, src)); err != nil {
			t.Errorf("%s: unexpected compile error %v", src, err)
		}
	}
}
