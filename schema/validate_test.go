package schema

import (
	"strings"
	"testing"
)

type validateTest struct {
	schema string
	inst   string
	valid  bool
	// mention, when non-empty, must appear in the error text
	mention string
}

func runValidateTests(t *testing.T, vts []validateTest) {
	t.Helper()
	for _, vt := range vts {
		s := compileNoMeta(t, vt.schema)
		err := s.Validate(mustParse(t, vt.inst))
		if vt.valid {
			if err != nil {
				t.Errorf("%s / %s: unexpected error %v", vt.schema, vt.inst, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("%s / %s: expected error", vt.schema, vt.inst)
			continue
		}
		if vt.mention != "" && !strings.Contains(err.Error(), vt.mention) {
			t.Errorf("%s / %s: error %q does not mention %q", vt.schema, vt.inst, err, vt.mention)
		}
	}
}

func TestValidateNumbers(t *testing.T) {
	runValidateTests(t, []validateTest{
		{schema: `{"type":"integer","minimum":0,"maximum":10}`, inst: `5`, valid: true},
		{schema: `{"type":"integer","minimum":0,"maximum":10}`, inst: `11`, mention: "less than or equal to 10"},
		{schema: `{"type":"integer","minimum":0,"maximum":10}`, inst: `"5"`, mention: "integer"},
		{schema: `{"minimum": 1.5}`, inst: `1.5`, valid: true},
		{schema: `{"exclusiveMinimum": 1.5}`, inst: `1.5`, mention: "greater than 1.5"},
		{schema: `{"exclusiveMaximum": 3}`, inst: `3`, mention: "less than 3"},
		{schema: `{"maximum": 3}`, inst: `3`, valid: true},
		{schema: `{"multipleOf": 2}`, inst: `8`, valid: true},
		{schema: `{"multipleOf": 2}`, inst: `7`, mention: "multiple of 2"},
		{schema: `{"multipleOf": 1.5}`, inst: `4.5`, valid: true},
		{schema: `{"multipleOf": 0.5}`, inst: `4.75`, mention: "multiple"},
		// keyword does not apply to other instance types
		{schema: `{"maximum": 3}`, inst: `"xyz"`, valid: true},
		{schema: `{"multipleOf": 2}`, inst: `null`, valid: true},
	})
}

func TestValidateStrings(t *testing.T) {
	runValidateTests(t, []validateTest{
		{schema: `{"maxLength": 3}`, inst: `"abc"`, valid: true},
		{schema: `{"maxLength": 3}`, inst: `"abcd"`, mention: "at most 3"},
		{schema: `{"minLength": 2}`, inst: `"a"`, mention: "at least 2"},
		// lengths count scalars, not bytes
		{schema: `{"maxLength": 3}`, inst: `"ééé"`, valid: true},
		{schema: `{"minLength": 4}`, inst: `"ééé"`, mention: "at least 4"},
		{schema: `{"pattern": "^a+$"}`, inst: `"aaa"`, valid: true},
		{schema: `{"pattern": "b"}`, inst: `"abc"`, valid: true},
		{schema: `{"pattern": "^b"}`, inst: `"abc"`, mention: "pattern"},
		{schema: `{"maxLength": 3}`, inst: `12345`, valid: true},
	})
}

func TestValidateArrays(t *testing.T) {
	runValidateTests(t, []validateTest{
		{schema: `{"items": {"type": "string"}}`, inst: `["a","b"]`, valid: true},
		{schema: `{"items": {"type": "string"}}`, inst: `["a",1]`, mention: "string"},
		{schema: `{"items": [{"type": "string"}, {"type": "integer"}]}`, inst: `["a", 1]`, valid: true},
		{schema: `{"items": [{"type": "string"}, {"type": "integer"}]}`, inst: `[1, "a"]`, valid: false},
		// excess elements accepted without additionalItems
		{schema: `{"items": [{"type": "string"}]}`, inst: `["a", 1, null]`, valid: true},
		{schema: `{"items": [{"type": "string"}], "additionalItems": false}`, inst: `["a"]`, valid: true},
		{schema: `{"items": [{"type": "string"}], "additionalItems": false}`, inst: `["a", 1]`, mention: "additional item"},
		{schema: `{"items": [{"type": "string"}], "additionalItems": {"type": "integer"}}`, inst: `["a", 1, 2]`, valid: true},
		{schema: `{"items": [{"type": "string"}], "additionalItems": {"type": "integer"}}`, inst: `["a", 1, null]`, valid: false},
		// additionalItems without tuple form is ignored
		{schema: `{"items": {"type": "string"}, "additionalItems": false}`, inst: `["a", "b"]`, valid: true},
		{schema: `{"items": false}`, inst: `[]`, valid: true},
		{schema: `{"items": false}`, inst: `[1]`, valid: false},
		{schema: `{"maxItems": 2}`, inst: `[1,2,3]`, mention: "at most 2"},
		{schema: `{"minItems": 2}`, inst: `[1]`, mention: "at least 2"},
		{schema: `{"uniqueItems": true}`, inst: `[1, 2, 3]`, valid: true},
		{schema: `{"uniqueItems": true}`, inst: `[1, 2, 1]`, mention: "unique"},
		// 1 and 1.0 are distinct
		{schema: `{"uniqueItems": true}`, inst: `[1, 1.0]`, valid: true},
		{schema: `{"uniqueItems": true}`, inst: `[{"a": 1}, {"a": 1}]`, valid: false},
		{schema: `{"uniqueItems": false}`, inst: `[1, 1]`, valid: true},
		{schema: `{"contains": {"type": "integer"}}`, inst: `["a", 1]`, valid: true},
		{schema: `{"contains": {"type": "integer"}}`, inst: `["a", "b"]`, mention: "contains"},
		{schema: `{"minItems": 1}`, inst: `{}`, valid: true},
	})
}

func TestValidateObjects(t *testing.T) {
	runValidateTests(t, []validateTest{
		{schema: `{"required": ["n"]}`, inst: `{"n": 1}`, valid: true},
		{schema: `{"required": ["n"]}`, inst: `{}`, mention: `required property "n"`},
		{schema: `{"maxProperties": 1}`, inst: `{"a":1,"b":2}`, mention: "at most 1"},
		{schema: `{"minProperties": 1}`, inst: `{}`, mention: "at least 1"},
		{schema: `{"properties": {"n": {"type": "number"}}}`, inst: `{"n": 1.5}`, valid: true},
		{schema: `{"properties": {"n": {"type": "number"}}}`, inst: `{"n": "one"}`, mention: "number"},
		{schema: `{"properties": {"n": {"type": "number"}}}`, inst: `{"x": "one"}`, valid: true},
		{schema: `{"patternProperties": {"^s_": {"type": "string"}}}`, inst: `{"s_a": "x", "n": 3}`, valid: true},
		{schema: `{"patternProperties": {"^s_": {"type": "string"}}}`, inst: `{"s_a": 3}`, valid: false},
		{schema: `{"properties": {"a": true}, "additionalProperties": false}`, inst: `{"a": 1}`, valid: true},
		{schema: `{"properties": {"a": true}, "additionalProperties": false}`, inst: `{"a": 1, "b": 2}`, mention: `additional property "b"`},
		{schema: `{"patternProperties": {"^x": true}, "additionalProperties": false}`, inst: `{"xyz": 1}`, valid: true},
		{schema: `{"additionalProperties": {"type": "integer"}}`, inst: `{"a": 1}`, valid: true},
		{schema: `{"additionalProperties": {"type": "integer"}}`, inst: `{"a": "x"}`, valid: false},
		{schema: `{"propertyNames": {"maxLength": 2}}`, inst: `{"ab": 1}`, valid: true},
		{schema: `{"propertyNames": {"maxLength": 2}}`, inst: `{"abc": 1}`, valid: false},
		{schema: `{"dependencies": {"a": ["b"]}}`, inst: `{"a": 1, "b": 2}`, valid: true},
		{schema: `{"dependencies": {"a": ["b"]}}`, inst: `{"a": 1}`, mention: `requires property "b"`},
		{schema: `{"dependencies": {"a": ["b"]}}`, inst: `{"c": 1}`, valid: true},
		{schema: `{"dependencies": {"a": {"required": ["b"]}}}`, inst: `{"a": 1}`, valid: false},
		{schema: `{"dependencies": {"a": {"required": ["b"]}}}`, inst: `{"a": 1, "b": 2}`, valid: true},
		{schema: `{"required": ["n"]}`, inst: `[1]`, valid: true},
	})
}

func TestValidateGeneric(t *testing.T) {
	runValidateTests(t, []validateTest{
		{schema: `{"type": ["integer", "string"]}`, inst: `"x"`, valid: true},
		{schema: `{"type": ["integer", "string"]}`, inst: `1.5`, valid: false},
		{schema: `{"type": "number"}`, inst: `1`, valid: true},
		{schema: `{"type": "number"}`, inst: `1.5`, valid: true},
		{schema: `{"type": "integer"}`, inst: `1.0`, valid: false},
		{schema: `{"type": "null"}`, inst: `null`, valid: true},
		{schema: `{"type": "boolean"}`, inst: `false`, valid: true},
		{schema: `{"enum": [1, "a", [2], {"b": 3}]}`, inst: `[2]`, valid: true},
		{schema: `{"enum": [1, "a", [2], {"b": 3}]}`, inst: `{"b": 3}`, valid: true},
		{schema: `{"enum": [1, "a"]}`, inst: `2`, mention: "enumerated"},
		// numeric equality is variant-sensitive
		{schema: `{"enum": [1]}`, inst: `1.0`, valid: false},
		{schema: `{"const": {"a": [1, null]}}`, inst: `{"a": [1, null]}`, valid: true},
		{schema: `{"const": 5}`, inst: `6`, mention: "const"},
		{schema: `{"const": 1.0}`, inst: `1`, valid: false},
	})
}

func TestValidateLogic(t *testing.T) {
	runValidateTests(t, []validateTest{
		{schema: `{"allOf": [{"minimum": 0}, {"maximum": 10}]}`, inst: `5`, valid: true},
		{schema: `{"allOf": [{"minimum": 0}, {"maximum": 10}]}`, inst: `11`, valid: false},
		{schema: `{"anyOf": [{"type": "string"}, {"type": "integer"}]}`, inst: `1`, valid: true},
		{schema: `{"anyOf": [{"type": "string"}, {"type": "integer"}]}`, inst: `1.5`, valid: false},
		{schema: `{"oneOf": [{"type": "integer"}, {"type": "number"}]}`, inst: `1.5`, valid: true},
		// integer matches both branches
		{schema: `{"oneOf": [{"type": "integer"}, {"type": "number"}]}`, inst: `1`, mention: "exactly one"},
		{schema: `{"not": {"type": "string"}}`, inst: `5`, valid: true},
		{schema: `{"not": {"type": "string"}}`, inst: `"x"`, mention: "not"},
		{schema: `{"if": {"type": "integer"}, "then": {"minimum": 0}}`, inst: `5`, valid: true},
		{schema: `{"if": {"type": "integer"}, "then": {"minimum": 0}}`, inst: `-5`, valid: false},
		{schema: `{"if": {"type": "integer"}, "then": {"minimum": 0}}`, inst: `"x"`, valid: true},
		{schema: `{"if": {"type": "integer"}, "else": {"type": "string"}}`, inst: `"x"`, valid: true},
		{schema: `{"if": {"type": "integer"}, "else": {"type": "string"}}`, inst: `1.5`, valid: false},
		// then without if asserts nothing
		{schema: `{"then": {"type": "string"}}`, inst: `5`, valid: true},
	})
}

func TestValidateBooleanSchemas(t *testing.T) {
	insts := []string{`null`, `0`, `1.5`, `"x"`, `[]`, `{}`, `false`}
	accept := compileNoMeta(t, `true`)
	reject := compileNoMeta(t, `false`)
	for _, inst := range insts {
		if err := accept.Validate(mustParse(t, inst)); err != nil {
			t.Errorf("true rejected %s: %v", inst, err)
		}
		if err := reject.Validate(mustParse(t, inst)); err == nil {
			t.Errorf("false accepted %s", inst)
		}
	}
}

func TestValidateRefs(t *testing.T) {
	runValidateTests(t, []validateTest{
		{schema: `{"definitions":{"pos":{"type":"integer","minimum":1}},"$ref":"#/definitions/pos"}`, inst: `3`, valid: true},
		{schema: `{"definitions":{"pos":{"type":"integer","minimum":1}},"$ref":"#/definitions/pos"}`, inst: `0`, valid: false},
		{schema: `{"definitions":{"pos":{"type":"integer","minimum":1}},"$ref":"#/definitions/pos"}`, inst: `"3"`, valid: false},
	})
	// recursive structure via $ref
	s := compileNoMeta(t, `{
		"type": "object",
		"properties": {
			"value": {"type": "integer"},
			"next": {"$ref": "#"}
		},
		"required": ["value"],
		"additionalProperties": false
	}`)
	if err := s.Validate(mustParse(t, `{"value": 1, "next": {"value": 2, "next": {"value": 3}}}`)); err != nil {
		t.Errorf("recursive list rejected: %v", err)
	}
	if err := s.Validate(mustParse(t, `{"value": 1, "next": {"next": {}}}`)); err == nil {
		t.Error("recursive list with missing value accepted")
	}
}

func TestValidateErrorAggregation(t *testing.T) {
	s := compileNoMeta(t, `{
		"properties": {
			"a": {"type": "integer"},
			"b": {"type": "string"}
		},
		"required": ["c", "d"]
	}`)
	err := s.Validate(mustParse(t, `{"a": "x", "b": 1}`))
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	// two property failures plus two missing required keys
	if len(ve.Items) != 4 {
		t.Errorf("got %d errors, want 4: %v", len(ve.Items), ve)
	}
}

func TestValidateErrorPositions(t *testing.T) {
	s := compileNoMeta(t, `{"properties": {"a": {"type": "string"}}}`)
	err := s.Validate(mustParse(t, "{\n  \"a\": 17\n}"))
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	line, col := ve.Items[0].Pos.LineCol()
	if line != 1 || col != 7 {
		t.Errorf("error at %d:%d, want 1:7", line, col)
	}
}
