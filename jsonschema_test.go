package jsonschema

import (
	"errors"
	"strings"
	"testing"

	"github.com/signadot/jsonschema/schema"
)

func mustCompile(t *testing.T, src string, opts ...Option) *Schema {
	t.Helper()
	s, err := Compile(src, opts...)
	if err != nil {
		t.Fatalf("compile %q: %v", src, err)
	}
	return s
}

func TestIntegerRange(t *testing.T) {
	s := mustCompile(t, `{"type":"integer","minimum":0,"maximum":10}`)
	if err := s.Validate(`5`); err != nil {
		t.Errorf("5: unexpected error %v", err)
	}
	err := s.Validate(`11`)
	if err == nil {
		t.Fatal("11: expected error")
	}
	var ve *schema.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *schema.ValidationError, got %T", err)
	}
	if len(ve.Errors()) != 1 {
		t.Errorf("11: got %d errors, want 1", len(ve.Errors()))
	}
	if !strings.Contains(err.Error(), "less than or equal to 10") {
		t.Errorf("11: message %q", err)
	}
	err = s.Validate(`"5"`)
	if err == nil || !strings.Contains(err.Error(), "integer") {
		t.Errorf(`"5": got %v`, err)
	}
}

func TestUniqueStringArray(t *testing.T) {
	s := mustCompile(t, `{"type":"array","items":{"type":"string"},"uniqueItems":true}`)
	if err := s.Validate(`["a","b","c"]`); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	err := s.Validate(`["a","b","a"]`)
	if err == nil || !strings.Contains(err.Error(), "unique") {
		t.Errorf("duplicates: got %v", err)
	}
}

func TestObjectShape(t *testing.T) {
	s := mustCompile(t, `{"properties":{"n":{"type":"number"}},"required":["n"],"additionalProperties":false}`)
	cases := []struct {
		inst  string
		valid bool
	}{
		{inst: `{"n":1}`, valid: true},
		{inst: `{}`},
		{inst: `{"n":1,"x":2}`},
		{inst: `{"n":"one"}`},
	}
	for _, c := range cases {
		err := s.Validate(c.inst)
		if c.valid && err != nil {
			t.Errorf("%s: unexpected error %v", c.inst, err)
		}
		if !c.valid && err == nil {
			t.Errorf("%s: expected error", c.inst)
		}
	}
}

func TestBytesVariants(t *testing.T) {
	s, err := CompileBytes([]byte(`{"type": "string"}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.ValidateBytes([]byte(`"ok"`)); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if _, err := CompileBytes([]byte{0xff, 0xfe}); !errors.Is(err, schema.ErrInvalidData) {
		t.Errorf("bad schema bytes: got %v", err)
	}
	if err := s.ValidateBytes([]byte{0xff, 0xfe}); !errors.Is(err, schema.ErrInvalidData) {
		t.Errorf("bad instance bytes: got %v", err)
	}
}

func TestMetaValidationDefault(t *testing.T) {
	if _, err := Compile(`{"type": "nope"}`); err == nil {
		t.Error("bad schema compiled with meta validation on")
	}
	if _, err := Compile(`{"minLength": -1}`, WithoutMetaValidation()); err == nil {
		t.Error("minLength constructor accepted a negative bound")
	}
}

// replacing an inline schema by a definitions indirection preserves
// outcomes
func TestRefIdempotence(t *testing.T) {
	direct := mustCompile(t, `{"properties": {"a": {"type": "integer", "minimum": 1}}}`)
	indirect := mustCompile(t, `{
		"definitions": {"x": {"type": "integer", "minimum": 1}},
		"properties": {"a": {"$ref": "#/definitions/x"}}
	}`)
	for _, inst := range []string{`{"a": 1}`, `{"a": 0}`, `{"a": "x"}`, `{}`, `7`} {
		e1 := direct.Validate(inst)
		e2 := indirect.Validate(inst)
		if (e1 == nil) != (e2 == nil) {
			t.Errorf("%s: outcomes differ (direct %v, indirect %v)", inst, e1, e2)
		}
	}
}

func TestCompatCommentsOption(t *testing.T) {
	src := "; schema for counters\n{\"type\": \"integer\"}"
	if _, err := Compile(src); err == nil {
		t.Error("comments accepted without the compat option")
	}
	s, err := Compile(src, WithCompatComments())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Validate("3 ; three"); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestStrictKeysOption(t *testing.T) {
	s := mustCompile(t, `{"type": "object"}`, WithStrictKeys())
	if err := s.Validate(`{"a": 1, "a": 2}`); err == nil {
		t.Error("duplicate keys accepted in strict mode")
	}
}

func TestYAMLInput(t *testing.T) {
	s, err := CompileYAML([]byte("type: object\nrequired:\n  - n\nproperties:\n  n:\n    type: number\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Validate(`{"n": 1}`); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if err := s.Validate(`{}`); err == nil {
		t.Error("expected error")
	}
	if err := s.ValidateYAML([]byte("n: 2\n")); err != nil {
		t.Errorf("yaml instance: unexpected error %v", err)
	}
}

func TestAnalyze(t *testing.T) {
	s := mustCompile(t, `{"allOf": [{"type": "string"}, {"type": "integer"}]}`)
	if err := s.Analyze(); err == nil {
		t.Error("contradictory schema analyzed as satisfiable")
	}
	s = mustCompile(t, `{"type": "integer"}`)
	if err := s.Analyze(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}
