package schema

import "testing"

func TestAnalyzeSatisfiable(t *testing.T) {
	sats := []string{
		`true`,
		`{}`,
		`{"type": "integer"}`,
		`{"allOf": [{"type": "number"}, {"type": "integer"}]}`,
		`{"anyOf": [{"type": "string"}, {"type": "integer"}]}`,
		`{"not": {"type": "string"}}`,
		`{"enum": [1, "a"]}`,
		`{"minimum": 0, "maximum": 0}`,
		// recursion with an escape
		`{"definitions": {"n": {"anyOf": [{"type": "null"}, {"$ref": "#/definitions/n"}]}},
		  "$ref": "#/definitions/n"}`,
	}
	for _, src := range sats {
		s := compileNoMeta(t, src)
		if err := Analyze(s); err != nil {
			t.Errorf("%s: unexpectedly unsatisfiable: %v", src, err)
		}
	}
}

func TestAnalyzeUnsatisfiable(t *testing.T) {
	unsats := []string{
		`false`,
		`{"allOf": [{"type": "string"}, {"type": "integer"}]}`,
		`{"type": "string", "not": {"type": "string"}}`,
		`{"allOf": [{"type": "number"}, {"type": "null"}]}`,
		// inescapable reference cycle
		`{"definitions": {"n": {"allOf": [{"$ref": "#/definitions/n"}]}},
		  "$ref": "#/definitions/n"}`,
	}
	for _, src := range unsats {
		s := compileNoMeta(t, src)
		if err := Analyze(s); err == nil {
			t.Errorf("%s: unexpectedly satisfiable", src)
		}
	}
}
