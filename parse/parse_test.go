package parse

import (
	"errors"
	"testing"

	"github.com/signadot/jsonschema/ir"
)

type parseTest struct {
	in string
	e  error
}

func TestParseOK(t *testing.T) {
	pts := []parseTest{
		{in: `null`},
		{in: `true`},
		{in: `false`},
		{in: `22`},
		{in: `-7`},
		{in: `2.75`},
		{in: `"hello"`},
		{in: `[]`},
		{in: `["a","b"]`},
		{in: `[[]]`},
		{in: `["a",["b",["c"]]]`},
		{in: `{}`},
		{in: `{"a": 1}`},
		{in: `{"a": {"b": [1, 2.5, null]}}`},
		{in: "\n  {\"a\"\n: 1}\n"},
	}
	for _, pt := range pts {
		if _, err := Parse([]byte(pt.in)); err != nil {
			t.Errorf("%q: unexpected error %v", pt.in, err)
		}
	}
}

func TestParseErrs(t *testing.T) {
	pts := []parseTest{
		{in: ``, e: ErrEmptyDoc},
		{in: `1 2`, e: ErrTrailing},
		{in: `[1,]`, e: ErrComma},
		{in: `{"a": 1,}`, e: ErrComma},
		{in: `[1 2]`, e: ErrParse},
		{in: `{1: 2}`, e: ErrKey},
		{in: `{"a" 1}`, e: ErrParse},
		{in: `{"a": }`, e: ErrParse},
		{in: `[`, e: ErrParse},
		{in: `{`, e: ErrParse},
		{in: `nope`, e: ErrParse},
		{in: `}`, e: ErrParse},
	}
	for _, pt := range pts {
		_, err := Parse([]byte(pt.in))
		if err == nil {
			t.Errorf("%q: expected error", pt.in)
			continue
		}
		if !errors.Is(err, pt.e) {
			t.Errorf("%q: got %v, want %v", pt.in, err, pt.e)
		}
	}
}

func TestParseValues(t *testing.T) {
	node, err := Parse([]byte(`{"n": -3, "f": 0.5, "s": "x", "b": true, "z": null}`))
	if err != nil {
		t.Fatal(err)
	}
	if node.Type != ir.ObjectType {
		t.Fatalf("got %s, want Object", node.Type)
	}
	if n := ir.Get(node, "n"); n.Int64 == nil || *n.Int64 != -3 {
		t.Error("n mismatch")
	}
	if f := ir.Get(node, "f"); f.Float64 == nil || *f.Float64 != 0.5 {
		t.Error("f mismatch")
	}
	if s := ir.Get(node, "s"); s.String != "x" {
		t.Error("s mismatch")
	}
	if b := ir.Get(node, "b"); !b.Bool {
		t.Error("b mismatch")
	}
	if z := ir.Get(node, "z"); z.Type != ir.NullType {
		t.Error("z mismatch")
	}
}

func TestParseDupKeys(t *testing.T) {
	node, err := Parse([]byte(`{"a": 1, "a": 2}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(node.Fields) != 1 {
		t.Fatalf("got %d fields, want 1", len(node.Fields))
	}
	if v := ir.Get(node, "a"); v.Int64 == nil || *v.Int64 != 2 {
		t.Error("last value did not win")
	}
	if _, err := Parse([]byte(`{"a": 1, "a": 2}`), ParseStrictKeys(true)); !errors.Is(err, ErrDupKey) {
		t.Errorf("strict mode: got %v, want ErrDupKey", err)
	}
}

func TestParsePositions(t *testing.T) {
	node, err := Parse([]byte("{\n  \"a\": [10, 20]\n}"))
	if err != nil {
		t.Fatal(err)
	}
	arr := ir.Get(node, "a")
	if line, col := arr.Pos.LineCol(); line != 1 || col != 7 {
		t.Errorf("array at %d:%d, want 1:7", line, col)
	}
	if line, col := arr.Values[1].Pos.LineCol(); line != 1 || col != 12 {
		t.Errorf("element at %d:%d, want 1:12", line, col)
	}
	key := ir.GetField(node, "a")
	if line, col := key.Pos.LineCol(); line != 1 || col != 2 {
		t.Errorf("key at %d:%d, want 1:2", line, col)
	}
}

func TestParseCompatComments(t *testing.T) {
	if _, err := Parse([]byte("; note\n[1]")); err == nil {
		t.Error("comments accepted without compat flag")
	}
	node, err := Parse([]byte("; note\n[1] ; trailing"), ParseCompatComments(true))
	if err != nil {
		t.Fatal(err)
	}
	if node.Type != ir.ArrayType || len(node.Values) != 1 {
		t.Error("comment parse mangled value")
	}
}
