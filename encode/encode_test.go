package encode

import (
	"testing"

	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/parse"
)

func TestEncodeWire(t *testing.T) {
	tts := []struct{ in, want string }{
		{in: `null`, want: `null`},
		{in: `true`, want: `true`},
		{in: `-12`, want: `-12`},
		{in: `2.5`, want: `2.5`},
		{in: `"a\nb"`, want: `"a\nb"`},
		{in: `[1,2,3]`, want: `[1,2,3]`},
		{in: `{"a": 1, "b": [true, null]}`, want: `{"a":1,"b":[true,null]}`},
	}
	for _, tt := range tts {
		node, err := parse.Parse([]byte(tt.in))
		if err != nil {
			t.Fatalf("%q: %v", tt.in, err)
		}
		if got := MustString(node, Wire(true)); got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Parsing pretty output restores a structurally equal tree, including
// the integer/float variant distinction.
func TestEncodeRoundTrip(t *testing.T) {
	docs := []string{
		`null`,
		`3`,
		`3.0`,
		`-0.25`,
		`"héllo\tworld"`,
		`[]`,
		`{}`,
		`{"a": [1, 2.0, "x", {"b": null}], "c": false}`,
	}
	for _, doc := range docs {
		node, err := parse.Parse([]byte(doc))
		if err != nil {
			t.Fatalf("%q: %v", doc, err)
		}
		back, err := parse.Parse([]byte(MustString(node)))
		if err != nil {
			t.Fatalf("%q: reparse: %v", doc, err)
		}
		if !ir.Equal(node, back) {
			t.Errorf("%q: round trip changed value (got %s)", doc, MustString(back, Wire(true)))
		}
	}
}

func TestFloatKeepsPoint(t *testing.T) {
	node := ir.FromFloat(4)
	if got := MustString(node); got != "4.0" {
		t.Errorf("got %q, want %q", got, "4.0")
	}
}
