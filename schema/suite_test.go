package schema

import (
	"os"
	"path/filepath"
	"testing"

	gojson "github.com/goccy/go-json"

	"github.com/signadot/jsonschema/parse"
)

// suiteCase mirrors the official JSON Schema test suite layout: each
// file holds a list of cases, each pairing one schema with several
// instances and expected outcomes.
type suiteCase struct {
	Description string            `json:"description"`
	Schema      gojson.RawMessage `json:"schema"`
	Tests       []suiteInstance   `json:"tests"`
}

type suiteInstance struct {
	Description string            `json:"description"`
	Data        gojson.RawMessage `json:"data"`
	Valid       bool              `json:"valid"`
}

func TestDraft7Suite(t *testing.T) {
	dir := filepath.Join("..", "tests", "draft7")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("suite directory: %v", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		t.Run(e.Name(), func(t *testing.T) {
			d, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				t.Fatal(err)
			}
			var cases []suiteCase
			if err := gojson.Unmarshal(d, &cases); err != nil {
				t.Fatal(err)
			}
			for _, c := range cases {
				schemaNode, err := parse.Parse([]byte(c.Schema))
				if err != nil {
					t.Errorf("%s: schema parse: %v", c.Description, err)
					continue
				}
				s, err := Compile(schemaNode)
				if err != nil {
					t.Errorf("%s: compile: %v", c.Description, err)
					continue
				}
				for _, inst := range c.Tests {
					instNode, err := parse.Parse([]byte(inst.Data))
					if err != nil {
						t.Errorf("%s / %s: instance parse: %v", c.Description, inst.Description, err)
						continue
					}
					err = s.Validate(instNode)
					if inst.Valid && err != nil {
						t.Errorf("%s / %s: unexpected failure: %v", c.Description, inst.Description, err)
					}
					if !inst.Valid && err == nil {
						t.Errorf("%s / %s: unexpected success", c.Description, inst.Description)
					}
				}
			}
		})
	}
}
