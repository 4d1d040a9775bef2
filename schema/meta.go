package schema

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/signadot/jsonschema/parse"
)

//go:embed metaschema/draft7.json
var draft7Meta []byte

var (
	metaOnce sync.Once
	meta     *Schema
	metaErr  error
)

// MetaSchema returns the compiled draft 7 meta-schema. It is parsed
// and compiled once per process, with meta validation suppressed to
// break the recursion.
func MetaSchema() (*Schema, error) {
	metaOnce.Do(func() {
		node, err := parse.Parse(draft7Meta)
		if err != nil {
			metaErr = fmt.Errorf("parsing embedded meta-schema: %w", err)
			return
		}
		meta, metaErr = Compile(node, WithMetaValidation(false))
	})
	return meta, metaErr
}
