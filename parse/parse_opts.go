package parse

import "github.com/signadot/jsonschema/token"

type parseOpts struct {
	strictKeys     bool
	compatComments bool
}

type ParseOption func(*parseOpts)

// ParseStrictKeys rejects duplicate object keys. The default keeps the
// last value seen.
func ParseStrictKeys(v bool) ParseOption {
	return func(o *parseOpts) { o.strictKeys = v }
}

// ParseCompatComments accepts `;`-prefixed line comments in the input.
func ParseCompatComments(v bool) ParseOption {
	return func(o *parseOpts) { o.compatComments = v }
}

func (o *parseOpts) tokenOpts() []token.TokenOpt {
	return []token.TokenOpt{token.CompatComments(o.compatComments)}
}
