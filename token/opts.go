package token

type tokenizeOpts struct {
	compatComments bool
}

type TokenOpt func(*tokenizeOpts)

// CompatComments accepts `;`-prefixed line comments, an idiosyncrasy
// of older schema documents. They are consumed, never emitted.
func CompatComments(v bool) TokenOpt {
	return func(o *tokenizeOpts) { o.compatComments = v }
}
