package encode

type EncodeOption func(*EncState)

// Indent sets the number of spaces per depth level in pretty output.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// Wire selects compact single-line output.
func Wire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

// WithColors enables terminal coloring of output.
func WithColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.color = c.Color }
}
