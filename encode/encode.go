package encode

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/signadot/jsonschema/ir"
)

type EncState struct {
	depth, indent int
	wire          bool

	color func(ir.Type, ColorAttr, string) string
}

// Encode writes node as JSON. The default is pretty output with two
// space indent; Wire(true) selects compact output.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	return encode(node, w, es)
}

// MustString renders node to a string, panicking on writer failure.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	if node == nil {
		return fmt.Errorf("%w: nil node", ErrEncoding)
	}
	switch node.Type {
	case ir.NullType:
		return writeValue(w, es, node.Type, "null")
	case ir.BoolType:
		return writeValue(w, es, node.Type, strconv.FormatBool(node.Bool))
	case ir.NumberType:
		return writeValue(w, es, node.Type, numberLexeme(node))
	case ir.StringType:
		return writeValue(w, es, node.Type, QuoteString(node.String))
	case ir.ArrayType:
		return encodeArr(node, w, es)
	case ir.ObjectType:
		return encodeObj(node, w, es)
	}
	return fmt.Errorf("%w: unknown node type %d", ErrEncoding, node.Type)
}

// numberLexeme formats a number so that re-parsing restores the same
// variant: floats always carry a decimal point and never an exponent.
func numberLexeme(node *ir.Node) string {
	if node.Int64 != nil {
		return strconv.FormatInt(*node.Int64, 10)
	}
	s := strconv.FormatFloat(*node.Float64, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// QuoteString renders s as a JSON string literal.
func QuoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if unicode.IsControl(r) {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func encodeArr(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Values) == 0 {
		return writeString(w, "[]")
	}
	if err := writeString(w, "["); err != nil {
		return err
	}
	es.depth++
	for i, v := range node.Values {
		if i > 0 {
			if err := writeString(w, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, "]")
}

func encodeObj(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Fields) == 0 {
		return writeString(w, "{}")
	}
	if err := writeString(w, "{"); err != nil {
		return err
	}
	es.depth++
	for i, field := range node.Fields {
		if i > 0 {
			if err := writeString(w, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		key := QuoteString(field.String)
		if es.color != nil {
			key = es.color(ir.ObjectType, FieldColor, key)
		}
		if err := writeString(w, key+":"); err != nil {
			return err
		}
		if !es.wire {
			if err := writeString(w, " "); err != nil {
				return err
			}
		}
		if err := encode(node.Values[i], w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, "}")
}

func writeValue(w io.Writer, es *EncState, t ir.Type, s string) error {
	if es.color != nil {
		s = es.color(t, ValueColor, s)
	}
	return writeString(w, s)
}

func writeNL(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	indentString := strings.Repeat(" ", es.indent*es.depth)
	return writeString(w, "\n"+indentString)
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}
