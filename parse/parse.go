// Package parse provides JSON parsing support, producing position
// tagged ir.Node trees.
package parse

import (
	"fmt"
	"strconv"

	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/token"
)

// Parse consumes a single top-level value. Any trailing token is an
// error.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	toks, _, err := token.Tokenize(d, pOpts.tokenOpts()...)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, ErrEmptyDoc
	}
	off := 0
	res, err := parseValue(toks, &off, pOpts)
	if err != nil {
		return nil, err
	}
	if off != len(toks) {
		t := &toks[off]
		return nil, fmt.Errorf("%w: %q %s", ErrTrailing, string(t.Bytes), t.Pos)
	}
	return res, nil
}

func ParseString(s string, opts ...ParseOption) (*ir.Node, error) {
	return Parse([]byte(s), opts...)
}

func parseValue(toks []token.Token, pi *int, opts *parseOpts) (*ir.Node, error) {
	if *pi >= len(toks) {
		last := &toks[len(toks)-1]
		return nil, fmt.Errorf("%w: premature end of input %s", ErrParse, last.Pos)
	}
	t := &toks[*pi]
	switch t.Type {
	case token.TLCurl:
		pos := t.Pos
		*pi++
		objY := &ir.Node{Type: ir.ObjectType, Pos: pos}
		return parseObj(toks, objY, pi, opts)
	case token.TLSquare:
		pos := t.Pos
		*pi++
		arrY := &ir.Node{Type: ir.ArrayType, Pos: pos}
		return parseArr(toks, arrY, pi, opts)
	case token.TString:
		*pi++
		return ir.FromString(t.Str).At(t.Pos), nil
	case token.TInteger:
		i, err := strconv.ParseInt(string(t.Bytes), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid integer (%v) %s", ErrParse, err, t.Pos)
		}
		*pi++
		return ir.FromInt(i).At(t.Pos), nil
	case token.TFloat:
		f, err := strconv.ParseFloat(string(t.Bytes), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number (%v) %s", ErrParse, err, t.Pos)
		}
		*pi++
		return ir.FromFloat(f).At(t.Pos), nil
	case token.TSymbol:
		switch string(t.Bytes) {
		case "true":
			*pi++
			return ir.FromBool(true).At(t.Pos), nil
		case "false":
			*pi++
			return ir.FromBool(false).At(t.Pos), nil
		case "null":
			*pi++
			return ir.Null().At(t.Pos), nil
		}
		return nil, fmt.Errorf("%w: unexpected symbol %q %s", ErrParse, string(t.Bytes), t.Pos)
	default:
		return nil, fmt.Errorf("%w: unexpected token %q %s", ErrParse, string(t.Bytes), t.Pos)
	}
}

func parseObj(toks []token.Token, p *ir.Node, pi *int, opts *parseOpts) (*ir.Node, error) {
	kvs := []ir.KeyVal{}
	seen := map[string]int{}
	first := true
	for {
		if *pi >= len(toks) {
			return nil, fmt.Errorf("%w: premature end of object %s", ErrParse, p.Pos)
		}
		tok := &toks[*pi]
		if tok.Type == token.TRCurl {
			*pi++
			return ir.FromKeyValsAt(p, kvs), nil
		}
		if !first {
			if tok.Type != token.TComma {
				return nil, fmt.Errorf("%w: unexpected %q %s", ErrParse, string(tok.Bytes), tok.Pos)
			}
			*pi++
			if *pi >= len(toks) {
				return nil, fmt.Errorf("%w: premature end of object %s", ErrParse, tok.Pos)
			}
			tok = &toks[*pi]
			if tok.Type == token.TRCurl || tok.Type == token.TRSquare {
				return nil, fmt.Errorf("%w %s", ErrComma, tok.Pos)
			}
		}
		first = false
		if tok.Type != token.TString {
			return nil, fmt.Errorf("%w: got %s %s", ErrKey, tok.Type, tok.Pos)
		}
		key := ir.FromString(tok.Str).At(tok.Pos)
		*pi++
		if *pi >= len(toks) {
			return nil, fmt.Errorf("%w: premature end of object %s", ErrParse, tok.Pos)
		}
		colTok := &toks[*pi]
		if colTok.Type != token.TColon {
			return nil, fmt.Errorf("%w: unexpected %q %s", ErrParse, string(colTok.Bytes), colTok.Pos)
		}
		*pi++
		val, err := parseValue(toks, pi, opts)
		if err != nil {
			return nil, err
		}
		if at, dup := seen[key.String]; dup {
			if opts.strictKeys {
				return nil, fmt.Errorf("%w %q %s", ErrDupKey, key.String, key.Pos)
			}
			// last-wins
			kvs[at] = ir.KeyVal{Key: key, Val: val}
			continue
		}
		seen[key.String] = len(kvs)
		kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
	}
}

func parseArr(toks []token.Token, p *ir.Node, pi *int, opts *parseOpts) (*ir.Node, error) {
	first := true
	for {
		if *pi >= len(toks) {
			return nil, fmt.Errorf("%w: premature end of array %s", ErrParse, p.Pos)
		}
		tok := &toks[*pi]
		if tok.Type == token.TRSquare {
			*pi++
			return p, nil
		}
		if !first {
			if tok.Type != token.TComma {
				return nil, fmt.Errorf("%w: unexpected %q %s", ErrParse, string(tok.Bytes), tok.Pos)
			}
			*pi++
			if *pi >= len(toks) {
				return nil, fmt.Errorf("%w: premature end of array %s", ErrParse, tok.Pos)
			}
			if nxt := &toks[*pi]; nxt.Type == token.TRSquare || nxt.Type == token.TRCurl {
				return nil, fmt.Errorf("%w %s", ErrComma, nxt.Pos)
			}
		}
		first = false
		elt, err := parseValue(toks, pi, opts)
		if err != nil {
			return nil, err
		}
		elt.Parent = p
		elt.ParentIndex = len(p.Values)
		p.Values = append(p.Values, elt)
	}
}
