package token

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// A matcher inspects the stream and either produces a token, declines,
// or fails. Matchers only advance the stream when they match or fail.
type matcher func(s *Stream) (*Token, bool, error)

// matchers are tried in order against the start of each lexeme.
var matchers = []matcher{
	structural('{', TLCurl),
	structural('}', TRCurl),
	structural('[', TLSquare),
	structural(']', TRSquare),
	structural(',', TComma),
	structural(':', TColon),
	matchNumber,
	matchString,
	matchSymbol,
}

// Tokenize lexes src into a flat token sequence. Token positions refer
// to the returned PosDoc.
func Tokenize(src []byte, opts ...TokenOpt) ([]Token, *PosDoc, error) {
	tOpts := &tokenizeOpts{}
	for _, f := range opts {
		f(tOpts)
	}
	if !utf8.Valid(src) {
		return nil, nil, ErrBadUTF8
	}
	s := NewStream(src)
	var toks []Token
	for {
		s.EatWhitespace()
		if s.EOF() {
			return toks, s.Doc(), nil
		}
		if r, _ := s.Current(); r == ';' {
			if !tOpts.compatComments {
				return nil, nil, tokenizeErr(ErrComment, s.Pos())
			}
			eatLine(s)
			continue
		}
		tok, err := match(s)
		if err != nil {
			return nil, nil, err
		}
		toks = append(toks, *tok)
	}
}

func match(s *Stream) (*Token, error) {
	for _, m := range matchers {
		tok, ok, err := m(s)
		if err != nil {
			return nil, err
		}
		if ok {
			return tok, nil
		}
	}
	r, _ := s.Current()
	return nil, tokenizeErr(fmt.Errorf("%w %q", ErrUnexpected, r), s.Pos())
}

func eatLine(s *Stream) {
	for !s.EOF() {
		if s.Advance() == '\n' {
			return
		}
	}
}

func structural(c rune, t Type) matcher {
	return func(s *Stream) (*Token, bool, error) {
		r, _ := s.Current()
		if r != c {
			return nil, false, nil
		}
		pos := s.Pos()
		s.Advance()
		return &Token{Type: t, Bytes: []byte(string(c)), Pos: pos}, true, nil
	}
}

// matchNumber accepts an optional leading '-' followed by a run of
// digits and '.'. A lexeme containing '.' is a float, otherwise an
// integer.
func matchNumber(s *Stream) (*Token, bool, error) {
	r, _ := s.Current()
	if r != '-' && !isDigit(r) {
		return nil, false, nil
	}
	pos := s.Pos()
	start := s.Offset()
	digits, dots := 0, 0
	if r == '-' {
		s.Advance()
	}
	for {
		r, sz := s.Current()
		if sz == 0 {
			break
		}
		if isDigit(r) {
			digits++
		} else if r == '.' {
			dots++
		} else {
			break
		}
		s.Advance()
	}
	lexeme := s.Doc().Bytes()[start:s.Offset()]
	if digits == 0 || dots > 1 {
		return nil, false, tokenizeErr(fmt.Errorf("%w %q", ErrNumber, lexeme), pos)
	}
	t := TInteger
	if dots == 1 {
		t = TFloat
	}
	return &Token{Type: t, Bytes: lexeme, Pos: pos}, true, nil
}

func matchString(s *Stream) (*Token, bool, error) {
	r, _ := s.Current()
	if r != '"' {
		return nil, false, nil
	}
	pos := s.Pos()
	start := s.Offset()
	s.Advance()
	var val []rune
	for {
		r, sz := s.Current()
		if sz == 0 {
			return nil, false, tokenizeErr(ErrUnterminated, pos)
		}
		switch r {
		case '"':
			s.Advance()
			return &Token{
				Type:  TString,
				Bytes: s.Doc().Bytes()[start:s.Offset()],
				Str:   string(val),
				Pos:   pos,
			}, true, nil
		case '\\':
			s.Advance()
			esc, err := readEscape(s)
			if err != nil {
				return nil, false, err
			}
			val = append(val, esc)
		default:
			s.Advance()
			val = append(val, r)
		}
	}
}

func readEscape(s *Stream) (rune, error) {
	pos := s.Pos()
	r, sz := s.Current()
	if sz == 0 {
		return 0, tokenizeErr(ErrUnterminated, pos)
	}
	s.Advance()
	switch r {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case '"':
		return '"', nil
	case '\\':
		return '\\', nil
	case 'x':
		b, err := readHex(s, 2, pos)
		if err != nil {
			return 0, err
		}
		return rune(b), nil
	case 'u':
		return readUnicodeEscape(s, pos)
	}
	return 0, tokenizeErr(fmt.Errorf("%w \\%c", ErrBadEscape, r), pos)
}

// readUnicodeEscape reads the four hex digits after \u. Consecutive
// high/low surrogate escapes are combined into one supplementary-plane
// scalar; a surrogate half on its own is an error.
func readUnicodeEscape(s *Stream, pos *Pos) (rune, error) {
	hi, err := readHex(s, 4, pos)
	if err != nil {
		return 0, err
	}
	switch {
	case hi >= 0xd800 && hi <= 0xdbff:
		if r, _ := s.Current(); r != '\\' || s.PeekNext() != 'u' {
			return 0, tokenizeErr(ErrLoneSurrogate, pos)
		}
		s.Advance()
		s.Advance()
		lo, err := readHex(s, 4, pos)
		if err != nil {
			return 0, err
		}
		if lo < 0xdc00 || lo > 0xdfff {
			return 0, tokenizeErr(ErrLoneSurrogate, pos)
		}
		return rune(0x10000 + (hi-0xd800)<<10 + (lo - 0xdc00)), nil
	case hi >= 0xdc00 && hi <= 0xdfff:
		return 0, tokenizeErr(ErrLoneSurrogate, pos)
	}
	return rune(hi), nil
}

func readHex(s *Stream, n int, pos *Pos) (int, error) {
	v := 0
	for range n {
		r, sz := s.Current()
		if sz == 0 {
			return 0, tokenizeErr(ErrUnterminated, pos)
		}
		d := hexVal(r)
		if d < 0 {
			return 0, tokenizeErr(fmt.Errorf("%w: %q", ErrBadUnicode, r), pos)
		}
		s.Advance()
		v = v<<4 | d
	}
	return v, nil
}

func hexVal(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	}
	return -1
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// matchSymbol accepts bare identifiers such as true, false and null.
// Anything else it produces surfaces as a parse error later.
func matchSymbol(s *Stream) (*Token, bool, error) {
	r, _ := s.Current()
	if !isSymbolRune(r) {
		return nil, false, nil
	}
	pos := s.Pos()
	start := s.Offset()
	for {
		r, sz := s.Current()
		if sz == 0 || !isSymbolRune(r) {
			break
		}
		s.Advance()
	}
	return &Token{Type: TSymbol, Bytes: s.Doc().Bytes()[start:s.Offset()], Pos: pos}, true, nil
}

func isSymbolRune(r rune) bool {
	switch r {
	case '{', '}', '[', ']', ',', ':', '"', ';', utf8.RuneError:
		return false
	}
	if unicode.IsSpace(r) || unicode.IsControl(r) {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
}
