package token

import (
	"unicode"
	"unicode/utf8"
)

// Stream is a cursor over a source document. It decodes unicode
// scalars and records newline offsets in its PosDoc as it advances.
type Stream struct {
	doc *PosDoc
	i   int
}

func NewStream(d []byte) *Stream {
	return &Stream{doc: NewPosDoc(d)}
}

func (s *Stream) Doc() *PosDoc {
	return s.doc
}

func (s *Stream) Offset() int {
	return s.i
}

func (s *Stream) EOF() bool {
	return s.i >= len(s.doc.d)
}

// Pos returns the position of the cursor.
func (s *Stream) Pos() *Pos {
	return s.doc.Pos(s.i)
}

// Current returns the scalar under the cursor and its encoded size.
// It returns utf8.RuneError with size 0 at end of input.
func (s *Stream) Current() (rune, int) {
	if s.EOF() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(s.doc.d[s.i:])
}

// PeekNext returns the scalar following the current one.
func (s *Stream) PeekNext() rune {
	_, sz := s.Current()
	if sz == 0 || s.i+sz >= len(s.doc.d) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRune(s.doc.d[s.i+sz:])
	return r
}

// Advance consumes the current scalar, recording newlines.
func (s *Stream) Advance() rune {
	r, sz := s.Current()
	if sz == 0 {
		return utf8.RuneError
	}
	if r == '\n' {
		s.doc.nl(s.i)
	}
	s.i += sz
	return r
}

// EatWhitespace consumes unicode whitespace, returning the number of
// scalars consumed.
func (s *Stream) EatWhitespace() int {
	n := 0
	for {
		r, sz := s.Current()
		if sz == 0 || !unicode.IsSpace(r) {
			return n
		}
		s.Advance()
		n++
	}
}
