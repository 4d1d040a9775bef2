package token

import (
	"fmt"
	"sort"
	"strconv"
	"unicode/utf8"
)

// PosDoc holds a source document together with the offsets of its
// newlines, so that byte offsets can be mapped to line/column pairs
// on demand.
type PosDoc struct {
	d []byte
	n []int
}

func NewPosDoc(d []byte) *PosDoc {
	return &PosDoc{d: d}
}

func (p *PosDoc) Bytes() []byte {
	return p.d
}

// nl records a newline at offset i. Offsets must be recorded in order.
func (p *PosDoc) nl(i int) {
	if len(p.n) > 0 && p.n[len(p.n)-1] == i {
		return
	}
	p.n = append(p.n, i)
}

// LineCol maps a byte offset to a 0-based line and column. Columns
// count unicode scalars, not bytes.
func (p *PosDoc) LineCol(off int) (int, int) {
	N := len(p.n)
	di := sort.Search(N, func(i int) bool {
		return p.n[i] >= off
	})
	lineStart := 0
	if di > 0 {
		lineStart = p.n[di-1] + 1
	}
	if off > len(p.d) {
		off = len(p.d)
	}
	return di, utf8.RuneCount(p.d[lineStart:off])
}

func (d *PosDoc) Pos(i int) *Pos {
	return &Pos{I: i, D: d}
}

// Pos is a position in a source document, stored as a byte offset.
type Pos struct {
	I int
	D *PosDoc
}

// Unknown returns the sentinel position used for synthetic nodes,
// reporting line and column -1.
func Unknown() *Pos {
	return &Pos{I: -1}
}

func (p *Pos) IsUnknown() bool {
	return p == nil || p.I < 0 || p.D == nil
}

func (p *Pos) LineCol() (int, int) {
	if p.IsUnknown() {
		return -1, -1
	}
	return p.D.LineCol(p.I)
}

func (p *Pos) Line() int {
	l, _ := p.LineCol()
	return l
}

func (p *Pos) Col() int {
	_, c := p.LineCol()
	return c
}

func (p *Pos) String() string {
	if p.IsUnknown() {
		return "<unknown position>"
	}
	sample := string(p.D.d[max(0, p.I-5):min(p.I+5, len(p.D.d))])
	sample = strconv.Quote(sample)
	sample = sample[1 : len(sample)-1]
	line, col := p.LineCol()
	return fmt.Sprintf("`...%s...` at offset %d (line=%d, col=%d)", sample, p.I, line, col)
}
