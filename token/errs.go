package token

import (
	"errors"
	"fmt"
)

var (
	ErrBadUTF8       = errors.New("bad utf8")
	ErrUnterminated  = errors.New("unterminated string")
	ErrBadEscape     = errors.New("bad escape")
	ErrBadUnicode    = errors.New("bad unicode escape")
	ErrLoneSurrogate = errors.New("lone surrogate")
	ErrNumber        = errors.New("malformed number")
	ErrComment       = errors.New("line comments not allowed")
	ErrUnexpected    = errors.New("unexpected character")
)

func tokenizeErr(err error, pos *Pos) error {
	return fmt.Errorf("%w: %s", err, pos)
}
