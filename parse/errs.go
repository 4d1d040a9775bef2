package parse

import "errors"

var (
	ErrParse    = errors.New("parse error")
	ErrTrailing = errors.New("trailing content")
	ErrComma    = errors.New("misplaced comma")
	ErrKey      = errors.New("object key must be a string")
	ErrDupKey   = errors.New("duplicate object key")
	ErrEmptyDoc = errors.New("empty document")
)
