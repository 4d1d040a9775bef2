package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/jsonschema/token"
)

var (
	ErrSchema      = errors.New("invalid schema")
	ErrRef         = errors.New("unresolved reference")
	ErrInvalidData = errors.New("invalid data")
)

// ErrorItem is one localized failure: a human readable message and
// the source position of the offending node.
type ErrorItem struct {
	Msg string
	Pos *token.Pos
}

func (it ErrorItem) String() string {
	if it.Pos.IsUnknown() {
		return it.Msg
	}
	line, col := it.Pos.LineCol()
	return fmt.Sprintf("%s (line %d, col %d)", it.Msg, line, col)
}

// ValidationError carries an ordered sequence of error items. Both
// compile-time and validation-time failures use this shape;
// aggregation concatenates children's sequences.
type ValidationError struct {
	Items []ErrorItem
}

func (e *ValidationError) Error() string {
	switch len(e.Items) {
	case 0:
		return "validation error"
	case 1:
		return e.Items[0].String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:", len(e.Items))
	for _, it := range e.Items {
		b.WriteString("\n  ")
		b.WriteString(it.String())
	}
	return b.String()
}

// Errors returns the ordered (message, position) items.
func (e *ValidationError) Errors() []ErrorItem {
	return e.Items
}

func errItem(pos *token.Pos, format string, args ...any) ErrorItem {
	return ErrorItem{Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// aggregate wraps items in a ValidationError, or returns nil when
// there are none.
func aggregate(items []ErrorItem) error {
	if len(items) == 0 {
		return nil
	}
	return &ValidationError{Items: items}
}
