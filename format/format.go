// Package format enumerates the input formats accepted by the façade
// and the CLI.
package format

import (
	"errors"
	"fmt"
)

var ErrBadFormat = errors.New("bad format")

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
)

func (f Format) String() string {
	switch f {
	case JSONFormat:
		return "json"
	case YAMLFormat:
		return "yaml"
	}
	return "<unknown format>"
}

func (f Format) Suffix() string {
	switch f {
	case YAMLFormat:
		return ".yaml"
	default:
		return ".json"
	}
}

func ParseFormat(s string) (Format, error) {
	switch s {
	case "json", "j":
		return JSONFormat, nil
	case "yaml", "y", "yml":
		return YAMLFormat, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, s)
}
