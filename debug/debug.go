// Package debug gates diagnostic logging behind environment
// variables.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Compile  bool
	Validate bool
	Resolve  bool
	Fetch    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Compile = boolEnv("JSCHEMA_DEBUG_COMPILE")
	d.Validate = boolEnv("JSCHEMA_DEBUG_VALIDATE")
	d.Resolve = boolEnv("JSCHEMA_DEBUG_RESOLVE")
	d.Fetch = boolEnv("JSCHEMA_DEBUG_FETCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Compile() bool {
	return d.Compile
}
func Validate() bool {
	return d.Validate
}
func Resolve() bool {
	return d.Resolve
}
func Fetch() bool {
	return d.Fetch
}
