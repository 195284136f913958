// Package debug holds environment controlled tracing switches.
//
// Each switch is read once at init from a MUTCOLL_DEBUG_* variable:
//
//	MUTCOLL_DEBUG_DIFF  dump LCS tables and edit scripts
//	MUTCOLL_DEBUG_PATH  trace path walks through nested sections
//	MUTCOLL_DEBUG_EMIT  trace events handed to collection sinks
package debug

import (
	"os"
	"strconv"
	"sync/atomic"
)

type debug struct {
	Diff atomic.Bool
	Path atomic.Bool
	Emit atomic.Bool
}

var d = &debug{}

func init() {
	d.Diff.Store(boolEnv("MUTCOLL_DEBUG_DIFF"))
	d.Path.Store(boolEnv("MUTCOLL_DEBUG_PATH"))
	d.Emit.Store(boolEnv("MUTCOLL_DEBUG_EMIT"))
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Diff() bool {
	return d.Diff.Load()
}
func Path() bool {
	return d.Path.Load()
}
func Emit() bool {
	return d.Emit.Load()
}

// Set overrides a switch by name ("diff", "path", "emit") and returns its
// previous value. Unknown names are ignored.
func Set(name string, on bool) bool {
	switch name {
	case "diff":
		return d.Diff.Swap(on)
	case "path":
		return d.Path.Swap(on)
	case "emit":
		return d.Emit.Swap(on)
	}
	return false
}
