package topomesh

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// assert panics with a colored message if ok() is false and TOPOMESH_DEBUG
// is set to a non-empty value. It is a no-op otherwise, so invariant checks
// it guards never cost anything on the default hot path.
func assert(statement string, ok func() bool) {
	if os.Getenv("TOPOMESH_DEBUG") == "" {
		return
	}
	if !ok() {
		red := color.New(color.FgRed).SprintFunc()
		panic(red("assertion failed: " + statement))
	}
}

func debugf(format string, args ...interface{}) {
	if os.Getenv("TOPOMESH_DEBUG") == "" {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Debugf is debugf exposed for other packages in this module (repair,
// remesh) that want to emit the same gated diagnostic line.
func Debugf(format string, args ...interface{}) {
	debugf(format, args...)
}
